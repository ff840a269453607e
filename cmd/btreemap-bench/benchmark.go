package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
)

// BenchResult is one measured row: a structure/configuration pair, the
// phase that was timed, and the observed latency and memory figures.
type BenchResult struct {
	Structure string
	Config    string
	Phase     string
	LatencyNs int64
	MemMB     uint64
	Objects   uint64
}

type MemoryStats struct {
	AllocMB     uint64
	HeapObjects uint64
}

// ReadMem samples the live heap. It forces a collection first so the
// numbers reflect reachable data, not garbage awaiting the next GC cycle.
func ReadMem() MemoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:     m.Alloc / 1024 / 1024,
		HeapObjects: m.HeapObjects,
	}
}

// ResultWriter streams BenchResult rows as CSV.
type ResultWriter struct {
	w *csv.Writer
}

var csvHeader = []string{"Structure", "Config", "Phase", "LatencyNs", "MemMB", "HeapObjects"}

func NewResultWriter(w io.Writer) (*ResultWriter, error) {
	rw := &ResultWriter{w: csv.NewWriter(w)}
	if err := rw.w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return rw, nil
}

func (rw *ResultWriter) Record(res BenchResult) error {
	return rw.w.Write([]string{
		res.Structure,
		res.Config,
		res.Phase,
		strconv.FormatInt(res.LatencyNs, 10),
		strconv.FormatUint(res.MemMB, 10),
		strconv.FormatUint(res.Objects, 10),
	})
}

func (rw *ResultWriter) Flush() error {
	rw.w.Flush()
	return rw.w.Error()
}

// ReadResults parses a CSV produced by ResultWriter.
func ReadResults(r io.Reader) ([]BenchResult, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("results csv is empty")
	}
	var out []BenchResult
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: want %d columns, got %d", i+2, len(csvHeader), len(row))
		}
		lat, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: latency: %w", i+2, err)
		}
		mem, err := strconv.ParseUint(row[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: memory: %w", i+2, err)
		}
		objs, err := strconv.ParseUint(row[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: heap objects: %w", i+2, err)
		}
		out = append(out, BenchResult{
			Structure: row[0],
			Config:    row[1],
			Phase:     row[2],
			LatencyNs: lat,
			MemMB:     mem,
			Objects:   objs,
		})
	}
	return out, nil
}
