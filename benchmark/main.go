// Package main provides a performance benchmarking tool for the velocity CLI.
// It measures execution times of frame and timeseries commands across dataset
// directories, once without archiving and once recording into SQLite. The first
// successful recorded run counts as cold and the rest are averaged as warm.
// Results are written to a CSV file.
//
// Prerequisites:
// - velocity binary installed and available in PATH
//
// Usage: go run benchmark/main.go [data-dir...]
//
//	data-dir: Dataset directories to benchmark. The built-in dataset is always included.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// builtinDataset labels runs against the embedded dataset.
const builtinDataset = "builtin"

// BenchmarkResult holds the result of a benchmark run.
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Datasets    []string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	StorePath   string
	Years       []string
}

// benchmarkCase is one command line to time.
type benchmarkCase struct {
	args    []string
	record  bool // whether the command archives into the frame store
	success string
}

func main() {
	config := BenchmarkConfig{
		Datasets:    append([]string{builtinDataset}, os.Args[1:]...),
		Timeout:     time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		StorePath:   filepath.Join(os.TempDir(), "velocity_benchmark_frames.db"),
		Years:       []string{"1990", "2005", "2023"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty archive
	fmt.Printf("Clearing frame store...\n")
	clearCmd := exec.Command("velocity", "store", "clear", "--store-db-connect", config.StorePath)
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear frame store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Frame store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the velocity binary and dataset directories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("velocity"); err != nil {
		return fmt.Errorf("velocity binary not found in PATH")
	}

	for _, dir := range config.Datasets {
		if dir == builtinDataset {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("dataset directory %s not found", dir)
		}
	}
	return nil
}

// cases returns the command lines benchmarked for every dataset.
func cases(config BenchmarkConfig) []benchmarkCase {
	var out []benchmarkCase
	for _, year := range config.Years {
		out = append(out, benchmarkCase{
			args:    []string{"frame", "--year", year, "--record"},
			record:  true,
			success: "Frame " + year + " computed in",
		})
	}
	out = append(out, benchmarkCase{
		args:    []string{"timeseries", "holly", "--years", "play", "--output", "csv"},
		success: "region,year,dvi",
	})
	return out
}

// runBenchmarks executes all benchmark cases across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, dataset := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", dataset)
		for _, c := range cases(config) {
			results = append(results, runBenchmarkSuite(config, dataset, c))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a case
func runBenchmarkSuite(config BenchmarkConfig, dataset string, c benchmarkCase) BenchmarkResult {
	label := strings.Join(c.args, " ")
	fmt.Printf("Running %q on %s\n", label, dataset)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, c, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
			if cold > 0 {
				avgTime = fmt.Sprintf("%.3fs", cold)
			}
			return cold, avgTime
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: archive disabled
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: archive into SQLite. Only frames record anything.
	coldTimeStr, warmAvg := "n/a", "n/a"
	if c.record {
		coldTime, avg := runPhase("sqlite", config.StoreRuns, "Store")
		warmAvg = avg
		coldTimeStr = "TIMEOUT"
		if coldTime > 0 {
			coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
		}
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     label,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a velocity command multiple times with the given store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset string, c benchmarkCase, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, c.args...)
	args = append(args, "--color", "no", "--store-backend", backend)
	if backend == "sqlite" {
		args = append(args, "--store-db-connect", config.StorePath)
	} else if c.record {
		// The none backend cannot record
		args = removeArg(args, "--record")
	}
	if dataset != builtinDataset {
		args = append(args, "--data-dir", dataset)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("velocity", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), c.success) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func removeArg(args []string, arg string) []string {
	out := args[:0]
	for _, a := range args {
		if a != arg {
			out = append(out, a)
		}
	}
	return out
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("velocity_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Dataset, r.Command, r.NoStoreTime, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-10s %-45s No-store: %s, Cold: %s, Warm: %s\n", r.Dataset, r.Command, r.NoStoreTime, r.ColdTime, r.WarmTime)
	}
}
