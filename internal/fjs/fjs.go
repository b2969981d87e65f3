// Package fjs reads flexible job-shop instances in the .fjs text format
// used by the Brandimarte and Hurink benchmark sets.
//
// The first line holds the job count, the machine count and an optional
// average alternatives-per-operation figure. Each following line is one job:
// the number of operations, then for each operation the number of
// alternatives k followed by k (machine, processing time) pairs.
package fjs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fjspga/internal/fjsp"
)

// Load opens and parses an instance file
func Load(path string) (*fjsp.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Parse reads an instance from r
func Parse(r io.Reader) (*fjsp.Instance, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	next := func(header bool) ([]int, bool, error) {
		for scanner.Scan() {
			lineNo++
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			values, err := atoiAll(fields, header)
			if err != nil {
				return nil, false, fmt.Errorf("line %d: %w", lineNo, err)
			}
			return values, true, nil
		}
		return nil, false, scanner.Err()
	}

	header, ok, err := next(true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("empty instance")
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("line %d: header needs job and machine counts", lineNo)
	}
	jobCount, machineCount := header[0], header[1]
	if jobCount <= 0 {
		return nil, fmt.Errorf("line %d: job count must be > 0 (got %d)", lineNo, jobCount)
	}

	jobs := make([]fjsp.Job, 0, jobCount)
	for len(jobs) < jobCount {
		values, ok, err := next(false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("expected %d jobs, found %d", jobCount, len(jobs))
		}
		job, err := parseJob(values)
		if err != nil {
			return nil, fmt.Errorf("line %d: job %d: %w", lineNo, len(jobs)+1, err)
		}
		jobs = append(jobs, job)
	}

	return fjsp.NewInstance(machineCount, jobs)
}

func parseJob(values []int) (fjsp.Job, error) {
	opCount := values[0]
	if opCount <= 0 {
		return fjsp.Job{}, fmt.Errorf("operation count must be > 0 (got %d)", opCount)
	}

	i := 1
	ops := make([]fjsp.Operation, 0, opCount)
	for o := 0; o < opCount; o++ {
		if i >= len(values) {
			return fjsp.Job{}, fmt.Errorf("operation %d: missing alternative count", o+1)
		}
		k := values[i]
		i++
		if k <= 0 {
			return fjsp.Job{}, fmt.Errorf("operation %d: alternative count must be > 0 (got %d)", o+1, k)
		}
		if i+2*k > len(values) {
			return fjsp.Job{}, fmt.Errorf("operation %d: expected %d machine/time pairs", o+1, k)
		}
		alts := make([]fjsp.Alternative, k)
		for a := range alts {
			alts[a] = fjsp.Alternative{Machine: values[i], ProcessingTime: values[i+1]}
			i += 2
		}
		ops = append(ops, fjsp.Operation{Alternatives: alts})
	}
	if i != len(values) {
		return fjsp.Job{}, fmt.Errorf("%d trailing values", len(values)-i)
	}
	return fjsp.Job{Operations: ops}, nil
}

// atoiAll converts fields to ints. Only the header's average (third field)
// may be a decimal; it is truncated.
func atoiAll(fields []string, header bool) ([]int, error) {
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			if !header || i != 2 {
				return nil, fmt.Errorf("invalid number %q", f)
			}
			fv, ferr := strconv.ParseFloat(f, 64)
			if ferr != nil {
				return nil, fmt.Errorf("invalid number %q", f)
			}
			v = int(fv)
		}
		values[i] = v
	}
	return values, nil
}
