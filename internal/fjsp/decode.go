package fjsp

import "fmt"

// Decode builds the schedule of a chromosome with a greedy list scheduler.
// Each OS entry places the job's next operation on its selected machine at
// the earliest gap that starts no sooner than the job's previous completion.
func Decode(inst *Instance, os, ms []int) (*Schedule, error) {
	total := inst.OperationCount()
	if len(os) != total || len(ms) != total {
		return nil, &DecodeError{Reason: fmt.Sprintf("chromosome length must be %d (got OS=%d, MS=%d)",
			total, len(os), len(ms))}
	}

	offsets := inst.Offsets()
	cursor := make([]int, len(inst.Jobs))
	ready := make([]int, len(inst.Jobs))
	sched := &Schedule{Machines: make([][]Placement, inst.MachineCount)}

	for pos, job := range os {
		if job < 0 || job >= len(inst.Jobs) {
			return nil, &DecodeError{Job: job, Index: pos,
				Reason: fmt.Sprintf("OS[%d]: job %d out of range [0,%d)", pos, job, len(inst.Jobs))}
		}
		opIdx := cursor[job]
		ops := inst.Jobs[job].Operations
		if opIdx >= len(ops) {
			return nil, &DecodeError{Job: job, Operation: opIdx, Index: pos,
				Reason: fmt.Sprintf("OS[%d]: job %d has only %d operations", pos, job, len(ops))}
		}

		choice := ms[offsets[job]+opIdx]
		alts := ops[opIdx].Alternatives
		if choice < 0 || choice >= len(alts) {
			return nil, &DecodeError{Job: job, Operation: opIdx, Index: choice, Alternatives: len(alts)}
		}
		alt := alts[choice]

		m := alt.Machine - 1
		start := firstAvailableStart(sched.Machines[m], ready[job], alt.ProcessingTime)
		sched.Machines[m] = append(sched.Machines[m], Placement{
			Label:     operationLabel(job, opIdx),
			Job:       job,
			Operation: opIdx,
			Duration:  alt.ProcessingTime,
			Ready:     ready[job],
			Start:     start,
		})

		cursor[job]++
		ready[job] = start + alt.ProcessingTime
	}

	return sched, nil
}

// Makespan decodes the chromosome and returns its makespan
func Makespan(inst *Instance, os, ms []int) (int, error) {
	sched, err := Decode(inst, os, ms)
	if err != nil {
		return 0, err
	}
	return sched.Makespan(), nil
}

// firstAvailableStart scans an occupancy timeline of the machine for the
// smallest start >= ready whose [start, start+duration) interval is free.
func firstAvailableStart(placed []Placement, ready, duration int) int {
	horizon := ready + duration
	if len(placed) > 0 {
		horizon = max(machineEnd(placed), ready) + duration
	}

	busy := make([]bool, horizon)
	for _, p := range placed {
		for t := p.Start; t < p.End(); t++ {
			busy[t] = true
		}
	}

	for start := ready; start+duration <= horizon; start++ {
		free := true
		for t := start; t < start+duration; t++ {
			if busy[t] {
				free = false
				start = t // resume just past the blocking slot
				break
			}
		}
		if free {
			return start
		}
	}
	return horizon - duration
}
