package fjsp

import "fmt"

// Placement is one operation placed on a machine
type Placement struct {
	Label     string `json:"label"`
	Job       int    `json:"job"`
	Operation int    `json:"operation"`
	Duration  int    `json:"duration"`
	Ready     int    `json:"ready"` // precedence-ready time
	Start     int    `json:"start"`
}

// End returns the completion time of the placement
func (p Placement) End() int {
	return p.Start + p.Duration
}

// Schedule holds the placements of every machine, in insertion order.
// Machines[m-1] belongs to machine m.
type Schedule struct {
	Machines [][]Placement `json:"machines"`
}

// Makespan is the latest completion time over all machines, 0 when empty
func (s *Schedule) Makespan() int {
	makespan := 0
	for _, placements := range s.Machines {
		if end := machineEnd(placements); end > makespan {
			makespan = end
		}
	}
	return makespan
}

func machineEnd(placements []Placement) int {
	end := 0
	for _, p := range placements {
		if p.End() > end {
			end = p.End()
		}
	}
	return end
}

// Bar is a (start, end, label) triple for chart rendering
type Bar struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// GanttRow lists the bars of one machine
type GanttRow struct {
	Machine string `json:"machine"`
	Bars    []Bar  `json:"bars"`
}

// Gantt translates the schedule into display rows, one per machine
func (s *Schedule) Gantt() []GanttRow {
	rows := make([]GanttRow, len(s.Machines))
	for m, placements := range s.Machines {
		bars := make([]Bar, len(placements))
		for i, p := range placements {
			bars[i] = Bar{Start: p.Start, End: p.End(), Label: p.Label}
		}
		rows[m] = GanttRow{Machine: fmt.Sprintf("Machine-%d", m+1), Bars: bars}
	}
	return rows
}

func operationLabel(job, op int) string {
	return fmt.Sprintf("OP_%d-%d", job+1, op+1)
}
