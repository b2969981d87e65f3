package logging

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fjspga/internal/evolution"
	"fjspga/internal/fjsp"
	"fjspga/internal/ga"
)

// Champion is the saved best solution of a run
type Champion struct {
	RunID      string        `json:"run_id"`
	Instance   string        `json:"instance,omitempty"`
	Generation int           `json:"generation"`
	Makespan   int           `json:"makespan"`
	ElapsedMs  int64         `json:"elapsed_ms"`
	Chromosome ga.Chromosome `json:"chromosome"`
}

// SaveChampion saves the best chromosome of a run to a file
func SaveChampion(path, instancePath string, res evolution.Result) error {
	return writeJSON(path, Champion{
		RunID:      res.RunID,
		Instance:   instancePath,
		Generation: res.Generations,
		Makespan:   res.BestMakespan,
		ElapsedMs:  res.Elapsed.Milliseconds(),
		Chromosome: res.Best,
	})
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Champion
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveSchedule writes the per-machine (start, end, label) rows for a chart renderer
func SaveSchedule(path string, sched *fjsp.Schedule) error {
	return writeJSON(path, struct {
		Makespan int             `json:"makespan"`
		Machines []fjsp.GanttRow `json:"machines"`
	}{
		Makespan: sched.Makespan(),
		Machines: sched.Gantt(),
	})
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
