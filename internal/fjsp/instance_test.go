package fjsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceValidate(t *testing.T) {
	ok := []Job{{Operations: []Operation{{Alternatives: []Alternative{{Machine: 1, ProcessingTime: 1}}}}}}

	tests := []struct {
		name     string
		machines int
		jobs     []Job
		wantErr  bool
	}{
		{"valid", 1, ok, false},
		{"no machines", 0, ok, true},
		{"no jobs", 1, nil, true},
		{"empty job", 1, []Job{{}}, true},
		{"empty operation", 1, []Job{{Operations: []Operation{{}}}}, true},
		{"machine zero", 1, []Job{{Operations: []Operation{{Alternatives: []Alternative{{Machine: 0, ProcessingTime: 1}}}}}}, true},
		{"machine too large", 1, []Job{{Operations: []Operation{{Alternatives: []Alternative{{Machine: 2, ProcessingTime: 1}}}}}}, true},
		{"zero time", 1, []Job{{Operations: []Operation{{Alternatives: []Alternative{{Machine: 1, ProcessingTime: 0}}}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInstance(tt.machines, tt.jobs)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInstanceIndexing(t *testing.T) {
	inst := twoByTwo(t)

	assert.Equal(t, 2, inst.JobCount())
	assert.Equal(t, 4, inst.OperationCount())
	assert.Equal(t, []int{0, 2}, inst.Offsets())
	assert.Equal(t, []int{2, 1, 1, 2}, inst.AlternativeCounts())

	j, o := inst.OperationAt(3)
	assert.Equal(t, 1, j)
	assert.Equal(t, 1, o)
	j, o = inst.OperationAt(4)
	assert.Equal(t, -1, j)
	assert.Equal(t, -1, o)
}

func TestRandomInstance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inst := RandomInstance(5, 3, 4, 3, 10, rng)
	require.NoError(t, inst.Validate())
	assert.Equal(t, 5, inst.JobCount())
	assert.Equal(t, 3, inst.MachineCount)
}
