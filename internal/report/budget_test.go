package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name         string
		estimated    int64
		accumulated  int64
		wantOvertime int64
		wantSaved    int64
	}{
		{"no estimate disables tracking", 0, 5000, 0, 0},
		{"negative estimate disables tracking", -100, 5000, 0, 0},
		{"under budget", 3600, 1800, 0, 1800},
		{"over budget", 3600, 5000, 1400, 0},
		{"exactly on budget", 3600, 3600, 0, 0},
		{"nothing worked", 3600, 0, 0, 3600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overtime, saved := Recompute(tt.estimated, tt.accumulated)
			assert.Equal(t, tt.wantOvertime, overtime, "overtime")
			assert.Equal(t, tt.wantSaved, saved, "saved")
		})
	}
}

// TestRecomputePure verifies the same inputs always yield the same outputs.
func TestRecomputePure(t *testing.T) {
	o1, s1 := Recompute(3600, 1200)
	for i := 0; i < 100; i++ {
		o2, s2 := Recompute(3600, 1200)
		assert.Equal(t, o1, o2)
		assert.Equal(t, s1, s2)
	}
}

// TestRecomputeNeverBothPositive checks the overtime/saved exclusivity
// invariant across a sweep of inputs.
func TestRecomputeNeverBothPositive(t *testing.T) {
	for est := int64(0); est <= 5000; est += 250 {
		for acc := int64(0); acc <= 5000; acc += 250 {
			overtime, saved := Recompute(est, acc)
			assert.False(t, overtime > 0 && saved > 0,
				"both positive for est=%d acc=%d", est, acc)
			assert.GreaterOrEqual(t, overtime, int64(0))
			assert.GreaterOrEqual(t, saved, int64(0))
		}
	}
}
