package planning_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-planner/backend/internal/planning"
)

func TestOptions_Today(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-01", planning.DefaultOptions().Today(now))

	opts := planning.DefaultOptions()
	opts.Timezone = "America/Los_Angeles"
	assert.Equal(t, "2026-02-28", opts.Today(now))

	opts.Timezone = "Not/AZone"
	assert.Equal(t, "2026-03-01", opts.Today(now))
}
