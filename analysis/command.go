package analysis

import (
	"fmt"

	"github.com/spatialkit/ppa/pointset"
)

// Command is one analysis operation executed against an ingested
// collection.
type Command interface {
	// Name returns the command name used in output file names and
	// persisted runs.
	Name() string

	// Execute runs the command against one collection.
	Execute(c *pointset.Collection[float32]) (*Result, error)
}

// Result is one command outcome for one input collection.
type Result struct {
	Command string
	Value   float64
	// Summary describes the distance distribution behind Value; nil for
	// commands without one.
	Summary *Summary
}

// Summary describes a distance distribution.
type Summary struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// DimensionError reports two collections whose dimensions disagree where
// the command requires them to match.
type DimensionError struct {
	Left  int
	Right int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("analysis: collection dimensions differ: %d vs %d", e.Left, e.Right)
}
