package voxel

import "fmt"

// State is the pipeline stage.
type State int32

const (
	Idle State = iota
	Dimensioning
	Sampling
	Rendered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dimensioning:
		return "dimensioning"
	case Sampling:
		return "sampling"
	case Rendered:
		return "rendered"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}
