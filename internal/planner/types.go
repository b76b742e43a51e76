package planner

import (
	"strconv"
	"strings"
)

// Stage identifies one step of the per-unit pipeline. Stages always run in
// declaration order.
type Stage int

const (
	StageMerge Stage = iota
	StageInline
	StageCleanup
	StageSave
)

func (s Stage) String() string {
	switch s {
	case StageMerge:
		return "merge"
	case StageInline:
		return "inline"
	case StageCleanup:
		return "cleanup"
	case StageSave:
		return "save"
	}
	return "unknown"
}

// Step is one planned stage. When Checkpoint is set the markup produced by
// the stage is written to the intermediate file numbered TempIndex; otherwise
// TempIndex is -1.
type Step struct {
	Stage      Stage
	Checkpoint bool
	TempIndex  int
}

// Plan is the ordered list of steps every unit of a run goes through. It
// depends only on the configuration, so one plan serves the whole run.
type Plan struct {
	Steps []Step
}

// Has reports whether stage is part of the plan.
func (p Plan) Has(stage Stage) bool {
	for _, s := range p.Steps {
		if s.Stage == stage {
			return true
		}
	}
	return false
}

// Checkpoints returns the number of intermediate files a unit produces.
func (p Plan) Checkpoints() int {
	n := 0
	for _, s := range p.Steps {
		if s.Checkpoint {
			n++
		}
	}
	return n
}

// Describe returns the stage names in order, checkpointed stages marked
// with their temp index, e.g. "merge[0] -> inline -> cleanup -> save".
func (p Plan) Describe() string {
	names := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		name := s.Stage.String()
		if s.Checkpoint {
			name += "[" + strconv.Itoa(s.TempIndex) + "]"
		}
		names = append(names, name)
	}
	return strings.Join(names, " -> ")
}
