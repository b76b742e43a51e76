package pipeline

import (
	"errors"
	"fmt"

	"github.com/backmassage/xslmail/internal/planner"
)

// Sentinels matched by StageError.Is, one per failing stage.
var (
	ErrMergeFailed   = errors.New("merge failed")
	ErrInlineFailed  = errors.New("style inlining failed")
	ErrCleanupFailed = errors.New("cleanup failed")
	ErrSaveFailed    = errors.New("save failed")
)

// StageError reports a fatal failure of one stage for one unit. Message
// names the files involved; Err is the engine or file-system cause.
type StageError struct {
	Stage   planner.Stage
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// Is matches the sentinel of the failing stage.
func (e *StageError) Is(target error) bool {
	switch target {
	case ErrMergeFailed:
		return e.Stage == planner.StageMerge
	case ErrInlineFailed:
		return e.Stage == planner.StageInline
	case ErrCleanupFailed:
		return e.Stage == planner.StageCleanup
	case ErrSaveFailed:
		return e.Stage == planner.StageSave
	}
	return false
}

func mergeFailed(masterPath, templatePath string, err error) error {
	return &StageError{
		Stage:   planner.StageMerge,
		Message: fmt.Sprintf("cannot merge master %s with template %s", masterPath, templatePath),
		Err:     err,
	}
}

func inlineFailed(fileBase string, err error) error {
	return &StageError{
		Stage:   planner.StageInline,
		Message: fmt.Sprintf("cannot move CSS styles inline for %s", fileBase),
		Err:     err,
	}
}

func cleanupFailed(fileBase string, err error) error {
	return &StageError{
		Stage:   planner.StageCleanup,
		Message: fmt.Sprintf("cannot clean up markup for %s", fileBase),
		Err:     err,
	}
}

func saveFailed(path string, intermediate bool, err error) error {
	what := "output file"
	if intermediate {
		what = "intermediate file"
	}
	return &StageError{
		Stage:   planner.StageSave,
		Message: fmt.Sprintf("cannot save %s %s", what, path),
		Err:     err,
	}
}
