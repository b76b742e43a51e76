package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Folders      int // Template folders visited.
	Total        int // Units started.
	Succeeded    int
	Failed       int
	Skipped      int
	Warnings     int // Engine warnings reported.
	BytesWritten int64
}

// Status is the result of one unit.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Outcome records what happened to one customization file. Chain holds the
// error messages of a failure, outermost first.
type Outcome struct {
	TemplateID   string
	TemplatePath string
	OutputPath   string
	Status       Status
	Warnings     int
	Chain        []string
}

// Report is the result of a batch run. Err is the condition that ended the
// run early: a missing or empty input root, a failure under stop-on-error,
// or cancellation. Failures tolerated by stop-on-error=false leave it nil.
type Report struct {
	RunID    string
	Stats    RunStats
	Outcomes []Outcome
	Err      error
}

// OK reports whether the run completed without a fatal condition.
func (r Report) OK() bool { return r.Err == nil }

func (r *Report) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Stats.Total++
	r.Stats.Warnings += o.Warnings
	switch o.Status {
	case StatusSucceeded:
		r.Stats.Succeeded++
	case StatusFailed:
		r.Stats.Failed++
	case StatusSkipped:
		r.Stats.Skipped++
	}
}
