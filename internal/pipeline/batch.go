package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/xslmail/internal/config"
	"github.com/backmassage/xslmail/internal/display"
	"github.com/backmassage/xslmail/internal/logging"
	"github.com/backmassage/xslmail/internal/naming"
	"github.com/backmassage/xslmail/internal/planner"
)

// Batch processes every template folder under the input root.
type Batch struct {
	cfg    *config.Config
	layout naming.Layout
	plan   planner.Plan
	runner *Runner
	log    Reporter
	newID  func() string

	preflight func() error
	checked   bool
}

// NewBatch wires a batch from a validated, finalized Config.
func NewBatch(cfg *config.Config, engines Engines, log Reporter) *Batch {
	plan := planner.BuildPlan(cfg)
	return &Batch{
		cfg:    cfg,
		layout: naming.LayoutFromConfig(cfg),
		plan:   plan,
		runner: NewRunner(cfg, plan, engines, log),
		log:    log,
		newID:  uuid.NewString,
	}
}

// SetPreflight registers fn to run once per Run, just before the first
// folder that has files to process. An error from fn ends the run. Runs
// that find nothing to do never call it.
func (b *Batch) SetPreflight(fn func() error) {
	b.preflight = fn
}

// Run processes all folders in name order and returns the report. Run never
// panics on unit failures; check Report.OK for the overall result.
func (b *Batch) Run(ctx context.Context) Report {
	rep := Report{RunID: b.newID()}
	b.checked = false
	start := time.Now()
	b.log.Info("Run %s", rep.RunID)
	b.log.Verbose("Stages: %s", b.plan.Describe())

	folders, err := ListTemplateFolders(b.cfg.InputFolder, b.cfg.IgnoreRegexp())
	if err != nil {
		rep.Err = err
		b.log.Error("%s", logging.Flatten(err))
		return rep
	}
	b.log.Verbose("Found %d template folder(s) in %s", len(folders), b.cfg.InputFolder)

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			rep.Err = fmt.Errorf("run interrupted: %w", err)
			break
		}
		if err := b.runFolder(ctx, folder, &rep); err != nil {
			rep.Err = err
			break
		}
	}

	if rep.Err != nil {
		b.log.Error("%s", logging.Flatten(rep.Err))
	}
	b.logSummary(&rep, time.Since(start))
	return rep
}

// runFolder processes one template folder. A returned error ends the run:
// it is either a failure under stop-on-error or cancellation.
func (b *Batch) runFolder(ctx context.Context, folder string, rep *Report) error {
	templateID := filepath.Base(folder)
	rep.Stats.Folders++
	b.log.Info("Processing %s", folder)

	files, err := ListCandidateFiles(folder, templateID, b.cfg.TemplateFileExtension)
	if err != nil {
		if b.cfg.StopOnError {
			return fmt.Errorf("folder %s: %w", templateID, err)
		}
		b.log.Error("%s", logging.Flatten(err))
		return nil
	}
	if len(files) == 0 {
		b.log.Verbose("No %s*%s files in %s", templateID, b.cfg.TemplateFileExtension, folder)
		return nil
	}
	if !b.checked {
		b.checked = true
		if b.preflight != nil {
			if err := b.preflight(); err != nil {
				return err
			}
		}
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted: %w", err)
		}
		if err := b.runFile(ctx, templateID, file, rep); err != nil {
			if ctx.Err() != nil || b.cfg.StopOnError {
				return fmt.Errorf("folder %s: %w", templateID, err)
			}
			b.log.Error("%s", logging.Flatten(err))
		}
	}
	return nil
}

// runFile processes one customization file and records its outcome. The
// returned error carries the file context.
func (b *Batch) runFile(ctx context.Context, templateID, file string, rep *Report) error {
	unit, ok := b.layout.Resolve(templateID, file)
	if !ok {
		b.log.Warn("Skipping %s: name does not start with %q", file, templateID)
		rep.record(Outcome{TemplateID: templateID, TemplatePath: file, Status: StatusSkipped})
		return nil
	}

	b.log.Info("Merging %s and %s into %s",
		filepath.Base(unit.TemplatePath), filepath.Base(unit.MasterPath), filepath.Base(unit.OutputPath))

	res, err := b.runner.Run(ctx, unit)
	o := Outcome{
		TemplateID:   templateID,
		TemplatePath: file,
		OutputPath:   unit.OutputPath,
		Warnings:     res.Warnings,
	}
	if err != nil {
		err = fmt.Errorf("cannot process file %s: %w", file, err)
		o.Status = StatusFailed
		o.Chain = logging.Chain(err)
		rep.record(o)
		return err
	}

	o.Status = StatusSucceeded
	rep.record(o)
	rep.Stats.BytesWritten += res.BytesWritten
	return nil
}

func (b *Batch) logSummary(rep *Report, elapsed time.Duration) {
	s := rep.Stats
	b.log.Info("==============================")
	b.log.Info("Done: %d succeeded, %d failed, %d skipped in %d folder(s)", s.Succeeded, s.Failed, s.Skipped, s.Folders)
	if s.Warnings > 0 {
		b.log.Info("  Warnings: %d", s.Warnings)
	}
	if !b.cfg.SkipOutput {
		b.log.Info("  Written: %s", display.FormatBytes(s.BytesWritten))
	}
	b.log.Verbose("  Elapsed: %s", elapsed.Round(time.Millisecond))

	switch {
	case !rep.OK():
		b.log.Error("Run %s failed", rep.RunID)
	case s.Failed > 0:
		b.log.Warn("Run %s finished with %d failed file(s)", rep.RunID, s.Failed)
	default:
		b.log.Success("Run %s finished", rep.RunID)
	}
}
