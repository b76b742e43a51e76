package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/xslmail/internal/config"
	"github.com/backmassage/xslmail/internal/engine"
	"github.com/backmassage/xslmail/internal/naming"
	"github.com/backmassage/xslmail/internal/planner"
)

// Reporter is the logging surface the pipeline needs. Defined here so the
// package can be tested with a recording fake.
type Reporter interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Verbose(string, ...interface{})
	Error(string, ...interface{})
}

// Engines bundles the transform engines. Inliner and Cleaner may be nil
// when the plan does not use them.
type Engines struct {
	Merger  engine.Merger
	Inliner engine.StyleInliner
	Cleaner engine.MarkupCleaner
}

// UnitResult summarizes a successful unit.
type UnitResult struct {
	Warnings     int
	BytesWritten int64
}

// Runner executes the stage plan for one unit at a time.
type Runner struct {
	plan     planner.Plan
	engines  Engines
	inline   engine.InlineOptions
	clean    engine.CleanOptions
	subs     []config.Substitution
	showWarn bool
	log      Reporter
}

// NewRunner prepares a Runner from a validated Config.
func NewRunner(cfg *config.Config, plan planner.Plan, engines Engines, log Reporter) *Runner {
	return &Runner{
		plan:    plan,
		engines: engines,
		inline: engine.InlineOptions{
			IgnoreSelector:      cfg.IgnoreStyleSelector,
			StripIDAndClass:     !cfg.KeepIDClassAttributes,
			RemoveStyleElements: !cfg.KeepStyleElements,
			RemoveComments:      !cfg.KeepComments,
		},
		clean: engine.CleanOptions{
			Quiet:            cfg.Quiet,
			SuppressWarnings: cfg.SuppressWarnings,
		},
		subs:     cfg.SubstitutionList(),
		showWarn: !cfg.SuppressWarnings,
		log:      log,
	}
}

// Run takes u through every planned stage. The first fatal failure stops
// the unit and is returned as a *StageError (or the context error when the
// run was cancelled).
func (r *Runner) Run(ctx context.Context, u naming.Unit) (UnitResult, error) {
	var res UnitResult
	var markup string

	for _, step := range r.plan.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch step.Stage {
		case planner.StageMerge:
			r.log.Verbose("Merging %s with %s", u.TemplatePath, u.MasterPath)
			out, err := r.engines.Merger.Merge(ctx, u.MasterPath, u.TemplatePath)
			if err != nil {
				return res, canceledOr(ctx, mergeFailed(u.MasterPath, u.TemplatePath, err))
			}
			markup = out

		case planner.StageInline:
			r.log.Verbose("Moving CSS styles inline for %s", u.FileBase())
			out, err := r.engines.Inliner.InlineStyles(ctx, markup, r.inline)
			if err != nil {
				return res, canceledOr(ctx, inlineFailed(u.FileBase(), err))
			}
			res.Warnings += r.report(u, out.Warnings)
			markup = out.Markup

		case planner.StageCleanup:
			r.log.Verbose("Cleaning up markup for %s", u.FileBase())
			out, err := r.engines.Cleaner.Clean(ctx, markup, r.clean)
			if err != nil {
				return res, canceledOr(ctx, cleanupFailed(u.FileBase(), err))
			}
			res.Warnings += r.report(u, out.Warnings)
			markup = out.Markup

		case planner.StageSave:
			final := ApplySubstitutions(markup, r.subs)
			if err := writeMarkup(u.OutputPath, final); err != nil {
				return res, saveFailed(u.OutputPath, false, err)
			}
			res.BytesWritten += int64(len(final))
			r.log.Verbose("Saved %s", u.OutputPath)
		}

		if step.Checkpoint {
			path := u.TempPath(step.TempIndex)
			if err := writeMarkup(path, markup); err != nil {
				return res, saveFailed(path, true, err)
			}
			r.log.Verbose("Saved intermediate %s", path)
		}
	}
	return res, nil
}

// report logs engine warnings unless they are suppressed and returns how
// many were logged.
func (r *Runner) report(u naming.Unit, warnings []string) int {
	if !r.showWarn {
		return 0
	}
	for _, w := range warnings {
		r.log.Warn("%s: %s", u.FileBase(), w)
	}
	return len(warnings)
}

// canceledOr prefers the context error when the engine failed because the
// run was cancelled.
func canceledOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// ApplySubstitutions replaces every occurrence of each Old with its New, in
// list order.
func ApplySubstitutions(markup string, subs []config.Substitution) string {
	for _, s := range subs {
		markup = strings.ReplaceAll(markup, s.Old, s.New)
	}
	return markup
}

// writeMarkup writes markup to path, creating missing directories and
// replacing an existing file.
func writeMarkup(path, markup string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(markup), 0o644)
}
