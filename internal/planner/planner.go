package planner

import "github.com/backmassage/xslmail/internal/config"

// BuildPlan turns the stage switches of cfg into the ordered step list.
//
// Rules:
//  1. Merge always runs; its result is checkpointed when intermediates are on.
//  2. Inline runs unless skipped. Its result is checkpointed only when
//     cleanup follows; otherwise the next write is the final save.
//  3. Cleanup runs unless skipped and is never checkpointed.
//  4. Save runs unless output is skipped. Skipping output also disables
//     every checkpoint.
//
// Temp indexes are assigned in step order, starting at 0, and only to
// checkpointed steps.
func BuildPlan(cfg *config.Config) Plan {
	save := cfg.SaveIntermediate && !cfg.SkipOutput
	inline := !cfg.SkipInlineCSS
	cleanup := !cfg.SkipCleanup

	var p Plan
	next := 0
	add := func(stage Stage, checkpoint bool) {
		step := Step{Stage: stage, Checkpoint: checkpoint, TempIndex: -1}
		if checkpoint {
			step.TempIndex = next
			next++
		}
		p.Steps = append(p.Steps, step)
	}

	add(StageMerge, save)
	if inline {
		add(StageInline, save && cleanup)
	}
	if cleanup {
		add(StageCleanup, false)
	}
	if !cfg.SkipOutput {
		add(StageSave, false)
	}
	return p
}
