// Package engine defines the capabilities the stage runner needs from the
// merge, style-inlining and cleanup engines. Implementations live in
// internal/xslt, internal/inline and internal/tidy; tests substitute fakes.
package engine

import "context"

// Result is the output of a transform stage: the new markup and any
// non-fatal diagnostics, in the order the engine reported them.
type Result struct {
	Markup   string
	Warnings []string
}

// InlineOptions controls style inlining.
type InlineOptions struct {
	// IgnoreSelector matches <style> elements that are left untouched and
	// survive inlining even when RemoveStyleElements is set.
	IgnoreSelector string

	StripIDAndClass     bool
	RemoveStyleElements bool
	RemoveComments      bool
}

// CleanOptions controls markup cleanup.
type CleanOptions struct {
	// Quiet suppresses the engine's informational chatter.
	Quiet bool
	// SuppressWarnings tells the engine not to report diagnostics at all.
	SuppressWarnings bool
}

// Merger applies a master presentation document to a customization document.
// The returned markup is UTF-8 and declares UTF-8.
type Merger interface {
	Merge(ctx context.Context, masterPath, templatePath string) (string, error)
}

// StyleInliner moves stylesheet rules into style attributes.
type StyleInliner interface {
	InlineStyles(ctx context.Context, markup string, opts InlineOptions) (Result, error)
}

// MarkupCleaner normalizes markup. Diagnostics are returned as warnings; an
// error means the engine could not produce output at all.
type MarkupCleaner interface {
	Clean(ctx context.Context, markup string, opts CleanOptions) (Result, error)
}
