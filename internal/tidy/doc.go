// Package tidy cleans up generated markup with HTML Tidy. Tidy runs with
// force-output, so structurally broken input still yields best-effort
// markup; its diagnostics are returned as warnings. Only a tidy that cannot
// run, or that produces nothing, is an error.
package tidy
