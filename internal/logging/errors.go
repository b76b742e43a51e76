package logging

import (
	"errors"
	"strings"
)

// Flatten renders err and every error it wraps on a single line.
func Flatten(err error) string {
	if err == nil {
		return ""
	}
	return oneLine(err.Error())
}

// Chain lists the messages of err's wrap chain, outermost first. Each entry
// is the message a level adds on top of the error it wraps.
func Chain(err error) []string {
	var out []string
	for err != nil {
		msg := err.Error()
		inner := errors.Unwrap(err)
		if inner != nil {
			msg = strings.TrimSuffix(msg, ": "+inner.Error())
		}
		out = append(out, oneLine(msg))
		err = inner
	}
	return out
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
