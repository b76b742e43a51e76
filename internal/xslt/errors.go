package xslt

import (
	"fmt"
	"strings"
)

// exitReasons maps xsltproc exit statuses to their documented meaning.
var exitReasons = map[int]string{
	1:  "no argument",
	2:  "too many parameters",
	3:  "unknown option",
	4:  "failed to parse the stylesheet",
	5:  "error in the stylesheet",
	6:  "error in one of the documents",
	7:  "unsupported xsl:output method",
	8:  "string parameter contains both quote and double-quotes",
	9:  "internal processing error",
	10: "processing was stopped by a terminating message",
	11: "could not write the result to the output file",
}

// ExitError is returned when xsltproc exits with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	reason, ok := exitReasons[e.Code]
	if !ok {
		reason = "unknown failure"
	}
	msg := fmt.Sprintf("xsltproc exited with status %d (%s)", e.Code, reason)
	if detail := firstLine(e.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
