package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/backmassage/xslmail/internal/config"
	"github.com/backmassage/xslmail/internal/term"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small email", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"typical email", 23552, "23.0 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"large batch", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestPrintBanner(t *testing.T) {
	term.Configure(config.ColorNever, false)
	var buf bytes.Buffer
	PrintBanner(&buf)
	if strings.Contains(buf.String(), "\033[") {
		t.Error("banner contains escape sequences with colors disabled")
	}
	if strings.Count(buf.String(), "\n") != 5 {
		t.Errorf("banner has %d lines, want 5", strings.Count(buf.String(), "\n"))
	}
}
