// Command xslmail is the CLI entrypoint for the localized HTML email
// template generator.
//
// It merges every customization file under the input folder with its
// language master, moves CSS styles inline, cleans up the markup and saves
// the result, one template folder at a time.
package main

import (
	"context"
	"os"

	"github.com/backmassage/xslmail/internal/cli"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], version, commit))
}
