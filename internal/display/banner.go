package display

import (
	"fmt"
	"io"

	"github.com/backmassage/xslmail/internal/term"
)

// PrintBanner writes the ASCII art banner to w, in magenta when colors are
// enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `          _                 _ _
__  _____| |_ __ ___   __ _(_) |
\ \/ / __| | '_ `+"`"+` _ \ / _`+"`"+` | | |
 >  <\__ \ | | | | | | (_| | | |
/_/\_\___/_|_| |_| |_|\__,_|_|_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
