package display

import (
	"fmt"
	"io"

	"github.com/backmassage/jpgfromraw/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `   _             __                                     
  (_)_ __  __ _ / _|_ _ ___ _ __  _ _ __ ___ __ __
  | | '_ \/ _`+"`"+` |  _| '_/ _ \ '  \| '_/ _`+"`"+` \ V  V /
 _/ | .__/\__, |_| |_| \___/_|_|_|_| \__,_|\_/\_/ 
|__/|_|   |___/                                   
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
