package display

import (
	"fmt"
	"os"

	"github.com/backmassage/m4bmerge/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta)
	fmt.Fprint(os.Stdout, `           _  _   _
 _ __ ___ | || | | |__  _ __ ___   ___ _ __ __ _  ___
| '_ `+"`"+` _ \| || |_| '_ \| '_ `+"`"+` _ \ / _ \ '__/ _`+"`"+` |/ _ \
| | | | | |__   _| |_) | | | | | |  __/ | | (_| |  __/
|_| |_| |_|  |_| |_.__/|_| |_| |_|\___|_|  \__, |\___|
                                           |___/
`)
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.NC)
	}
}
