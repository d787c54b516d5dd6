// Package terminal holds the small amount of raw terminal handling the CLI
// needs: reading credentials from the user and tidying up prompts afterwards.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines erases a prompt the user just answered from stdout.
// textLength is the prompt plus the typed answer; wrapping is computed from the
// current terminal width (80 when unknown), and one extra line is cleared for
// the newline produced by Enter.
func ClearPreviousLines(textLength int) {
	clearLines(os.Stdout, textLength, width(int(os.Stdout.Fd())))
}

func width(fd int) int {
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return 80
}

// linesFor returns how many lines textLength characters occupy at termWidth.
func linesFor(textLength, termWidth int) int {
	n := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if n < 1 {
		n = 1
	}
	return n
}

func clearLines(w io.Writer, textLength, termWidth int) {
	toClear := linesFor(textLength, termWidth) + 1
	for i := 0; i < toClear; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < toClear-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
