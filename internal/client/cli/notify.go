package cli

import (
	"fmt"
	"io"
)

// toastNotifier prints mutation feedback to the terminal. It is the CLI
// stand-in for toast popups: fire-and-forget, never blocking the command.
type toastNotifier struct {
	out io.Writer
}

func (n *toastNotifier) Success(title, detail string) {
	if detail == "" {
		fmt.Fprintf(n.out, "[ok] %s\n", title)
		return
	}
	fmt.Fprintf(n.out, "[ok] %s: %s\n", title, detail)
}

func (n *toastNotifier) Error(title, detail string) {
	if detail == "" {
		fmt.Fprintf(n.out, "[error] %s\n", title)
		return
	}
	fmt.Fprintf(n.out, "[error] %s: %s\n", title, detail)
}
