package cmd

import (
	"encoding/json"
	"fmt"
)

// consoleWriter is where commands print their output, tests replace it to capture the output.
var consoleWriter consoleWrapper = &stdoutWrapper{}

type (
	consoleWrapper interface {
		Println(a ...any)
		Print(a ...any)
	}

	stdoutWrapper struct{}
)

func (w *stdoutWrapper) Println(a ...any) {
	fmt.Println(a...)
}

func (w *stdoutWrapper) Print(a ...any) {
	fmt.Print(a...)
}

// printJSON prints "v" as single line JSON document.
func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	consoleWriter.Println(string(b))
	return nil
}
