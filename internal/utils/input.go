package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// InputUtils prompts on In and writes prompts to Out. The zero value uses the terminal.
type InputUtils struct {
	In  io.Reader
	Out io.Writer
}

func (i *InputUtils) streams() (*bufio.Reader, io.Writer) {
	in, out := i.In, i.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return bufio.NewReader(in), out
}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	reader, out := i.streams()
	fmt.Fprintf(out, "%s (y/N): ", message)
	response, _ := reader.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// GetUserChoice prompts until one of validOptions is entered. The first option
// is returned with force or when input runs out.
func (i *InputUtils) GetUserChoice(validOptions []string, prompt string, force bool) string {
	if force {
		return validOptions[0]
	}

	reader, out := i.streams()
	for {
		fmt.Fprintf(out, "%s (%s): ", prompt, strings.Join(validOptions, "/"))
		input, err := reader.ReadString('\n')
		choice := strings.TrimSpace(strings.ToLower(input))

		for _, option := range validOptions {
			if choice == option {
				return choice
			}
		}
		if err != nil {
			return validOptions[0]
		}
		fmt.Fprintf(out, "Invalid option. Please choose from: %s\n", strings.Join(validOptions, ", "))
	}
}
