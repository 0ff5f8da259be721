package common

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when confirmation is needed but stdin is not a terminal.
var ErrNotInteractive = errors.New("confirmation required but stdin is not a terminal")

// Prompter asks the operator yes/no questions.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// Interactive is false when In is not a terminal; Confirm then refuses.
	Interactive bool
}

// NewPrompter prompts on stdin, writing questions to out.
func NewPrompter(out io.Writer) *Prompter {
	return &Prompter{
		In:          os.Stdin,
		Out:         out,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

// Confirm writes question and reports whether the answer equals one of
// accepted, ignoring case and surrounding whitespace. An empty answer or EOF
// counts as no.
func (p *Prompter) Confirm(question string, accepted ...string) (bool, error) {
	if !p.Interactive {
		return false, ErrNotInteractive
	}

	if _, err := fmt.Fprint(p.Out, question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	answer = strings.TrimSpace(answer)
	for _, a := range accepted {
		if strings.EqualFold(answer, a) {
			return true, nil
		}
	}
	return false, nil
}
