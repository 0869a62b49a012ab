package merge

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sqmerge/sqmerge/pkg/log"
)

// ExecEditor runs the configured editor as a child process inheriting
// the terminal.
type ExecEditor struct {
	// BuildArgv returns the full argv for a given scratch-file path,
	// including any user-supplied editor arguments.
	BuildArgv func(path string) []string
}

// Edit invokes the editor on path and waits for it to exit.
func (e ExecEditor) Edit(path string) error {
	argv := e.BuildArgv(path)
	log.Debugw("invoking editor", "argv", argv)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}

// StdinPrompter reads answers line by line from an input stream.
type StdinPrompter struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewStdinPrompter creates a prompter over the process's stdin/stdout.
func NewStdinPrompter() *StdinPrompter {
	return &StdinPrompter{In: bufio.NewReader(os.Stdin), Out: os.Stdout}
}

// Ask prints the prompt and returns one line of input. EOF or any read
// error is returned to the caller, which treats it as an abort.
func (p *StdinPrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	line, err := p.In.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
