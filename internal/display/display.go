// Package display formats interpreter output for the terminal: styled
// status messages and optional markdown rendering of help text.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)
)

var (
	outMu  sync.Mutex
	errOut io.Writer = os.Stderr
	stdOut io.Writer = os.Stdout
)

// SetOutput redirects messages; nil leaves a stream unchanged.
func SetOutput(stdout, stderr io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if stdout != nil {
		stdOut = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

func writers() (io.Writer, io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	return stdOut, errOut
}

// ShowError prints an error message to stderr.
func ShowError(msg string) {
	_, stderr := writers()
	fmt.Fprintln(stderr, errorStyle.Render("Error:")+" "+msg)
}

// ShowWarning prints a warning message to stderr.
func ShowWarning(msg string) {
	_, stderr := writers()
	fmt.Fprintln(stderr, warningStyle.Render("Warning: "+msg))
}

// ShowInfo prints a dimmed informational line to stdout.
func ShowInfo(msg string) {
	stdout, _ := writers()
	fmt.Fprintln(stdout, infoStyle.Render(msg))
}

// ShowBanner prints the interactive session greeting.
func ShowBanner(name, version string) {
	stdout, _ := writers()
	fmt.Fprintln(stdout, bannerStyle.Render(name+" "+version))
	fmt.Fprintln(stdout, infoStyle.Render("Type 'help' for commands, 'quit' or Ctrl+D to leave."))
}

// ShowContent prints text to stdout, adding a final newline if missing.
func ShowContent(text string) {
	stdout, _ := writers()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(stdout, text)
}
