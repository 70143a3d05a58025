// Package output provides styled terminal output for the stackforge CLI.
//
// All commands print through this package so messages stay visually
// consistent. Functions use lipgloss for styling but abstract away the
// details from callers.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool

	// Writer is where all output goes. Overridable for tests.
	Writer io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled. Callers use it to
// choose between streaming subprocess output and a progress spinner.
func IsVerbose() bool {
	return verboseMode
}

// Success prints a success message with 🚀 emoji and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: myapp")
func Success(msg string) {
	fmt.Fprintln(Writer, successStyle.Render("🚀 "+msg))
}

// Error prints an error message with ❌ emoji and red color.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Fprintln(Writer, errorStyle.Render("❌ "+msg))
}

// Warn prints a warning with ⚠️ emoji and yellow color.
// Use this for advisory failures that did not abort the run.
func Warn(msg string) {
	fmt.Fprintln(Writer, warnStyle.Render("⚠️  "+msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
// Use this for status updates or explanations.
func Info(msg string) {
	fmt.Fprintln(Writer, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd myapp")
//	output.Step("npm run dev")
func Step(msg string) {
	fmt.Fprintln(Writer, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(Writer, stepStyle.Render("🔍 "+msg))
	}
}
