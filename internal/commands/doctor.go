package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/exec"
	"github.com/stackforge/stackforge/internal/output"
)

// DoctorCmd checks that the external tools generation relies on are
// available. The checks are advisory: a failing check never blocks a
// later `stackforge new`.
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are available",
		Run: func(cmd *cobra.Command, args []string) {
			settings, err := config.LoadSettings()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			checks := []struct {
				label  string
				binary string
			}{
				{"node", "node"},
				{"package manager", settings.PackageManager},
				{"git", settings.GitBinary},
			}

			for _, check := range checks {
				var buf bytes.Buffer
				ex := exec.NewExecutor(&exec.Options{
					Stdout:  &buf,
					Stderr:  &buf,
					Timeout: 10 * time.Second,
				})

				if err := ex.Run(cmd.Context(), check.binary, "--version"); err != nil {
					output.Warn(fmt.Sprintf("%s (%s): not available", check.label, check.binary))
					continue
				}
				version := strings.TrimSpace(strings.SplitN(buf.String(), "\n", 2)[0])
				output.Info(fmt.Sprintf("%s: %s", check.label, version))
			}

			output.Step("Checks are advisory; generation is never blocked by doctor.")
		},
	}
}
