package main

import (
	"os"

	"github.com/stackforge/stackforge/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())
	rootCmd.AddCommand(commands.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
