// Package main implements the vsforge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vsforge/internal/prof"
	"vsforge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vsforge",
	Short: "Symbolic-execution value-summary code generator",
	Long:  `vsforge lowers typed IR fixtures into target source operating on BDD-guarded value summaries.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to this path (\"-\" for stderr) in --trace-mode stream or both")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring tracer capacity, in events")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a driver heartbeat event at this interval (0 disables it)")

	var cpuProfilePath string
	cobra.OnInitialize(func() {
		if mode, err := rootCmd.PersistentFlags().GetString("color"); err == nil {
			applyColorMode(mode)
		}
		if path, err := rootCmd.PersistentFlags().GetString("cpuprofile"); err == nil && path != "" {
			if err := prof.StartCPU(path); err != nil {
				fmt.Fprintf(os.Stderr, "cpuprofile: %v\n", err)
			} else {
				cpuProfilePath = path
			}
		}
	})

	err := rootCmd.Execute()
	if cpuProfilePath != "" {
		prof.StopCPU()
	}
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyColorMode(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}
