package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vsforge/internal/diag"
	"vsforge/internal/genpipeline"
	"vsforge/internal/trace"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <fixture.mp>...",
	Short: "Generate target source from one or more IR fixtures",
	Long:  `Generate lowers each typed IR fixture into its target source artifact, named by the fixture's own job config.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  generateExecution,
}

func init() {
	generateCmd.Flags().String("out", "", "output directory (defaults to vsforge.toml's generate.out_dir, or \"build\")")
	generateCmd.Flags().Int("jobs", 0, "max fixtures generated concurrently (defaults to vsforge.toml's generate.jobs, or 4)")
	generateCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
}

func generateExecution(cmd *cobra.Command, args []string) error {
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	jobsFlag, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	cfg, _, err := loadProjectConfig("vsforge.toml")
	if err != nil {
		return fmt.Errorf("reading vsforge.toml: %w", err)
	}

	outDir := outFlag
	if outDir == "" {
		outDir = cfg.Generate.OutDir
	}
	jobLimit := jobsFlag
	if jobLimit <= 0 {
		jobLimit = cfg.Generate.Jobs
	}

	jobs := make([]genpipeline.Job, len(args))
	for i, path := range args {
		jobs[i] = genpipeline.Job{FixturePath: path, OutDir: outDir}
	}

	useTUI := shouldUseTUI(uiModeValue)

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer traceCleanup()

	heartbeatInterval, err := cmd.Root().PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return err
	}
	heartbeat := trace.StartHeartbeat(trace.FromContext(cmd.Context()), heartbeatInterval)
	defer heartbeat.Stop()

	var results []genpipeline.Result
	if useTUI {
		results, err = runGenerateWithUI(cmd.Context(), "vsforge generate", jobs, jobLimit)
	} else {
		results, err = genpipeline.RunMany(cmd.Context(), jobs, jobLimit, nil)
	}

	bag := diag.NewBag(len(results))
	reporter := diag.BagReporter{Bag: bag}
	for _, res := range results {
		if d, failed := res.Diagnostic(); failed {
			reporter.Report(d.Code, d.Severity, d.Location, d.Message, d.Notes)
			continue
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "generated %s\n", res.Out)
		}
		if showTimings {
			printJobTimings(os.Stdout, res.Job.FixturePath, res.Timer)
		}
	}

	bag.Sort()
	for _, d := range bag.Items() {
		fmt.Fprintf(os.Stderr, "%s[%s] %s: %s\n", d.Severity, d.Code, d.Location, d.Message)
	}

	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return fmt.Errorf("%d of %d fixtures failed to generate", bag.Len(), len(results))
	}
	return nil
}
