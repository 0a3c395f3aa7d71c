package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"vsforge/internal/genpipeline"
	"vsforge/internal/ui"
)

// runGenerateWithUI drives jobs through genpipeline while a bubbletea
// progress model renders their Load/Generate/Write transitions.
func runGenerateWithUI(ctx context.Context, title string, jobs []genpipeline.Job, jobLimit int) ([]genpipeline.Result, error) {
	names := make([]string, len(jobs))
	for i, j := range jobs {
		// genpipeline.Run names each event's fixture by its base name.
		names[i] = filepath.Base(j.FixturePath)
	}

	events := make(chan genpipeline.Event, 256)
	resultsCh := make(chan []genpipeline.Result, 1)
	errCh := make(chan error, 1)

	go func() {
		results, err := genpipeline.RunMany(ctx, jobs, jobLimit, genpipeline.ChannelSink{Ch: events})
		resultsCh <- results
		errCh <- err
		close(events)
	}()

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	results := <-resultsCh
	runErr := <-errCh
	if uiErr != nil {
		return results, uiErr
	}
	return results, runErr
}
