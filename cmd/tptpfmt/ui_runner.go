package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tptpfmt/internal/driver"
	"tptpfmt/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

type checkOutcome struct {
	results []driver.CheckResult
	err     error
}

func runFormatWithUI(ctx context.Context, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.CollectFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	title := "formatting"
	if opts.Check {
		title = "checking format"
	}
	_, uiErr := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout)).Run()
	// программа могла выйти раньше времени; не даём воркерам заблокироваться
	go drain(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func runCheckWithUI(ctx context.Context, paths []string, opts driver.CheckOptions) ([]driver.CheckResult, error) {
	files, err := driver.CollectFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckPaths(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	_, uiErr := tea.NewProgram(ui.NewProgressModel("checking", files, events), tea.WithOutput(os.Stdout)).Run()
	// программа могла выйти раньше времени; не даём воркерам заблокироваться
	go drain(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// wantUI reports whether the progress view should be shown: only when asked
// for and stdout is a terminal.
func wantUI(requested bool) bool {
	return requested && isTerminal(os.Stdout)
}

func drain(events <-chan driver.Event) {
	for range events {
	}
}
