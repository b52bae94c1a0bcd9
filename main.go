package main

import (
	"errors"
	"os"

	"fyne.io/fyne/v2/app"

	"mesongui/cli"
	"mesongui/ui"
)

func main() {
	if err := cli.Execute(launchGUI); err != nil {
		var exitErr *cli.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// launchGUI opens the main window and blocks until it is closed
func launchGUI(opts cli.GUIOptions) error {
	a := app.NewWithID("io.github.mesongui")
	windowOpts := []ui.Option{ui.WithRunner(opts.Runner)}
	if opts.SourceDir != "" {
		windowOpts = append(windowOpts, ui.WithSourceDir(opts.SourceDir))
	}
	ui.NewMainWindow(a, opts.Storage, windowOpts...).ShowAndRun()
	return nil
}
