package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"mesongui/meson"
	"mesongui/models"
	"mesongui/monitor"
	"mesongui/relay"
	"mesongui/runner"
	"mesongui/storage"
)

// WindowTitle is the title of the main window
const WindowTitle = "Meson Build GUI"

// MainWindow represents the main application window
type MainWindow struct {
	app      fyne.App
	window   fyne.Window
	storage  *storage.Manager
	settings *models.Settings
	project  *models.Project
	registry *meson.Registry
	runner   *runner.Runner
	monitor  *monitor.ReleaseMonitor

	updates *relay.Queue[func()]
	console *Console
	status  *StatusBadge

	sourceEntry *widget.Entry
	buildEntry  *widget.Entry

	inflight sync.WaitGroup
}

// Option customises a MainWindow
type Option func(*MainWindow)

// WithRunner replaces the process runner
func WithRunner(r *runner.Runner) Option {
	return func(mw *MainWindow) { mw.runner = r }
}

// WithMonitor replaces the release monitor
func WithMonitor(m *monitor.ReleaseMonitor) Option {
	return func(mw *MainWindow) { mw.monitor = m }
}

// WithSourceDir preselects the source directory
func WithSourceDir(dir string) Option {
	return func(mw *MainWindow) { mw.project = models.NewProject(absPath(dir), mw.settings.BuildDir) }
}

// absPath cleans dir and makes it absolute when possible.
func absPath(dir string) string {
	dir = models.CleanPath(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// NewMainWindow creates the main window on a. The project starts at the
// current working directory unless WithSourceDir is given.
func NewMainWindow(a fyne.App, store *storage.Manager, opts ...Option) *MainWindow {
	a.SetIcon(theme.ComputerIcon())

	window := a.NewWindow(WindowTitle)
	window.Resize(fyne.NewSize(650, 400))

	mw := &MainWindow{
		app:      a,
		window:   window,
		storage:  store,
		registry: meson.DefaultRegistry(),
		runner:   runner.New(),
		monitor:  monitor.NewReleaseMonitor(),
		updates:  relay.NewQueue[func()](),
	}
	mw.loadSettings()
	mw.project = models.NewProject(absPath("."), mw.settings.BuildDir)

	for _, opt := range opts {
		opt(mw)
	}

	go mw.updates.Run(func(update func()) { update() })

	mw.console = NewConsole(mw.updates)
	mw.status = NewStatusBadge()
	mw.setupUI()
	applyTheme(a, mw.settings.GetTheme())

	window.SetOnClosed(mw.updates.Close)
	return mw
}

// ShowAndRun shows the window and runs the application
func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}

// Window returns the underlying fyne window
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}

// Console returns the output console
func (mw *MainWindow) Console() *Console {
	return mw.console
}

// Wait blocks until every dispatched operation has finished and its output
// has reached the console.
func (mw *MainWindow) Wait() {
	mw.inflight.Wait()
	mw.console.Sync()
}

// loadSettings loads settings from storage
func (mw *MainWindow) loadSettings() {
	settings, err := mw.storage.LoadSettings()
	if err != nil {
		log.WithError(err).Warn("failed to load settings, using defaults")
		dialog.ShowError(err, mw.window)
		settings = models.DefaultSettings()
	}
	mw.settings = settings
}

// setupUI sets up the user interface
func (mw *MainWindow) setupUI() {
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), mw.console.Clear),
		widget.NewToolbarAction(theme.DownloadIcon(), mw.checkRelease),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.InfoIcon(), mw.showToolInfo),
		widget.NewToolbarAction(theme.SettingsIcon(), mw.showSettings),
	)

	mw.sourceEntry = widget.NewEntry()
	mw.sourceEntry.SetPlaceHolder("Source directory")
	mw.sourceEntry.SetText(mw.project.SourceDir)
	mw.sourceEntry.OnChanged = mw.project.SetSourceDir

	mw.buildEntry = widget.NewEntry()
	mw.buildEntry.SetPlaceHolder("Build directory")
	mw.buildEntry.SetText(mw.project.BuildDir)
	mw.buildEntry.OnChanged = mw.project.SetBuildDir

	dirs := widget.NewForm(
		widget.NewFormItem("Source", container.NewBorder(nil, nil, nil,
			widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), func() { mw.browse(mw.sourceEntry) }),
			mw.sourceEntry)),
		widget.NewFormItem("Build", container.NewBorder(nil, nil, nil,
			widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), func() { mw.browse(mw.buildEntry) }),
			mw.buildEntry)),
	)

	opButton := func(label string, op meson.Operation) *widget.Button {
		return widget.NewButton(label, func() { mw.runOperation(op, "") })
	}
	buildRow := container.NewGridWithColumns(5,
		widget.NewButton("Setup", mw.showSetup),
		widget.NewButton("Configure", mw.showConfigure),
		opButton("Compile", meson.Compile),
		opButton("Test", meson.Test),
		opButton("Install", meson.Install),
	)
	toolRow := container.NewGridWithColumns(5,
		opButton("Version", meson.Version),
		opButton("Introspection", meson.Introspect),
		opButton("Dist", meson.Dist),
		opButton("Clean", meson.Clean),
		widget.NewButton("Clear Terminal", mw.console.Clear),
	)

	statusRow := container.NewHBox(widget.NewLabel("Last result:"), mw.status, layout.NewSpacer(),
		widget.NewButton("Tool Info", mw.showToolInfo),
		widget.NewButton("Check Release", mw.checkRelease),
		widget.NewButton("Settings", mw.showSettings))

	top := container.NewVBox(toolbar, dirs, buildRow, toolRow, statusRow)
	mw.window.SetContent(container.NewBorder(top, nil, nil, nil, mw.console.Object()))
}

// syncProject copies the directory entries into the project.
func (mw *MainWindow) syncProject() {
	mw.project.SetSourceDir(mw.sourceEntry.Text)
	mw.project.SetBuildDir(mw.buildEntry.Text)
}

// params snapshots the current project and settings for a worker.
func (mw *MainWindow) params(options string) meson.Params {
	return meson.ParamsFrom(mw.project, mw.settings, options)
}

// runOperation validates op and runs it in the background. It must be
// called from the interface goroutine.
func (mw *MainWindow) runOperation(op meson.Operation, options string) {
	mw.syncProject()
	mw.dispatch(op, mw.params(options))
}

func (mw *MainWindow) dispatch(op meson.Operation, params meson.Params) {
	if err := meson.Check(op, params); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	inv, err := mw.registry.Build(op, params)
	if err != nil {
		dialog.ShowError(err, mw.window)
		return
	}

	log.WithFields(log.Fields{"op": op, "id": inv.ID}).Debug("dispatching operation")
	header := meson.Header(op, params)
	mw.inflight.Add(1)
	go mw.execute(inv, header)
}

func (mw *MainWindow) execute(inv *models.Invocation, header string) {
	defer mw.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			log.WithField("id", inv.ID).Errorf("operation panicked: %v", r)
			mw.console.Append(fmt.Sprintf("[error: %v]\n", r))
			mw.setStatus(runner.StatusError)
		}
	}()

	mw.setStatus(StatusRunning)
	mw.console.Append(header)
	res := mw.runner.Stream(context.Background(), inv, mw.console.Append)
	if !res.OK() {
		mw.console.Append(res.Message())
	}
	mw.setStatus(res.Status)
}

func (mw *MainWindow) setStatus(status string) {
	mw.updates.Post(func() { mw.status.SetStatus(status) })
}

// checkRelease compares the installed meson with the latest release.
func (mw *MainWindow) checkRelease() {
	inv, err := mw.registry.Build(meson.Version, mw.params(""))
	if err != nil {
		dialog.ShowError(err, mw.window)
		return
	}

	mw.inflight.Add(1)
	go func() {
		defer mw.inflight.Done()
		mw.console.Append("Checking for a newer meson release...\n")

		res := mw.runner.Run(context.Background(), inv)
		if !res.OK() {
			mw.console.Append(res.Message())
			return
		}
		info, err := mw.monitor.Check(context.Background(), res.Stdout)
		if err != nil {
			log.WithError(err).Warn("release check failed")
			mw.console.Append(fmt.Sprintf("[error: %v]\n", err))
			return
		}
		mw.console.Append(info.Description() + "\n")
	}()
}

// showToolInfo prints the about text to the console
func (mw *MainWindow) showToolInfo() {
	mw.console.Append(ToolInfo)
}
