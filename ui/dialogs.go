package ui

import (
	"errors"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ncruces/zenity"
	log "github.com/sirupsen/logrus"

	"mesongui/meson"
	"mesongui/models"
	"mesongui/scan"
	"mesongui/storage"
)

// ToolInfo is printed by the Tool Info button.
const ToolInfo = `Meson Build GUI
A graphical front-end for the meson build system and ninja.

Setup         meson setup <build> [options]
Configure     meson configure <build> [options]
Compile       ninja -C <build>
Test          ninja -C <build> test
Install       ninja -C <build> install
Version       meson --version
Introspection meson introspect --all <build>
Dist          meson dist -C <build>
Clean         ninja -C <build> clean

Settings are stored in settings.yaml under the user configuration directory.
`

// showSetup asks for a build directory and options, then runs meson setup.
func (mw *MainWindow) showSetup() {
	buildEntry := widget.NewEntry()
	buildEntry.SetText(mw.settings.BuildDir)
	optionsEntry := widget.NewEntry()
	optionsEntry.SetPlaceHolder("-Dbuildtype=release")

	form := dialog.NewForm("Setup", "Run", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Build directory", buildEntry),
			widget.NewFormItem("Options", optionsEntry),
		},
		func(confirm bool) {
			if !confirm {
				return
			}
			mw.setup(buildEntry.Text, optionsEntry.Text)
		},
		mw.window)
	form.Resize(fyne.NewSize(450, 200))
	form.Show()
}

// setup resolves buildDir against the source directory, shows it in the
// build entry and runs meson setup.
func (mw *MainWindow) setup(buildDir, options string) {
	mw.syncProject()
	buildDir = models.CleanPath(buildDir)
	if buildDir == "" {
		buildDir = mw.settings.BuildDir
	}
	if !filepath.IsAbs(buildDir) && mw.project.SourceDir != "" {
		buildDir = filepath.Join(mw.project.SourceDir, buildDir)
	}
	mw.buildEntry.SetText(buildDir)
	mw.runOperation(meson.Setup, options)
}

// showConfigure asks for options, then runs meson configure.
func (mw *MainWindow) showConfigure() {
	optionsEntry := widget.NewEntry()
	optionsEntry.SetPlaceHolder("-Doption=value")

	form := dialog.NewForm("Configure", "Run", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Options", optionsEntry),
		},
		func(confirm bool) {
			if confirm {
				mw.runOperation(meson.Configure, optionsEntry.Text)
			}
		},
		mw.window)
	form.Resize(fyne.NewSize(450, 150))
	form.Show()
}

// showSettings shows the settings dialog
func (mw *MainWindow) showSettings() {
	themeSelect := widget.NewSelect(storage.Themes, nil)
	themeSelect.SetSelected(mw.settings.GetTheme())

	buildEntry := widget.NewEntry()
	buildEntry.SetText(mw.settings.BuildDir)
	mesonEntry := widget.NewEntry()
	mesonEntry.SetText(mw.settings.Meson)
	ninjaEntry := widget.NewEntry()
	ninjaEntry.SetText(mw.settings.Ninja)

	form := dialog.NewForm("Settings", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Theme", themeSelect),
			widget.NewFormItem("Default build directory", buildEntry),
			widget.NewFormItem("meson", mesonEntry),
			widget.NewFormItem("ninja", ninjaEntry),
		},
		func(confirm bool) {
			if !confirm {
				return
			}
			mw.saveSettings(map[string]string{
				"theme":     themeSelect.Selected,
				"build_dir": buildEntry.Text,
				"meson":     mesonEntry.Text,
				"ninja":     ninjaEntry.Text,
			})
		},
		mw.window)

	form.Resize(fyne.NewSize(450, 260))
	form.Show()
}

// saveSettings validates and persists changed values, then applies the theme.
func (mw *MainWindow) saveSettings(values map[string]string) {
	next := mw.settings.Clone()
	for key, value := range values {
		if err := storage.Set(next, key, value); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
	}
	if err := mw.storage.SaveSettings(next); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	mw.settings = next
	applyTheme(mw.app, next.GetTheme())
	log.WithField("theme", next.GetTheme()).Info("settings saved")
}

// applyTheme switches the application between the light and dark themes.
func applyTheme(a fyne.App, name string) {
	if name == "dark" {
		a.Settings().SetTheme(theme.DarkTheme())
		return
	}
	a.Settings().SetTheme(theme.LightTheme())
}

// browse lets the user pick a directory for entry.
// Priority order: 1) zenity (native), 2) Fyne (fallback)
func (mw *MainWindow) browse(entry *widget.Entry) {
	start := entry.Text
	if start == "" {
		start = mw.project.SourceDir
	}

	if zenity.IsAvailable() {
		dir, err := zenity.SelectFile(
			zenity.Title("Select Directory"),
			zenity.Filename(start),
			zenity.Directory(),
		)
		if err == nil {
			mw.chosen(entry, dir)
			return
		}
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		log.WithError(err).Debug("native directory picker failed, using fyne dialog")
	}
	mw.openFyneFolderDialog(entry, start)
}

// chosen stores a picked directory. When the build entry is empty or still
// holds the default under the previous source tree, picking a source tree
// moves it along: to a build directory already configured inside the new
// tree if there is one, otherwise to the default name inside it.
func (mw *MainWindow) chosen(entry *widget.Entry, dir string) {
	if entry == mw.sourceEntry {
		previous := models.NewProject(models.CleanPath(mw.sourceEntry.Text), mw.settings.BuildDir).BuildDir
		build := models.CleanPath(mw.buildEntry.Text)
		if build == "" || build == previous {
			mw.buildEntry.SetText(scan.PreferredBuildDir(dir, mw.settings.BuildDir))
		}
	}
	entry.SetText(dir)
	mw.syncProject()
}

// openFyneFolderDialog is a fallback that uses the Fyne folder dialog
func (mw *MainWindow) openFyneFolderDialog(entry *widget.Entry, start string) {
	folderDialog := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if uri == nil {
			return
		}
		mw.chosen(entry, uri.Path())
	}, mw.window)

	if start != "" {
		if listable, err := fynestorage.ListerForURI(fynestorage.NewFileURI(start)); err == nil {
			folderDialog.SetLocation(listable)
		}
	}
	folderDialog.Show()
}
