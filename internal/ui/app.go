package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/polyhouse/internal/builder"
	"github.com/piwi3910/polyhouse/internal/camera"
	"github.com/piwi3910/polyhouse/internal/crops"
	designimporter "github.com/piwi3910/polyhouse/internal/importer"
	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/piwi3910/polyhouse/internal/project"
	"github.com/piwi3910/polyhouse/internal/ui/widgets"
)

// frameInterval is the camera tick period (about 60 Hz).
const frameInterval = time.Second / 60

const maxRecentProjects = 10

// App holds all application state and UI references.
type App struct {
	window      fyne.Window
	project     model.Project
	projectPath string
	config      model.AppConfig
	templates   model.TemplateStore
	crops       *crops.Service

	history *History
	syncing bool

	builder  *builder.Builder
	model    model.Model
	camera   *camera.Controller
	stopTick chan struct{}

	// UI references for dynamic updates
	form      *configForm
	viewport  *widgets.Viewport
	elevation *widgets.Elevation
	estimate  *estimatePanel
	undoBtn   fyne.Disableable
	redoBtn   fyne.Disableable
}

// NewApp creates the configurator. svc may be unconfigured; crop
// suggestions then report the missing credential.
func NewApp(window fyne.Window, cfg model.AppConfig, svc *crops.Service) *App {
	p := model.NewProject()
	cfg.ApplyToConfig(&p.Config)

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		log.Printf("[UI] loading templates: %v", err)
	}

	a := &App{
		window:    window,
		project:   p,
		config:    cfg,
		templates: templates,
		crops:     svc,
		history:   NewHistory(),
		builder:   builder.New(),
		camera:    camera.NewController(p.Config),
	}
	a.model = a.builder.Build(p.Config)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Design", func() {
			p := model.NewProject()
			a.config.ApplyToConfig(&p.Config)
			a.openProject(p, "")
		}),
		fyne.NewMenuItem("New from Template...", func() {
			a.showTemplatesDialog()
		}),
		fyne.NewMenuItem("Open Design...", func() {
			a.loadProject()
		}),
		recent,
		fyne.NewMenuItem("Save Design...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Designs (CSV, Excel, DXF)...", func() {
			a.importDesigns()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Report (PDF)...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Drawing (DXF)...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export Bill of Materials (Excel)...", func() {
			a.exportXLSX()
		}),
		fyne.NewMenuItem("Export Part Tags (PDF)...", func() {
			a.exportTags()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { a.undo() }),
		fyne.NewMenuItem("Redo", func() { a.redo() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset View", func() { a.resetView() }),
	)

	settingsMenu := fyne.NewMenu("Settings",
		fyne.NewMenuItem("Preferences...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Templates...", func() {
			a.showTemplatesDialog()
		}),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, settingsMenu, helpMenu))
}

func (a *App) recentMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentProjects {
		p := path
		items = append(items, fyne.NewMenuItem(filepath.Base(p), func() {
			a.openPath(p)
		}))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("No recent designs", nil)
		none.Disabled = true
		items = append(items, none)
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About Polyhouse Configurator",
		"Polyhouse Configurator\n\n"+
			"Design a polyhouse, preview its frame in 3D,\n"+
			"estimate its cost for your region and export\n"+
			"reports, drawings and bills of materials.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.form = newConfigForm(a.project.Config, a.onFormChange)

	a.viewport = widgets.NewViewport()
	a.viewport.OnOrbit = func(yaw, pitch float64) {
		a.camera.Orbit(yaw, pitch)
		a.viewport.SetPose(a.camera.Pose())
	}
	a.viewport.OnZoom = func(factor float64) {
		a.camera.Zoom(factor)
		a.viewport.SetPose(a.camera.Pose())
	}
	a.viewport.SetModel(a.model)
	a.viewport.SetPose(a.camera.Pose())
	a.elevation = widgets.NewElevation(a.model, 520, 260)

	a.estimate = newEstimatePanel(a)

	undo := newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo)
	redo := newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo)
	reset := newIconButtonWithTooltip(theme.ViewRestoreIcon(), "Reset view", a.resetView)
	a.undoBtn, a.redoBtn = undo, redo
	a.refreshUndoButtons()

	views := container.NewAppTabs(
		container.NewTabItem("3D View", a.viewport),
		container.NewTabItem("End Wall", container.NewCenter(a.elevation)),
	)

	center := container.NewBorder(container.NewHBox(undo, redo, reset), nil, nil, nil, views)
	left := container.NewVScroll(a.form.content)
	left.SetMinSize(fyne.NewSize(300, 0))
	right := container.NewVScroll(a.estimate.content)
	right.SetMinSize(fyne.NewSize(300, 0))

	a.updateTitle()
	return container.NewBorder(nil, nil, left, right, center)
}

// Start begins the camera tick loop and the auto-save timer. Stop ends both.
func (a *App) Start() {
	a.stopTick = make(chan struct{})
	go a.tickLoop(a.stopTick)
	if a.config.AutoSaveInterval > 0 {
		go a.autoSaveLoop(a.stopTick, time.Duration(a.config.AutoSaveInterval)*time.Minute)
	}
}

func (a *App) Stop() {
	if a.stopTick != nil {
		close(a.stopTick)
		a.stopTick = nil
	}
}

func (a *App) tickLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			fyne.Do(func() {
				if !a.camera.Animating() {
					return
				}
				a.viewport.SetPose(a.camera.Tick(dt))
			})
		}
	}
}

func (a *App) autoSaveLoop(stop <-chan struct{}, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fyne.Do(func() {
				if a.projectPath == "" {
					return
				}
				if err := project.Save(a.projectPath, a.project); err != nil {
					log.Printf("[UI] auto-save failed: %v", err)
				}
			})
		}
	}
}

// ─── Configuration changes ─────────────────────────────────

func (a *App) onFormChange(cfg model.PolyhouseConfig, label string) {
	if a.syncing {
		return
	}
	a.history.Record(a.project.Config, label, time.Now())
	a.applyConfig(cfg)
}

// applyConfig rebuilds the model for cfg and starts a camera transition
// when the polyhouse type changed.
func (a *App) applyConfig(cfg model.PolyhouseConfig) {
	a.project.SetConfig(cfg)
	a.model = a.builder.Build(cfg)
	a.viewport.SetModel(a.model)
	a.elevation.SetModel(a.model)
	if a.config.AnimateCamera {
		a.camera.Update(cfg)
	} else {
		a.camera.Reset(cfg)
		a.viewport.SetPose(a.camera.Pose())
	}
	a.estimate.clear()
	a.refreshUndoButtons()
	a.updateTitle()
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.project.Config, "undo"))
	if !ok {
		return
	}
	a.restore(snap.Config)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.project.Config, "redo"))
	if !ok {
		return
	}
	a.restore(snap.Config)
}

func (a *App) restore(cfg model.PolyhouseConfig) {
	a.syncing = true
	a.form.set(cfg)
	a.syncing = false
	a.applyConfig(cfg)
}

func (a *App) resetView() {
	a.camera.Reset(a.project.Config)
	a.viewport.SetPose(a.camera.Pose())
}

func (a *App) refreshUndoButtons() {
	if a.undoBtn == nil {
		return
	}
	setEnabled(a.undoBtn, a.history.CanUndo())
	setEnabled(a.redoBtn, a.history.CanRedo())
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (a *App) updateTitle() {
	title := "Polyhouse Configurator - " + a.project.Name
	if a.projectPath != "" {
		title += " (" + filepath.Base(a.projectPath) + ")"
	}
	a.window.SetTitle(title)
}

// ─── Project files ─────────────────────────────────────────

func (a *App) openProject(p model.Project, path string) {
	a.project = p
	a.projectPath = path
	a.history.Clear()
	a.syncing = true
	a.form.set(p.Config)
	a.syncing = false

	a.model = a.builder.Build(p.Config)
	a.viewport.SetModel(a.model)
	a.elevation.SetModel(a.model)
	a.camera.Reset(p.Config)
	a.viewport.SetPose(a.camera.Pose())
	a.estimate.clear()
	if p.Estimate != nil {
		a.estimate.show(*p.Estimate)
	}
	a.estimate.setCrops(p.Crops)
	a.refreshUndoButtons()
	a.updateTitle()
}

func (a *App) openPath(path string) {
	p, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.openProject(p, path)
	a.rememberRecent(path)
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.projectPath = path
		a.rememberRecent(path)
		a.updateTitle()
	}, a.window)
	d.SetFileName(project.FileName(a.project))
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openPath(reader.URI().Path())
	}, a.window)
	d.Show()
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecentProject(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		log.Printf("[UI] saving recent designs: %v", err)
	}
	a.SetupMenus()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importDesigns() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := designimporter.ImportFile(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

// handleImportResult opens the first imported design. With several
// designs the user picks a folder to save them all into.
func (a *App) handleImportResult(result designimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		log.Printf("[UI] import warnings: %v", result.Warnings)
	}

	switch n := len(result.Projects); {
	case n == 1:
		a.openProject(result.Projects[0], "")
	case n > 1:
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil || dir == nil {
				return
			}
			paths, err := project.SaveAll(dir.Path(), result.Projects)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.openPath(paths[0])
			msg := fmt.Sprintf("Imported %d designs into %s.", len(paths), dir.Path())
			if len(result.Errors) > 0 {
				msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
			}
			dialog.ShowInformation("Import Complete", msg, a.window)
		}, a.window)
	}
}
