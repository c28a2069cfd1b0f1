package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/piwi3910/polyhouse/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(formatMetres(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil && v > 0 {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil && v >= 0 {
				*val = v
			}
		}
		return e
	}

	typeChoice := newChoice(model.PolyhouseTypes, func(v model.PolyhouseType) {
		cfg.DefaultPolyhouseType = v
	})
	typeChoice.set(cfg.DefaultPolyhouseType)

	roofChoice := newChoice(model.RoofTypes, func(v model.RoofType) {
		cfg.DefaultRoofType = v
	})
	roofChoice.set(cfg.DefaultRoofType)

	stateSelect := widget.NewSelect(estimate.States(), func(selected string) {
		cfg.DefaultState = selected
	})
	if i := optionIndex(stateSelect.Options, cfg.DefaultState); i >= 0 {
		stateSelect.SetSelectedIndex(i)
	}

	districtEntry := widget.NewEntry()
	districtEntry.SetText(cfg.DefaultDistrict)
	districtEntry.OnChanged = func(text string) {
		cfg.DefaultDistrict = text
	}

	// Theme selector
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	animateCheck := widget.NewCheck("Animate camera between polyhouse types", func(on bool) {
		cfg.AnimateCamera = on
	})
	animateCheck.SetChecked(cfg.AnimateCamera)

	// Auto-save interval
	autoSaveEntry := intEntry(&cfg.AutoSaveInterval)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", autoSaveEntry),
		widget.NewFormItem("", animateCheck),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Length (m)", floatEntry(&cfg.DefaultLength)),
		widget.NewFormItem("Default Width (m)", floatEntry(&cfg.DefaultWidth)),
		widget.NewFormItem("Default Eave Height (m)", floatEntry(&cfg.DefaultEaveHeight)),
		widget.NewFormItem("Default Ridge Height (m)", floatEntry(&cfg.DefaultRidgeHeight)),
		widget.NewFormItem("Default Polyhouse Type", typeChoice.sel),
		widget.NewFormItem("Default Roof", roofChoice.sel),
		widget.NewFormItem("Default State", stateSelect),
		widget.NewFormItem("Default District", districtEntry),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.\nTheme and auto-save changes apply after a restart.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 600))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.templates, []model.Project{a.project}); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("polyhouse-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and templates.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.templates = backup.Templates
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					if err := project.SaveDefaultTemplates(a.templates); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported templates: %w", err), a.window)
						return
					}
					if len(backup.Projects) > 0 {
						a.openProject(backup.Projects[0], "")
					}
					a.SetupMenus()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, templates and the open design to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
