package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/piwi3910/polyhouse/internal/project"
)

// ─── Template Dialog ───────────────────────────────────────

func (a *App) showTemplatesDialog() {
	list := container.NewVBox()
	var d dialog.Dialog
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()

		if len(a.templates.Templates) == 0 {
			list.Add(widget.NewLabel("No templates defined."))
			return
		}

		header := container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Roof", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		list.Add(header)
		list.Add(widget.NewSeparator())

		for i := range a.templates.Templates {
			t := a.templates.Templates[i]
			name := widget.NewLabel(t.Name)
			name.Truncation = fyne.TextTruncateEllipsis
			row := container.NewGridWithColumns(5,
				name,
				widget.NewLabel(fmt.Sprintf("%g x %g m", t.Config.Length, t.Config.Width)),
				widget.NewLabel(t.Config.RoofType.Label()),
				widget.NewButtonWithIcon("Use", theme.DocumentCreateIcon(), func() {
					a.openProject(t.ToProject(t.Name), "")
					d.Hide()
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.templates.Remove(t.ID)
					a.saveTemplates()
					refreshList()
				}),
			)
			list.Add(row)
		}
	}

	refreshList()

	saveBtn := widget.NewButtonWithIcon("Save Current Design as Template", theme.ContentAddIcon(), func() {
		a.showSaveTemplateDialog(refreshList)
	})
	restoreBtn := widget.NewButtonWithIcon("Restore Built-ins", theme.ViewRefreshIcon(), func() {
		for _, b := range model.BuiltinTemplates() {
			if a.templates.FindByID(b.ID) == nil {
				a.templates.Add(b)
			}
		}
		a.saveTemplates()
		refreshList()
	})

	toolbar := container.NewHBox(saveBtn, layout.NewSpacer(), restoreBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(list),
	)

	d = dialog.NewCustom("Design Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

func (a *App) showSaveTemplateDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("template name is required"), a.window)
				return
			}
			a.templates.Add(model.NewProjectTemplate(nameEntry.Text, descEntry.Text, a.project.Config))
			a.saveTemplates()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

func (a *App) saveTemplates() {
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		log.Printf("[UI] saving templates: %v", err)
		dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
	}
}
