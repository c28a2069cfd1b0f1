// Polyhouse Configurator: greenhouse design, 3D preview and cost estimates
//
// A cross-platform desktop application for configuring a polyhouse,
// previewing its frame, estimating its cost for an Indian state and
// exporting reports, drawings and bills of materials.
//
// Build:
//   go build -o polyhouse ./cmd/polyhouse
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o polyhouse.exe ./cmd/polyhouse
//   GOOS=darwin  GOARCH=amd64 go build -o polyhouse-darwin ./cmd/polyhouse
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/polyhouse/internal/config"
	"github.com/piwi3910/polyhouse/internal/crops"
	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/piwi3910/polyhouse/internal/project"
	"github.com/piwi3910/polyhouse/internal/ui"
)

func main() {
	cfg := config.Load()

	prefs, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("[UI] loading preferences: %v", err)
		prefs = model.DefaultAppConfig()
	}

	svc, err := crops.FromConfig(context.Background(), cfg)
	if err != nil {
		log.Printf("[CROPS] %v", err)
	}

	application := app.NewWithID("com.piwi3910.polyhouse")
	application.Settings().SetTheme(ui.ThemeFor(prefs.Theme))

	window := application.NewWindow("Polyhouse Configurator")

	appUI := ui.NewApp(window, prefs, svc)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	appUI.Start()
	window.SetOnClosed(appUI.Stop)
	window.ShowAndRun()
}
