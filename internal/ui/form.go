package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/model"
)

type labeled interface {
	comparable
	Label() string
}

// choice is a select bound to an enumerated model value.
type choice[T labeled] struct {
	sel    *widget.Select
	values []T
}

func newChoice[T labeled](values []T, onPick func(T)) *choice[T] {
	c := &choice[T]{values: values}
	c.sel = widget.NewSelect(labelsOf(values), func(string) {
		if i := c.sel.SelectedIndex(); i >= 0 {
			onPick(c.values[i])
		}
	})
	return c
}

func (c *choice[T]) set(v T) {
	for i, candidate := range c.values {
		if candidate == v {
			c.sel.SetSelectedIndex(i)
			return
		}
	}
	c.sel.ClearSelected()
}

func labelsOf[T labeled](values []T) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = v.Label()
	}
	return labels
}

// optionIndex finds value in options ignoring case, or returns -1.
func optionIndex(options []string, value string) int {
	for i, o := range options {
		if strings.EqualFold(o, value) {
			return i
		}
	}
	return -1
}

func formatMetres(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// configForm edits a PolyhouseConfig. Every edit reports the whole updated
// configuration together with a label naming the field.
type configForm struct {
	cfg      model.PolyhouseConfig
	onChange func(cfg model.PolyhouseConfig, label string)
	content  fyne.CanvasObject

	length, width, eave, ridge *widget.Entry
	district                   *widget.Entry
	state                      *widget.Select

	polyhouseType *choice[model.PolyhouseType]
	roofType      *choice[model.RoofType]
	structure     *choice[model.StructureMaterial]
	cover         *choice[model.CoverMaterial]
	sideVent      *choice[model.Ventilation]
	topVent       *choice[model.Ventilation]
	door          *choice[model.DoorEntry]

	insectNet, foggers, fans *widget.Check
}

func newConfigForm(cfg model.PolyhouseConfig, onChange func(model.PolyhouseConfig, string)) *configForm {
	f := &configForm{cfg: cfg}

	metres := func(label string, field *float64) *widget.Entry {
		e := widget.NewEntry()
		e.OnChanged = func(text string) {
			v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil || v <= 0 || v == *field {
				return
			}
			*field = v
			f.changed(label)
		}
		return e
	}
	f.length = metres("Length", &f.cfg.Length)
	f.width = metres("Width", &f.cfg.Width)
	f.eave = metres("Eave height", &f.cfg.EaveHeight)
	f.ridge = metres("Ridge height", &f.cfg.RidgeHeight)

	f.polyhouseType = newChoice(model.PolyhouseTypes, func(v model.PolyhouseType) {
		if v != f.cfg.PolyhouseType {
			f.cfg.PolyhouseType = v
			f.changed("Polyhouse type")
		}
	})
	f.roofType = newChoice(model.RoofTypes, func(v model.RoofType) {
		if v != f.cfg.RoofType {
			f.cfg.RoofType = v
			f.changed("Roof type")
		}
	})
	f.structure = newChoice(model.StructureMaterials, func(v model.StructureMaterial) {
		if v != f.cfg.StructureMaterial {
			f.cfg.StructureMaterial = v
			f.changed("Structure material")
		}
	})
	f.cover = newChoice(model.CoverMaterials, func(v model.CoverMaterial) {
		if v != f.cfg.CoverMaterial {
			f.cfg.CoverMaterial = v
			f.changed("Cover material")
		}
	})
	f.sideVent = newChoice(model.Ventilations, func(v model.Ventilation) {
		if v != f.cfg.SideVentilation {
			f.cfg.SideVentilation = v
			f.changed("Side ventilation")
		}
	})
	f.topVent = newChoice(model.Ventilations, func(v model.Ventilation) {
		if v != f.cfg.TopVentilation {
			f.cfg.TopVentilation = v
			f.changed("Top ventilation")
		}
	})
	f.door = newChoice(model.DoorEntries, func(v model.DoorEntry) {
		if v != f.cfg.DoorEntry {
			f.cfg.DoorEntry = v
			f.changed("Door")
		}
	})

	toggle := func(label string, field *bool) *widget.Check {
		return widget.NewCheck(label, func(on bool) {
			if on != *field {
				*field = on
				f.changed(label)
			}
		})
	}
	f.insectNet = toggle("Insect net", &f.cfg.InsectNet)
	f.foggers = toggle("Foggers", &f.cfg.Foggers)
	f.fans = toggle("Exhaust fans", &f.cfg.Fans)

	f.state = widget.NewSelect(estimate.States(), func(s string) {
		if s != "" && s != f.cfg.State {
			f.cfg.State = s
			f.changed("State")
		}
	})
	f.district = widget.NewEntry()
	f.district.SetPlaceHolder("District")
	f.district.OnChanged = func(text string) {
		if text != f.cfg.District {
			f.cfg.District = text
			f.changed("District")
		}
	}

	f.content = container.NewVBox(
		widget.NewCard("Dimensions", "metres", widget.NewForm(
			widget.NewFormItem("Length", f.length),
			widget.NewFormItem("Width", f.width),
			widget.NewFormItem("Eave height", f.eave),
			widget.NewFormItem("Ridge height", f.ridge),
		)),
		widget.NewCard("Structure", "", widget.NewForm(
			widget.NewFormItem("Type", f.polyhouseType.sel),
			widget.NewFormItem("Roof", f.roofType.sel),
			widget.NewFormItem("Frame", f.structure.sel),
			widget.NewFormItem("Cover", f.cover.sel),
		)),
		widget.NewCard("Climate control", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Side vents", f.sideVent.sel),
				widget.NewFormItem("Top vents", f.topVent.sel),
				widget.NewFormItem("Door", f.door.sel),
			),
			f.insectNet, f.foggers, f.fans,
		)),
		widget.NewCard("Location", "", widget.NewForm(
			widget.NewFormItem("State", f.state),
			widget.NewFormItem("District", f.district),
		)),
	)

	f.set(cfg)
	f.onChange = onChange
	return f
}

func (f *configForm) changed(label string) {
	if f.onChange != nil {
		f.onChange(f.cfg, label)
	}
}

// set shows cfg in every field. Widget callbacks fire while fields are
// updated; the owner is expected to ignore them.
func (f *configForm) set(cfg model.PolyhouseConfig) {
	f.cfg = cfg
	f.length.SetText(formatMetres(cfg.Length))
	f.width.SetText(formatMetres(cfg.Width))
	f.eave.SetText(formatMetres(cfg.EaveHeight))
	f.ridge.SetText(formatMetres(cfg.RidgeHeight))

	f.polyhouseType.set(cfg.PolyhouseType)
	f.roofType.set(cfg.RoofType)
	f.structure.set(cfg.StructureMaterial)
	f.cover.set(cfg.CoverMaterial)
	f.sideVent.set(cfg.SideVentilation)
	f.topVent.set(cfg.TopVentilation)
	f.door.set(cfg.DoorEntry)

	f.insectNet.SetChecked(cfg.InsectNet)
	f.foggers.SetChecked(cfg.Foggers)
	f.fans.SetChecked(cfg.Fans)

	if i := optionIndex(f.state.Options, cfg.State); i >= 0 {
		f.state.SetSelectedIndex(i)
	} else {
		f.state.ClearSelected()
	}
	f.district.SetText(cfg.District)
	f.cfg = cfg
}
