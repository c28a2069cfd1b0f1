package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable polyhouse configuration.
type ProjectTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Config      PolyhouseConfig `json:"config"`
}

// NewProjectTemplate creates a new template from a configuration.
func NewProjectTemplate(name, description string, cfg PolyhouseConfig) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Config:      cfg,
	}
}

// ToProject creates a new Project from this template with a fresh ID.
func (t ProjectTemplate) ToProject(projectName string) Project {
	return NewProjectWithConfig(projectName, t.Config)
}

// BuiltinTemplates returns the starter designs shipped with the application.
func BuiltinTemplates() []ProjectTemplate {
	gable := DefaultConfig()

	venlo := DefaultConfig()
	venlo.Length, venlo.Width = 48, 32
	venlo.EaveHeight, venlo.RidgeHeight = 5, 6.5
	venlo.PolyhouseType = ClimateControlled
	venlo.RoofType = RoofVenlo
	venlo.CoverMaterial = Glass
	venlo.StructureMaterial = Aluminium
	venlo.SideVentilation = VentLouver
	venlo.TopVentilation = VentMotorizedRollup
	venlo.DoorEntry = DoorDoubleSliding
	venlo.Foggers, venlo.Fans = true, true

	padAndFan := DefaultConfig()
	padAndFan.Length, padAndFan.Width = 40, 20
	padAndFan.RoofType = RoofGothic
	padAndFan.PolyhouseType = FanAndPad
	padAndFan.SideVentilation = VentNone
	padAndFan.Fans = true
	padAndFan.InsectNet = true

	shade := DefaultConfig()
	shade.Length, shade.Width = 20, 10
	shade.EaveHeight, shade.RidgeHeight = 3, 4
	shade.PolyhouseType = ShadeNetHouse
	shade.RoofType = RoofFlat
	shade.CoverMaterial = ShadeNet
	shade.StructureMaterial = Bamboo
	shade.SideVentilation = VentNone
	shade.DoorEntry = DoorCurtain

	return []ProjectTemplate{
		{ID: "builtin-gable", Name: "Standard Gable", Description: "30 x 10 m naturally ventilated gable house", Config: gable},
		{ID: "builtin-venlo", Name: "Venlo Glasshouse", Description: "48 x 32 m climate controlled multi-span", Config: venlo},
		{ID: "builtin-fanpad", Name: "Fan & Pad Gothic", Description: "40 x 20 m gothic arch with evaporative cooling", Config: padAndFan},
		{ID: "builtin-shade", Name: "Shade Net House", Description: "20 x 10 m flat shade net house", Config: shade},
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}
