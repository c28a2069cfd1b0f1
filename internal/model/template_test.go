package model

import (
	"testing"
)

func TestNewProjectTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoofType = RoofQuonset

	tmpl := NewProjectTemplate("Tunnel", "Quonset tunnel house", cfg)

	if tmpl.Name != "Tunnel" {
		t.Errorf("expected name 'Tunnel', got %q", tmpl.Name)
	}
	if tmpl.Description != "Quonset tunnel house" {
		t.Errorf("expected description 'Quonset tunnel house', got %q", tmpl.Description)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if tmpl.Config.RoofType != RoofQuonset {
		t.Errorf("expected quonset roof, got %s", tmpl.Config.RoofType)
	}
}

func TestProjectTemplate_ToProject(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = 42

	tmpl := NewProjectTemplate("Test", "desc", cfg)
	proj := tmpl.ToProject("My Project")

	if proj.Name != "My Project" {
		t.Errorf("expected project name 'My Project', got %q", proj.Name)
	}
	if proj.Config.Length != 42 {
		t.Errorf("expected length 42, got %f", proj.Config.Length)
	}
	if proj.ID == tmpl.ID {
		t.Error("project should get a fresh ID")
	}
}

func TestBuiltinTemplatesAreNormalized(t *testing.T) {
	for _, tmpl := range BuiltinTemplates() {
		if tmpl.Config != tmpl.Config.Normalized() {
			t.Errorf("template %s is not in normalized form", tmpl.Name)
		}
		if tmpl.Config.RidgeHeight <= tmpl.Config.EaveHeight {
			t.Errorf("template %s has no roof slope", tmpl.Name)
		}
	}
}

func TestTemplateStore_AddRemove(t *testing.T) {
	store := NewTemplateStore()

	t1 := NewProjectTemplate("A", "", DefaultConfig())
	t2 := NewProjectTemplate("B", "", DefaultConfig())
	store.Add(t1)
	store.Add(t2)

	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}
	if !store.Remove(t1.ID) {
		t.Error("expected Remove to return true")
	}
	if store.Remove("missing") {
		t.Error("expected Remove to return false for unknown ID")
	}
	if len(store.Templates) != 1 || store.Templates[0].Name != "B" {
		t.Errorf("unexpected store contents: %v", store.Names())
	}
}

func TestTemplateStore_Find(t *testing.T) {
	store := NewTemplateStore()
	tmpl := NewProjectTemplate("Venlo", "", DefaultConfig())
	store.Add(tmpl)

	if got := store.FindByID(tmpl.ID); got == nil || got.Name != "Venlo" {
		t.Errorf("FindByID failed: %v", got)
	}
	if got := store.FindByName("Venlo"); got == nil || got.ID != tmpl.ID {
		t.Errorf("FindByName failed: %v", got)
	}
	if store.FindByName("nope") != nil {
		t.Error("expected nil for unknown name")
	}
}
