package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/polyhouse/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store.
// This is located at ~/.polyhouse/templates.json.
func DefaultTemplatePath() (string, error) {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates.json"), nil
}

func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store. Without a file the store starts
// with the built-in designs.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	found, err := readJSON(path, &store)
	if err != nil {
		return model.TemplateStore{}, err
	}
	if !found {
		store = model.NewTemplateStore()
		for _, t := range model.BuiltinTemplates() {
			store.Add(t)
		}
		return store, nil
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	return store, nil
}

// LoadDefaultTemplates loads templates from the default path.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	path, err := DefaultTemplatePath()
	if err != nil {
		return model.NewTemplateStore(), err
	}
	return LoadTemplates(path)
}

// SaveDefaultTemplates saves templates to the default path.
func SaveDefaultTemplates(store model.TemplateStore) error {
	path, err := DefaultTemplatePath()
	if err != nil {
		return err
	}
	return SaveTemplates(path, store)
}
