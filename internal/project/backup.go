package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/polyhouse/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Templates model.TemplateStore `json:"templates"`
	Projects  []model.Project     `json:"projects,omitempty"`
}

// ExportAllData writes preferences, user templates and the given designs to
// a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, templates model.TemplateStore, projects []model.Project) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Templates: templates,
		Projects:  projects,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	backup := BackupData{Config: model.DefaultAppConfig()}
	found, err := readJSON(importPath, &backup)
	if err != nil {
		return BackupData{}, fmt.Errorf("reading backup: %w", err)
	}
	if !found {
		return BackupData{}, fmt.Errorf("backup file %s not found", importPath)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.ProjectTemplate{}
	}
	return backup, nil
}
