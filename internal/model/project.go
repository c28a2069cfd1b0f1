package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is a saved polyhouse design: the configuration plus the last
// estimate and crop suggestions computed for it.
type Project struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Notes     string             `json:"notes,omitempty"`
	Config    PolyhouseConfig    `json:"config"`
	Estimate  *CalculationResult `json:"estimate,omitempty"`
	Crops     string             `json:"crops,omitempty"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

func NewProject() Project {
	return NewProjectWithConfig("Untitled", DefaultConfig())
}

// NewProjectWithConfig creates a project holding cfg.
func NewProjectWithConfig(name string, cfg PolyhouseConfig) Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// SetConfig replaces the configuration and discards results computed for
// the previous one.
func (p *Project) SetConfig(cfg PolyhouseConfig) {
	p.Config = cfg
	p.Estimate = nil
	p.Crops = ""
	p.Touch()
}
