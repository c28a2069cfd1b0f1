package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new designs
	DefaultLength        float64       `json:"default_length"`
	DefaultWidth         float64       `json:"default_width"`
	DefaultEaveHeight    float64       `json:"default_eave_height"`
	DefaultRidgeHeight   float64       `json:"default_ridge_height"`
	DefaultPolyhouseType PolyhouseType `json:"default_polyhouse_type"`
	DefaultRoofType      RoofType      `json:"default_roof_type"`
	DefaultState         string        `json:"default_state"`
	DefaultDistrict      string        `json:"default_district"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
	AnimateCamera    bool     `json:"animate_camera"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultConfig().
func DefaultAppConfig() AppConfig {
	defaults := DefaultConfig()
	return AppConfig{
		DefaultLength:        defaults.Length,
		DefaultWidth:         defaults.Width,
		DefaultEaveHeight:    defaults.EaveHeight,
		DefaultRidgeHeight:   defaults.RidgeHeight,
		DefaultPolyhouseType: defaults.PolyhouseType,
		DefaultRoofType:      defaults.RoofType,
		DefaultState:         defaults.State,
		DefaultDistrict:      defaults.District,
		AutoSaveInterval:     0,
		RecentProjects:       []string{},
		Theme:                "system",
		AnimateCamera:        true,
	}
}

// ApplyToConfig copies the default values from AppConfig into a configuration.
// This is used when creating a new design so it inherits the user's saved defaults.
func (c AppConfig) ApplyToConfig(cfg *PolyhouseConfig) {
	cfg.Length = c.DefaultLength
	cfg.Width = c.DefaultWidth
	cfg.EaveHeight = c.DefaultEaveHeight
	cfg.RidgeHeight = c.DefaultRidgeHeight
	cfg.PolyhouseType = c.DefaultPolyhouseType
	cfg.RoofType = c.DefaultRoofType
	cfg.State = c.DefaultState
	cfg.District = c.DefaultDistrict
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
