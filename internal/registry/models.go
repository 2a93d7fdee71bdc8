package registry

import "time"

// Registry represents the entire user configuration file.
// This stores application preferences and a record of every area the tool
// has generated, so repeat runs can offer the previous answers as defaults.
type Registry struct {
	Version     int                    `yaml:"version"`
	Areas       map[string]*AreaRecord `yaml:"areas,omitempty"` // Keyed by area slug
	Preferences *Preferences           `yaml:"preferences,omitempty"`
}

// AreaRecord remembers one generated area.
// This is keyed by the area's slug in the Registry.
type AreaRecord struct {
	DisplayName   string    `yaml:"display_name"`             // Display name as entered (e.g., "Master Bedroom")
	AreaType      string    `yaml:"area_type"`                // Room kind (e.g., "bedroom")
	Devices       []string  `yaml:"devices,omitempty"`        // Selected device kinds, in selection order
	ApplianceType string    `yaml:"appliance_type,omitempty"` // Refinement for major appliances
	LastGenerated time.Time `yaml:"last_generated,omitempty"` // When the configuration was last produced
	OutputPath    string    `yaml:"output_path,omitempty"`    // Where the YAML was last written
	EntityCount   int       `yaml:"entity_count,omitempty"`   // Entities in the last document
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	OutputDir            string `yaml:"output_dir,omitempty"`     // Default directory for generated files
	DefaultApplianceType string `yaml:"default_appliance_type"`   // Preselected appliance refinement
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Areas:   make(map[string]*AreaRecord),
		Preferences: &Preferences{
			DefaultApplianceType: "appliance",
		},
	}
}

// GetArea retrieves the record for an area by slug.
// Returns nil if the area has never been generated.
func (r *Registry) GetArea(slug string) *AreaRecord {
	return r.Areas[slug]
}

// EnsureArea ensures a record exists for the given slug.
// If the area doesn't exist, creates a new entry with default values.
// Returns the record (existing or newly created).
func (r *Registry) EnsureArea(slug string) *AreaRecord {
	if r.Areas == nil {
		r.Areas = make(map[string]*AreaRecord)
	}

	if record, exists := r.Areas[slug]; exists {
		return record
	}

	record := &AreaRecord{}
	r.Areas[slug] = record
	return record
}

// RecordGeneration updates an area's record after a successful generation.
func (r *Registry) RecordGeneration(slug, displayName, areaType string, devices []string, applianceType, outputPath string, entityCount int) {
	record := r.EnsureArea(slug)
	record.DisplayName = displayName
	record.AreaType = areaType
	record.Devices = devices
	record.ApplianceType = applianceType
	record.LastGenerated = time.Now()
	record.OutputPath = outputPath
	record.EntityCount = entityCount
}

// SetOutputDir stores the preferred output directory.
func (r *Registry) SetOutputDir(dir string) {
	if r.Preferences == nil {
		r.Preferences = &Preferences{DefaultApplianceType: "appliance"}
	}
	r.Preferences.OutputDir = dir
}

// OutputDirOr returns the preferred output directory, or fallback when no
// preference has been stored.
func (r *Registry) OutputDirOr(fallback string) string {
	if r.Preferences != nil && r.Preferences.OutputDir != "" {
		return r.Preferences.OutputDir
	}
	return fallback
}
