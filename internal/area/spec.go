package area

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies the kind of physical room being configured.
type Type string

const (
	TypeStudy      Type = "study"
	TypeLivingRoom Type = "living_room"
	TypeBedroom    Type = "bedroom"
	TypeKitchen    Type = "kitchen"
	TypeBathroom   Type = "bathroom"
	TypeUtility    Type = "utility"
)

// AllTypes lists every supported area type in display order.
var AllTypes = []Type{
	TypeStudy,
	TypeLivingRoom,
	TypeBedroom,
	TypeKitchen,
	TypeBathroom,
	TypeUtility,
}

// TypeDescriptions maps area types to human-readable names for display.
var TypeDescriptions = map[Type]string{
	TypeStudy:      "Study/Office",
	TypeLivingRoom: "Living Room",
	TypeBedroom:    "Bedroom",
	TypeKitchen:    "Kitchen",
	TypeBathroom:   "Bathroom",
	TypeUtility:    "Utility Room",
}

// ParseType converts a string into a Type.
// Returns a *ValidationError for unknown values.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := TypeDescriptions[t]; !ok {
		return "", &ValidationError{
			Field:   "area_type",
			Message: fmt.Sprintf("unknown area type %q (valid: %s)", s, joinTypes()),
		}
	}
	return t, nil
}

func joinTypes() string {
	names := make([]string, len(AllTypes))
	for i, t := range AllTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// DeviceKind identifies a category of smart device in an area.
// This is a closed set; each kind has exactly one generator.
type DeviceKind string

const (
	DeviceComputer         DeviceKind = "computer"
	DeviceTV               DeviceKind = "tv"
	DeviceMajorAppliance   DeviceKind = "major_appliance"
	DeviceBathroomFixture  DeviceKind = "bathroom_fixture"
	DeviceKitchenAppliance DeviceKind = "kitchen_appliance"
)

// AllDeviceKinds lists every supported device kind in stable display order.
// Generation walks the user's selection, not this list, but the checklist
// UI and the kinds command both present kinds in this order.
var AllDeviceKinds = []DeviceKind{
	DeviceComputer,
	DeviceTV,
	DeviceMajorAppliance,
	DeviceBathroomFixture,
	DeviceKitchenAppliance,
}

// DeviceKindDescriptions maps device kinds to human-readable descriptions.
var DeviceKindDescriptions = map[DeviceKind]string{
	DeviceComputer:         "Computer/PC setup",
	DeviceTV:               "Television/Entertainment system",
	DeviceMajorAppliance:   "Major appliance (washing machine, dishwasher, etc)",
	DeviceBathroomFixture:  "Bathroom fixtures (shower, ventilation, etc)",
	DeviceKitchenAppliance: "Kitchen appliances (fridge, oven, etc)",
}

// ParseDeviceKind converts a string into a DeviceKind.
// Returns a *ValidationError for unknown values.
func ParseDeviceKind(s string) (DeviceKind, error) {
	k := DeviceKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := DeviceKindDescriptions[k]; !ok {
		return "", &ValidationError{
			Field:   "devices",
			Message: fmt.Sprintf("unknown device kind %q", s),
		}
	}
	return k, nil
}

// LightingDefaults holds the default smart-lighting settings for an area.
type LightingDefaults struct {
	Brightness int    // Percent, 0-100
	ColorTemp  string // "warm", "cool" or "neutral"
	Transition int    // Seconds
}

// Features describes which signal sources and capabilities exist in an area.
// These flags gate the cross-cutting generators and supply prerequisites
// for the device generators.
type Features struct {
	MotionSensor      bool
	DoorSensor        bool
	WindowSensor      bool
	TemperatureSensor bool
	HumiditySensor    bool
	SmartLighting     bool
	Lighting          LightingDefaults
	PowerMonitoring   bool
	ClimateControl    bool
}

// DefaultFeatures returns the feature set preselected for a fresh area.
// Mirrors the defaults offered by the interactive wizard.
func DefaultFeatures() Features {
	return Features{
		MotionSensor:      true,
		DoorSensor:        true,
		TemperatureSensor: true,
		SmartLighting:     true,
		Lighting:          LightingDefaults{Brightness: 50, ColorTemp: "neutral", Transition: 1},
		PowerMonitoring:   true,
		ClimateControl:    true,
	}
}

// Spec is the complete, immutable description of one area.
// It lives for a single invocation; generators never mutate it.
type Spec struct {
	// Name is the display name of the area (e.g., "Master Bedroom").
	Name string

	// Type is the kind of room.
	Type Type

	// Devices lists the selected device kinds in selection order.
	// No kind appears twice.
	Devices []DeviceKind

	// Features flags the signal sources available in the area.
	Features Features

	// ApplianceType refines DeviceMajorAppliance
	// (e.g., "washing_machine", "dishwasher"). Empty means "appliance".
	ApplianceType string

	// EntityOverrides maps a source role (e.g., "humidity", "climate")
	// to a user-confirmed entity id, replacing the derived default.
	EntityOverrides map[string]string
}

// Slug returns the normalized form of the area name used in entity ids
// and the output filename: lowercase, whitespace collapsed to underscores,
// anything outside [a-z0-9_] dropped.
func (s *Spec) Slug() string {
	return Normalize(s.Name)
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// DisplayName returns the title-cased area name used in entity display
// names ("master bedroom" becomes "Master Bedroom"). Existing capitals are
// preserved, so "TV Room" stays "TV Room".
func (s *Spec) DisplayName() string {
	return titleCaser.String(strings.TrimSpace(s.Name))
}

// Normalize converts a display name into its slug form.
func Normalize(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == ' ', r == '\t', r == '-', r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// HasDevice reports whether the given kind was selected for this area.
func (s *Spec) HasDevice(kind DeviceKind) bool {
	for _, d := range s.Devices {
		if d == kind {
			return true
		}
	}
	return false
}

// SourceEntity returns the confirmed entity id for a role, or the supplied
// fallback when the user accepted the derived default.
func (s *Spec) SourceEntity(role, fallback string) string {
	if id, ok := s.EntityOverrides[role]; ok && id != "" {
		return id
	}
	return fallback
}

// Appliance returns the appliance type for the major-appliance generator,
// defaulting to "appliance" when unset.
func (s *Spec) Appliance() string {
	if s.ApplianceType == "" {
		return "appliance"
	}
	return s.ApplianceType
}

// Validate checks the spec for input errors before any generation runs.
// Returns a *ValidationError describing the first problem found.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "area name cannot be empty"}
	}
	if s.Slug() == "" {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("area name %q contains no usable characters", s.Name),
		}
	}
	if _, ok := TypeDescriptions[s.Type]; !ok {
		return &ValidationError{
			Field:   "area_type",
			Message: fmt.Sprintf("unknown area type %q (valid: %s)", string(s.Type), joinTypes()),
		}
	}

	seen := make(map[DeviceKind]bool, len(s.Devices))
	for _, d := range s.Devices {
		if _, ok := DeviceKindDescriptions[d]; !ok {
			return &ValidationError{
				Field:   "devices",
				Message: fmt.Sprintf("unknown device kind %q", string(d)),
			}
		}
		if seen[d] {
			return &ValidationError{
				Field:   "devices",
				Message: fmt.Sprintf("device kind %q selected twice", string(d)),
			}
		}
		seen[d] = true
	}

	if s.Features.SmartLighting {
		l := s.Features.Lighting
		if l.Brightness < 0 || l.Brightness > 100 {
			return &ValidationError{
				Field:   "lighting.brightness",
				Message: fmt.Sprintf("brightness must be 0-100, got %d", l.Brightness),
			}
		}
		if l.Transition < 0 {
			return &ValidationError{
				Field:   "lighting.transition",
				Message: fmt.Sprintf("transition must not be negative, got %d", l.Transition),
			}
		}
	}

	return nil
}
