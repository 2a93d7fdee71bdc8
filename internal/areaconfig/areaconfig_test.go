package areaconfig

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/devices"
	"github.com/muurk/areacfg/internal/entity"
)

func studySpec() *area.Spec {
	return &area.Spec{
		Name:     "Study",
		Type:     area.TypeStudy,
		Devices:  []area.DeviceKind{area.DeviceComputer},
		Features: area.DefaultFeatures(),
	}
}

func TestBuildStudy(t *testing.T) {
	doc, err := Build(studySpec())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if doc.AreaName != "Study" {
		t.Errorf("AreaName = %q, want 'Study'", doc.AreaName)
	}
	if doc.Slug != "study" {
		t.Errorf("Slug = %q, want 'study'", doc.Slug)
	}

	// Every expected entity shows up exactly once.
	ids := collectUniqueIDs(doc.Templates)
	for _, want := range []string{
		"study_occupancy",
		"study_total_power",
		"study_daily_energy",
		"study_comfort_state",
		"study_pc_active",
		"study_pc_power_draw",
		"study_pc_temperature",
		"study_pc_active_app",
	} {
		if ids[want] != 1 {
			t.Errorf("unique id %q appears %d times, want 1", want, ids[want])
		}
	}

	// Occupancy leads the binary sensors, ahead of the device entities.
	var binaryIDs []string
	for _, frag := range doc.Templates {
		if frag.Category != entity.CategoryBinarySensor {
			continue
		}
		for _, def := range frag.Entries {
			binaryIDs = append(binaryIDs, def.UniqueID)
		}
	}
	if len(binaryIDs) == 0 || binaryIDs[0] != "study_occupancy" {
		t.Errorf("binary sensor order = %v, want study_occupancy first", binaryIDs)
	}

	if !hasInputNumber(doc.InputNumbers, "study_power_threshold") {
		t.Error("missing study_power_threshold input number")
	}
	if !hasInputBoolean(doc.InputBooleans, "study_occupied_override") {
		t.Error("missing study_occupied_override input boolean")
	}
}

func TestBuildValidatesSpec(t *testing.T) {
	spec := studySpec()
	spec.Name = "   "

	_, err := Build(spec)
	if err == nil {
		t.Fatal("Build() error = nil, want validation error")
	}
	if !area.IsValidationError(err) {
		t.Errorf("IsValidationError(%v) = false", err)
	}
}

func TestBuildPropagatesGenerationError(t *testing.T) {
	spec := &area.Spec{
		Name:     "Main Bathroom",
		Type:     area.TypeBathroom,
		Devices:  []area.DeviceKind{area.DeviceBathroomFixture},
		Features: area.DefaultFeatures(),
	}
	// Default features leave the humidity sensor off, and no override
	// supplies a source, so the bathroom generator must refuse.

	_, err := Build(spec)
	if err == nil {
		t.Fatal("Build() error = nil, want generation error")
	}
	if !devices.IsGenerationError(err) {
		t.Errorf("IsGenerationError(%v) = false", err)
	}
}

func TestBuildSkipsDisabledGenerators(t *testing.T) {
	spec := studySpec()
	spec.Features.PowerMonitoring = false
	spec.Features.ClimateControl = false

	doc, err := Build(spec)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ids := collectUniqueIDs(doc.Templates)
	for _, unwanted := range []string{"study_total_power", "study_daily_energy", "study_comfort_state"} {
		if ids[unwanted] != 0 {
			t.Errorf("unique id %q present with its generator disabled", unwanted)
		}
	}
	if ids["study_pc_active"] != 1 {
		t.Error("device entities missing when area generators are disabled")
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := Render(studySpec())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render(studySpec())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Render() produced different bytes for identical specs")
	}
}

func TestRenderParsesAsYAML(t *testing.T) {
	spec := &area.Spec{
		Name:          "Utility Room",
		Type:          area.TypeUtility,
		Devices:       []area.DeviceKind{area.DeviceMajorAppliance},
		Features:      area.DefaultFeatures(),
		ApplianceType: "washing_machine",
	}

	out, err := Render(spec)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("generated YAML does not parse: %v", err)
	}
	if _, ok := parsed["Utility Room"]; !ok {
		t.Errorf("missing top-level area key in:\n%s", out)
	}
	if !strings.Contains(string(out), "washing_machine_cycle_state") {
		t.Error("appliance type not reflected in generated entities")
	}
}

func collectUniqueIDs(frags []entity.ConfigFragment) map[string]int {
	ids := make(map[string]int)
	for _, frag := range frags {
		for _, def := range frag.Entries {
			ids[def.UniqueID]++
		}
		for _, fan := range frag.Fans {
			ids[fan.Key]++
		}
	}
	return ids
}

func hasInputNumber(numbers []entity.InputNumber, key string) bool {
	for _, n := range numbers {
		if n.Key == key {
			return true
		}
	}
	return false
}

func hasInputBoolean(booleans []entity.InputBoolean, key string) bool {
	for _, b := range booleans {
		if b.Key == key {
			return true
		}
	}
	return false
}
