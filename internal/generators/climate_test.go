package generators

import (
	"strings"
	"testing"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
)

func climateSpec(t area.Type, name string) *area.Spec {
	return &area.Spec{
		Name:     name,
		Type:     t,
		Features: area.DefaultFeatures(),
	}
}

func TestComfortForDiffersByAreaType(t *testing.T) {
	bathroom := ComfortFor(area.TypeBathroom)
	bedroom := ComfortFor(area.TypeBedroom)

	if bathroom.HumidityHigh <= bedroom.HumidityHigh {
		t.Errorf("bathroom humidity threshold (%g) should exceed bedroom's (%g)",
			bathroom.HumidityHigh, bedroom.HumidityHigh)
	}

	// Unknown types fall back to a sane default instead of zero thresholds.
	fallback := ComfortFor(area.Type("garage"))
	if fallback.HumidityHigh == 0 {
		t.Error("ComfortFor(unknown) returned zero thresholds")
	}
}

func TestClimateComfortSensor(t *testing.T) {
	frags, err := Climate(climateSpec(area.TypeBathroom, "Bath"))
	if err != nil {
		t.Fatalf("Climate() error = %v", err)
	}

	var comfort string
	for _, f := range frags {
		for _, e := range f.Entries {
			if e.UniqueID == "bath_comfort_state" {
				comfort = e.State
			}
		}
	}
	if comfort == "" {
		t.Fatal("Climate() missing comfort state sensor")
	}

	// Bathroom thresholds, not the defaults.
	if !strings.Contains(comfort, "humidity > 80") {
		t.Errorf("bathroom comfort state should use the bathroom humidity threshold:\n%s", comfort)
	}
	for _, state := range []string{"uncomfortable", "moderate", "comfortable"} {
		if !strings.Contains(comfort, state) {
			t.Errorf("comfort state missing classification %q:\n%s", state, comfort)
		}
	}
}

func TestClimateHumidityGating(t *testing.T) {
	spec := climateSpec(area.TypeBedroom, "Bedroom")

	frags, err := Climate(spec)
	if err != nil {
		t.Fatalf("Climate() error = %v", err)
	}
	if hasUniqueID(frags, "bedroom_humidity_trend") {
		t.Error("humidity trend should not be generated without a humidity source")
	}

	spec.Features.HumiditySensor = true
	frags, err = Climate(spec)
	if err != nil {
		t.Fatalf("Climate() error = %v", err)
	}
	if !hasUniqueID(frags, "bedroom_humidity_trend") {
		t.Error("humidity trend missing despite humidity sensor feature")
	}
	if !hasUniqueID(frags, "bedroom_high_humidity") {
		t.Error("high humidity sensor missing despite humidity sensor feature")
	}
}

func TestClimateWindowGating(t *testing.T) {
	spec := climateSpec(area.TypeStudy, "Study")

	frags, err := Climate(spec)
	if err != nil {
		t.Fatalf("Climate() error = %v", err)
	}
	if hasUniqueID(frags, "study_windows_open") {
		t.Error("window monitoring should not be generated without window sensors")
	}

	spec.Features.WindowSensor = true
	frags, err = Climate(spec)
	if err != nil {
		t.Fatalf("Climate() error = %v", err)
	}
	if !hasUniqueID(frags, "study_windows_open") {
		t.Error("window monitoring missing despite window sensor feature")
	}
}

func hasUniqueID(frags []entity.ConfigFragment, id string) bool {
	for _, f := range frags {
		for _, e := range f.Entries {
			if e.UniqueID == id {
				return true
			}
		}
	}
	return false
}
