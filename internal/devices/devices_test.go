package devices

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/muurk/areacfg/internal/area"
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

func bathSpec(humidity bool) *area.Spec {
	features := area.DefaultFeatures()
	features.HumiditySensor = humidity
	return &area.Spec{
		Name:     "Bath",
		Type:     area.TypeBathroom,
		Devices:  []area.DeviceKind{area.DeviceBathroomFixture},
		Features: features,
	}
}

// collectUniqueIDs gathers entity unique ids and fan keys from fragments.
func collectUniqueIDs(frags []entity.ConfigFragment) []string {
	var ids []string
	for _, f := range frags {
		for _, e := range f.Entries {
			ids = append(ids, e.UniqueID)
		}
		for _, fan := range f.Fans {
			ids = append(ids, fan.Key)
		}
	}
	return ids
}

func TestRegisteredCoversAllKinds(t *testing.T) {
	got := Registered()
	if !reflect.DeepEqual(got, area.AllDeviceKinds) {
		t.Errorf("Registered() = %v, want every kind in %v", got, area.AllDeviceKinds)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	if _, err := Generate("toaster", studySpec()); err == nil {
		t.Error("Generate() with unregistered kind should fail, not silently no-op")
	}
}

func TestGenerateComputer(t *testing.T) {
	frags, err := Generate(area.DeviceComputer, studySpec())
	if err != nil {
		t.Fatalf("Generate(computer) error = %v", err)
	}

	ids := collectUniqueIDs(frags)
	want := []string{"study_pc_active", "study_pc_power_draw", "study_pc_temperature", "study_pc_active_app"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("computer unique ids = %v, want %v", ids, want)
	}

	// The activity sensor combines idle time and power draw.
	active := frags[0].Entries[0]
	if active.DeviceClass != "power" {
		t.Errorf("pc_active device class = %q, want power", active.DeviceClass)
	}
	if !strings.Contains(active.State, "idle_time < 300 or power > 50") {
		t.Errorf("pc_active state missing activity rule:\n%s", active.State)
	}

	// The active-application sensor has a closed vocabulary.
	app := frags[1].Entries[2]
	for _, state := range []string{"off", "idle", "other", "'gaming', 'office', 'media', 'development'"} {
		if !strings.Contains(app.State, state) {
			t.Errorf("pc_active_app state missing %q:\n%s", state, app.State)
		}
	}
}

func TestGenerateComputerDeterministic(t *testing.T) {
	first, err := Generate(area.DeviceComputer, studySpec())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(area.DeviceComputer, studySpec())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Generate() is not deterministic for identical specs")
	}
}

func TestGenerateTV(t *testing.T) {
	spec := &area.Spec{
		Name:     "Living Room",
		Type:     area.TypeLivingRoom,
		Devices:  []area.DeviceKind{area.DeviceTV},
		Features: area.DefaultFeatures(),
	}

	frags, err := Generate(area.DeviceTV, spec)
	if err != nil {
		t.Fatalf("Generate(tv) error = %v", err)
	}

	ids := collectUniqueIDs(frags)
	want := []string{"living_room_tv_active", "living_room_tv_media_state", "living_room_tv_power_draw", "living_room_tv_input_source"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("tv unique ids = %v, want %v", ids, want)
	}

	media := frags[1].Entries[0]
	for _, state := range []string{"'playing', 'paused'", "idle", "off"} {
		if !strings.Contains(media.State, state) {
			t.Errorf("tv_media_state missing %q:\n%s", state, media.State)
		}
	}
}

func TestGenerateAppliance(t *testing.T) {
	spec := &area.Spec{
		Name:          "Utility",
		Type:          area.TypeUtility,
		Devices:       []area.DeviceKind{area.DeviceMajorAppliance},
		Features:      area.DefaultFeatures(),
		ApplianceType: "washing_machine",
	}

	frags, err := Generate(area.DeviceMajorAppliance, spec)
	if err != nil {
		t.Fatalf("Generate(major_appliance) error = %v", err)
	}

	ids := collectUniqueIDs(frags)
	want := []string{
		"utility_washing_machine_active",
		"utility_washing_machine_cycle_state",
		"utility_washing_machine_runtime_today",
		"utility_washing_machine_power_draw",
		"utility_washing_machine_fan",
	}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("appliance unique ids = %v, want %v", ids, want)
	}

	// Cycle state latches "finished" after a running cycle.
	cycle := frags[1].Entries[0]
	if !strings.Contains(cycle.State, "running") || !strings.Contains(cycle.State, "finished") || !strings.Contains(cycle.State, "idle") {
		t.Errorf("cycle state missing vocabulary:\n%s", cycle.State)
	}
	if !strings.Contains(cycle.State, "utility_washing_machine_cycle_state") {
		t.Errorf("cycle state should reference its own previous value:\n%s", cycle.State)
	}

	if frags[0].Entries[0].Name != "Utility Washing Machine Active" {
		t.Errorf("appliance display name = %q", frags[0].Entries[0].Name)
	}
}

func TestGenerateBathroomRequiresHumidity(t *testing.T) {
	_, err := Generate(area.DeviceBathroomFixture, bathSpec(false))
	if err == nil {
		t.Fatal("Generate(bathroom_fixture) without humidity source should fail")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error type = %T, want *GenerationError", err)
	}
	if genErr.Kind != area.DeviceBathroomFixture {
		t.Errorf("GenerationError.Kind = %q, want %q", genErr.Kind, area.DeviceBathroomFixture)
	}
	if !strings.Contains(err.Error(), "bathroom_fixture") {
		t.Errorf("error message should name the device kind: %v", err)
	}
}

func TestGenerateBathroomWithOverride(t *testing.T) {
	spec := bathSpec(false)
	spec.EntityOverrides = map[string]string{"humidity": "sensor.hall_humidity"}

	frags, err := Generate(area.DeviceBathroomFixture, spec)
	if err != nil {
		t.Fatalf("Generate(bathroom_fixture) with override error = %v", err)
	}

	shower := frags[0].Entries[1]
	if shower.UniqueID != "bath_shower_active" {
		t.Fatalf("shower unique id = %q", shower.UniqueID)
	}
	if !strings.Contains(shower.State, "sensor.hall_humidity") {
		t.Errorf("shower detection should use the confirmed entity:\n%s", shower.State)
	}
	// Hysteresis: on threshold differs from hold threshold.
	if !strings.Contains(shower.State, "humidity > 75") || !strings.Contains(shower.State, "humidity > 60") {
		t.Errorf("shower detection missing hysteresis thresholds:\n%s", shower.State)
	}
}

func TestGenerateKitchen(t *testing.T) {
	spec := &area.Spec{
		Name:     "Kitchen",
		Type:     area.TypeKitchen,
		Devices:  []area.DeviceKind{area.DeviceKitchenAppliance},
		Features: area.DefaultFeatures(),
	}

	frags, err := Generate(area.DeviceKitchenAppliance, spec)
	if err != nil {
		t.Fatalf("Generate(kitchen_appliance) error = %v", err)
	}

	cooking := frags[0].Entries[0]
	if !strings.Contains(cooking.State, "oven_power > 50") || !strings.Contains(cooking.State, "oven_temp > 80") {
		t.Errorf("cooking detection should combine power and temperature:\n%s", cooking.State)
	}

	ids := collectUniqueIDs(frags)
	want := []string{
		"kitchen_cooking_active",
		"kitchen_kitchen_appliance_power",
		"kitchen_oven_temperature",
		"kitchen_kitchen_appliance_status",
		"kitchen_kitchen_ventilation",
	}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("kitchen unique ids = %v, want %v", ids, want)
	}
}

func TestGenerateAllOrderAndFailure(t *testing.T) {
	features := area.DefaultFeatures()
	spec := &area.Spec{
		Name:     "Den",
		Type:     area.TypeLivingRoom,
		Devices:  []area.DeviceKind{area.DeviceTV, area.DeviceComputer},
		Features: features,
	}

	frags, err := GenerateAll(spec)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}

	// Selection order is preserved: TV fragments before computer fragments.
	ids := collectUniqueIDs(frags)
	if len(ids) == 0 || ids[0] != "den_tv_active" {
		t.Errorf("GenerateAll() first id = %v, want den_tv_active", ids)
	}
	last := ids[len(ids)-1]
	if last != "den_pc_active_app" {
		t.Errorf("GenerateAll() last id = %q, want den_pc_active_app", last)
	}

	// A failing generator aborts the whole run.
	spec.Devices = append(spec.Devices, area.DeviceBathroomFixture)
	if _, err := GenerateAll(spec); !IsGenerationError(err) {
		t.Errorf("GenerateAll() with failing generator error = %v, want GenerationError", err)
	}
}
