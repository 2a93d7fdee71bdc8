package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/muurk/areacfg/internal/assemble"
	"github.com/muurk/areacfg/internal/entity"
)

func sampleDocument() *assemble.Document {
	return &assemble.Document{
		AreaName: "Study",
		Slug:     "study",
		Templates: []entity.ConfigFragment{
			{
				Category: entity.CategoryBinarySensor,
				Entries: []entity.Def{
					{
						Name:        "Study PC Active",
						UniqueID:    "study_pc_active",
						DeviceClass: "power",
						State:       "{{ states('sensor.study_pc_power')|float(0) > 50 }}",
						Attributes: []entity.Attribute{
							{Key: "power_draw", Value: "{{ states('sensor.study_pc_power') }}"},
						},
					},
				},
			},
			{
				Category: entity.CategorySensor,
				Entries: []entity.Def{
					{
						Name:       "Study Total Power",
						UniqueID:   "study_total_power",
						StateClass: "measurement",
						Unit:       "W",
						State: "{% set components = [states('sensor.study_pc_power')|float(0)] %}\n" +
							"{{ components|sum|round(1) }}",
					},
				},
			},
			{
				Category: entity.CategoryFan,
				Fans: []entity.FanDef{
					{
						Key:           "study_ventilation",
						FriendlyName:  "Study Ventilation",
						ValueTemplate: "{{ states('switch.study_fan') }}",
						SpeedTemplate: "{{ states('input_number.study_fan_speed') }}",
						TurnOn:        entity.ServiceCall{Service: "switch.turn_on", EntityID: "switch.study_fan"},
						TurnOff:       entity.ServiceCall{Service: "switch.turn_off", EntityID: "switch.study_fan"},
						SetSpeed: entity.ServiceCall{
							Service:  "input_number.set_value",
							EntityID: "input_number.study_fan_speed",
							DataTemplate: []entity.Attribute{
								{Key: "value", Value: "{{ speed }}"},
							},
						},
						Speeds: []string{"low", "medium", "high"},
					},
				},
			},
		},
		InputNumbers: []entity.InputNumber{
			{Key: "study_power_threshold", Name: "Study Power Alert Threshold", Min: 50, Max: 1000, Step: 10, Unit: "W", Icon: "mdi:flash-alert", Initial: 400},
		},
		InputBooleans: []entity.InputBoolean{
			{Key: "study_occupied_override", Name: "Study Occupied Override", Icon: "mdi:account-check"},
		},
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := sampleDocument()

	first, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Render() produced different bytes for the same document")
	}
}

func TestRenderOmitsUnsetFields(t *testing.T) {
	doc := sampleDocument()

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(out)

	// The binary sensor carries no unit or icon; neither key may appear
	// with a null value anywhere in the document.
	if strings.Contains(text, "null") {
		t.Errorf("output contains null values:\n%s", text)
	}
	if strings.Contains(text, "icon: \"\"") || strings.Contains(text, "unit_of_measurement: \"\"") {
		t.Errorf("output contains empty optional fields:\n%s", text)
	}
}

func TestRenderMultilineStateUsesBlockScalar(t *testing.T) {
	doc := sampleDocument()

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(string(out), "state: |-") {
		t.Errorf("multi-line state not rendered as literal block scalar:\n%s", out)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	doc := sampleDocument()

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var parsed map[string]map[string]interface{}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("generated YAML does not parse: %v", err)
	}

	area, ok := parsed["Study"]
	if !ok {
		t.Fatalf("missing top-level area key, got keys %v", keysOf(parsed))
	}

	templates, ok := area["template"].([]interface{})
	if !ok {
		t.Fatalf("template section is %T, want sequence", area["template"])
	}
	if len(templates) != 3 {
		t.Errorf("template blocks = %d, want 3", len(templates))
	}

	if _, ok := area["input_number"]; !ok {
		t.Error("missing input_number section")
	}
	if _, ok := area["input_boolean"]; !ok {
		t.Error("missing input_boolean section")
	}

	// The multi-line state must reparse to the exact original expression.
	sensors := templates[1].(map[string]interface{})["sensor"].([]interface{})
	state := sensors[0].(map[string]interface{})["state"].(string)
	want := doc.Templates[1].Entries[0].State
	if state != want {
		t.Errorf("round-tripped state = %q, want %q", state, want)
	}
}

func TestRenderEntityFieldOrder(t *testing.T) {
	doc := sampleDocument()

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(out)

	nameIdx := strings.Index(text, "name: Study PC Active")
	idIdx := strings.Index(text, "unique_id: study_pc_active")
	classIdx := strings.Index(text, "device_class: power")
	stateIdx := strings.Index(text, "state: '{{ states(''sensor.study_pc_power'')")

	if nameIdx < 0 || idIdx < 0 || classIdx < 0 {
		t.Fatalf("expected fields missing from output:\n%s", text)
	}
	if !(nameIdx < idIdx && idIdx < classIdx) {
		t.Errorf("entity fields out of order (name=%d unique_id=%d device_class=%d)", nameIdx, idIdx, classIdx)
	}
	if stateIdx >= 0 && stateIdx < classIdx {
		t.Errorf("state rendered before device_class")
	}
}

func TestRenderNonFiniteNumber(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			doc.InputNumbers[0].Max = tt.value

			_, err := Render(doc)
			if err == nil {
				t.Fatal("Render() error = nil, want SerializationError")
			}
			if !IsSerializationError(err) {
				t.Errorf("IsSerializationError(%v) = false", err)
			}
			if !strings.Contains(err.Error(), "study_power_threshold.max") {
				t.Errorf("error %q does not name the offending field", err)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/tmp/out", "living_room")
	want := filepath.Join("/tmp/out", "living_room.yaml")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "areacfg-render-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := OutputPath(filepath.Join(tmpDir, "nested"), "study")
	data := []byte("Study:\n  template: []\n")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("written file = %q, want %q", got, data)
	}

	// No temporary file may remain after a successful write.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file still present after write")
	}
}

func keysOf(m map[string]map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
