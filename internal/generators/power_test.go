package generators

import (
	"strings"
	"testing"

	"github.com/muurk/areacfg/internal/area"
)

// deviceSubsets enumerates every subset of the supported device kinds.
func deviceSubsets() [][]area.DeviceKind {
	kinds := area.AllDeviceKinds
	var subsets [][]area.DeviceKind
	for mask := 0; mask < 1<<len(kinds); mask++ {
		var subset []area.DeviceKind
		for i, k := range kinds {
			if mask&(1<<i) != 0 {
				subset = append(subset, k)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

func TestPowerTotality(t *testing.T) {
	// Power generation must build for every device subset; absent devices
	// contribute zero, never an undefined sum.
	for _, subset := range deviceSubsets() {
		spec := &area.Spec{
			Name:     "Den",
			Type:     area.TypeLivingRoom,
			Devices:  subset,
			Features: area.DefaultFeatures(),
		}

		frags, err := Power(spec)
		if err != nil {
			t.Fatalf("Power() error = %v for subset %v", err, subset)
		}

		if len(subset) == 0 {
			if frags != nil {
				t.Fatalf("Power() with no devices = %v, want nil", frags)
			}
			continue
		}

		if len(frags) != 1 || len(frags[0].Entries) != 2 {
			t.Fatalf("Power() for subset %v should produce total power and daily energy", subset)
		}

		total := frags[0].Entries[0]
		if !strings.Contains(total.State, "states(component)|float(0)") {
			t.Errorf("total power sum must default missing entities to zero:\n%s", total.State)
		}
	}
}

func TestPowerComponents(t *testing.T) {
	spec := &area.Spec{
		Name:     "Den",
		Type:     area.TypeLivingRoom,
		Devices:  []area.DeviceKind{area.DeviceComputer, area.DeviceTV},
		Features: area.DefaultFeatures(),
	}

	components := PowerComponents(spec)
	var keys []string
	for _, c := range components {
		keys = append(keys, c.Key)
	}

	want := []string{"pc", "monitors", "desk", "tv", "entertainment", "extras"}
	if len(keys) != len(want) {
		t.Fatalf("component keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("component keys = %v, want %v", keys, want)
		}
	}
}

func TestPowerSensors(t *testing.T) {
	spec := &area.Spec{
		Name:     "Den",
		Type:     area.TypeLivingRoom,
		Devices:  []area.DeviceKind{area.DeviceTV},
		Features: area.DefaultFeatures(),
	}

	frags, err := Power(spec)
	if err != nil {
		t.Fatalf("Power() error = %v", err)
	}

	total := frags[0].Entries[0]
	if total.UniqueID != "den_total_power" {
		t.Errorf("total power unique id = %q, want den_total_power", total.UniqueID)
	}
	if total.DeviceClass != "power" || total.Unit != "W" {
		t.Errorf("total power device_class/unit = %q/%q", total.DeviceClass, total.Unit)
	}
	for _, id := range []string{"sensor.tv_power", "sensor.entertainment_power", "sensor.den_extras_power"} {
		if !strings.Contains(total.State, "'"+id+"'") {
			t.Errorf("total power missing component %q:\n%s", id, total.State)
		}
	}
	// TV-only area must not pull in other device components.
	if strings.Contains(total.State, "sensor.pc_power") {
		t.Errorf("total power should not include absent devices:\n%s", total.State)
	}

	energy := frags[0].Entries[1]
	if energy.UniqueID != "den_daily_energy" {
		t.Errorf("daily energy unique id = %q, want den_daily_energy", energy.UniqueID)
	}
	if energy.StateClass != "total_increasing" || energy.Unit != "kWh" {
		t.Errorf("daily energy state_class/unit = %q/%q", energy.StateClass, energy.Unit)
	}
	if len(energy.Attributes) != 1 || energy.Attributes[0].Key != "last_reset" {
		t.Errorf("daily energy attributes = %v, want last_reset", energy.Attributes)
	}
}
