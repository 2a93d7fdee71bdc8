package devices

import (
	"fmt"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
)

// Generator produces the configuration fragments for one device kind.
// Implementations are pure: same spec in, same fragments out.
type Generator func(spec *area.Spec) ([]entity.ConfigFragment, error)

// registry maps each device kind to its generator. Populated once at
// process start; never mutated afterwards.
var registry = map[area.DeviceKind]Generator{
	area.DeviceComputer:         generateComputer,
	area.DeviceTV:               generateTV,
	area.DeviceMajorAppliance:   generateAppliance,
	area.DeviceBathroomFixture:  generateBathroom,
	area.DeviceKitchenAppliance: generateKitchen,
}

// Registered returns the device kinds that have generators, in the stable
// display order of area.AllDeviceKinds.
func Registered() []area.DeviceKind {
	kinds := make([]area.DeviceKind, 0, len(registry))
	for _, k := range area.AllDeviceKinds {
		if _, ok := registry[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Generate runs the generator for a single device kind.
// An unregistered kind is a programming error surfaced as a plain error,
// not silently skipped.
func Generate(kind area.DeviceKind, spec *area.Spec) ([]entity.ConfigFragment, error) {
	gen, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("no generator registered for device kind %q", kind)
	}
	return gen(spec)
}

// GenerateAll runs the generators for every device selected in the spec, in
// selection order, and concatenates their fragments. The first generator
// failure aborts the run.
func GenerateAll(spec *area.Spec) ([]entity.ConfigFragment, error) {
	var fragments []entity.ConfigFragment
	for _, kind := range spec.Devices {
		frags, err := Generate(kind, spec)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frags...)
	}
	return fragments, nil
}
