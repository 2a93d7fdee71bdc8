// Package areaconfig runs the full generation pipeline for one area: it
// validates the room description, invokes the device and area generators,
// merges their output into a single document, and serializes it.
package areaconfig

import (
	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/assemble"
	"github.com/muurk/areacfg/internal/devices"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/generators"
	"github.com/muurk/areacfg/internal/render"
)

// Build generates the complete configuration document for spec. The area
// fragments (occupancy, power, climate) come first, followed by the
// per-device fragments in the order the devices were selected.
func Build(spec *area.Spec) (*assemble.Document, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var fragments []entity.ConfigFragment

	occupancy, err := generators.Occupancy(spec)
	if err != nil {
		return nil, err
	}
	fragments = append(fragments, occupancy...)

	if spec.Features.PowerMonitoring {
		power, err := generators.Power(spec)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, power...)
	}

	if spec.Features.ClimateControl {
		climate, err := generators.Climate(spec)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, climate...)
	}

	deviceFragments, err := devices.GenerateAll(spec)
	if err != nil {
		return nil, err
	}
	fragments = append(fragments, deviceFragments...)

	numbers, booleans := generators.InputControls(spec)

	return assemble.Merge(spec.DisplayName(), spec.Slug(), fragments, numbers, booleans)
}

// Render builds and serializes the configuration for spec in one step.
func Render(spec *area.Spec) ([]byte, error) {
	doc, err := Build(spec)
	if err != nil {
		return nil, err
	}
	return render.Render(doc)
}
