package generators

import (
	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
)

// InputControls builds the input_number and input_boolean helpers the
// generated templates reference: alert thresholds, lighting defaults, fan
// speed controls, per-device toggles, and the manual occupancy override.
// Output order is fixed so the rendered document is deterministic.
func InputControls(spec *area.Spec) ([]entity.InputNumber, []entity.InputBoolean) {
	slug := spec.Slug()
	display := spec.DisplayName()

	var numbers []entity.InputNumber
	var booleans []entity.InputBoolean

	if spec.Features.PowerMonitoring && len(spec.Devices) > 0 {
		numbers = append(numbers, entity.InputNumber{
			Key:     entity.UniqueID(slug, "power_threshold"),
			Name:    display + " Power Alert Threshold",
			Min:     100,
			Max:     1000,
			Step:    50,
			Unit:    "W",
			Icon:    "mdi:flash-alert",
			Initial: 400,
		})
	}

	if spec.Features.ClimateControl {
		numbers = append(numbers, entity.InputNumber{
			Key:     entity.UniqueID(slug, "temp_threshold"),
			Name:    display + " Temperature Threshold",
			Min:     19,
			Max:     25,
			Step:    0.5,
			Unit:    "°C",
			Icon:    "mdi:thermometer",
			Initial: 23,
		})
	}

	if spec.Features.SmartLighting {
		lighting := spec.Features.Lighting
		numbers = append(numbers,
			entity.InputNumber{
				Key:     entity.UniqueID(slug, "light_brightness"),
				Name:    display + " Light Brightness",
				Min:     0,
				Max:     100,
				Step:    5,
				Unit:    "%",
				Icon:    "mdi:brightness-6",
				Initial: float64(lighting.Brightness),
			},
			entity.InputNumber{
				Key:     entity.UniqueID(slug, "light_transition"),
				Name:    display + " Light Transition Time",
				Min:     0,
				Max:     10,
				Step:    0.5,
				Unit:    "s",
				Icon:    "mdi:transition",
				Initial: float64(lighting.Transition),
			},
		)
		booleans = append(booleans, entity.InputBoolean{
			Key:  entity.UniqueID(slug, "light_color_mode"),
			Name: display + " Light Color Mode",
			Icon: "mdi:palette",
		})
	}

	for _, kind := range spec.Devices {
		switch kind {
		case area.DeviceComputer:
			booleans = append(booleans, entity.InputBoolean{
				Key:  entity.UniqueID(slug, "pc_power_management"),
				Name: display + " PC Power Management",
				Icon: "mdi:desktop-classic",
			})
		case area.DeviceTV:
			booleans = append(booleans, entity.InputBoolean{
				Key:  entity.UniqueID(slug, "tv_power_management"),
				Name: display + " TV Power Management",
				Icon: "mdi:television",
			})
		case area.DeviceMajorAppliance:
			appliance := spec.Appliance()
			booleans = append(booleans, entity.InputBoolean{
				Key:  entity.UniqueID(slug, appliance+"_monitoring"),
				Name: display + " " + "Appliance Monitoring",
				Icon: "mdi:washing-machine",
			})
			numbers = append(numbers,
				entity.InputNumber{
					Key:     entity.UniqueID(slug, appliance+"_power_threshold"),
					Name:    display + " Appliance Power Threshold",
					Min:     50,
					Max:     2000,
					Step:    50,
					Unit:    "W",
					Icon:    "mdi:flash-alert",
					Initial: 200,
				},
				fanSpeedControl(slug, appliance+"_fan", display+" Appliance Fan Speed"),
			)
		case area.DeviceBathroomFixture:
			numbers = append(numbers, fanSpeedControl(slug, "fan", display+" Ventilation Fan Speed"))
		case area.DeviceKitchenAppliance:
			numbers = append(numbers, fanSpeedControl(slug, "kitchen_fan", display+" Kitchen Fan Speed"))
		}
	}

	// Manual override always present; the occupancy state template
	// references it unconditionally.
	booleans = append(booleans, entity.InputBoolean{
		Key:  entity.UniqueID(slug, "occupied_override"),
		Name: display + " Manual Occupancy Override",
		Icon: "mdi:account-check",
	})

	return numbers, booleans
}

// fanSpeedControl backs a template fan's set_speed service. Speeds map to
// 1 (low), 2 (medium), 3 (high).
func fanSpeedControl(slug, fanRole, name string) entity.InputNumber {
	return entity.InputNumber{
		Key:     entity.UniqueID(slug, fanRole+"_speed"),
		Name:    name,
		Min:     1,
		Max:     3,
		Step:    1,
		Icon:    "mdi:fan",
		Initial: 2,
	}
}
