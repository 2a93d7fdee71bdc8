package generators

import (
	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// powerComponent describes one metered load contributing to the area's
// total power and daily energy sensors.
type powerComponent struct {
	Key          string
	PowerEntity  string
	EnergyEntity string
	Description  string
}

// PowerComponents maps the selected devices to their metered power
// components, in selection order. Any area with at least one component also
// gets a catch-all "extras" component for unmetered loads.
func PowerComponents(spec *area.Spec) []powerComponent {
	var components []powerComponent

	for _, kind := range spec.Devices {
		switch kind {
		case area.DeviceComputer:
			components = append(components,
				powerComponent{"pc", spec.SourceEntity("pc_power", "sensor.pc_power"), "sensor.pc_daily_energy", "PC/Computer"},
				powerComponent{"monitors", "sensor.monitors_power", "sensor.monitors_daily_energy", "Monitors"},
				powerComponent{"desk", "sensor.desk_power", "sensor.desk_daily_energy", "Desk Equipment"},
			)
		case area.DeviceTV:
			components = append(components,
				powerComponent{"tv", spec.SourceEntity("tv_power", "sensor.tv_power"), "sensor.tv_daily_energy", "Television"},
				powerComponent{"entertainment", "sensor.entertainment_power", "sensor.entertainment_daily_energy", "Entertainment System"},
			)
		case area.DeviceMajorAppliance:
			appliance := spec.Appliance()
			components = append(components, powerComponent{
				Key:          "appliance",
				PowerEntity:  spec.SourceEntity("appliance_power", "sensor."+spec.Slug()+"_"+appliance+"_power"),
				EnergyEntity: "sensor." + spec.Slug() + "_" + appliance + "_daily_energy",
				Description:  "Major Appliance",
			})
		case area.DeviceBathroomFixture:
			components = append(components, powerComponent{
				Key:          "bathroom",
				PowerEntity:  "sensor." + spec.Slug() + "_bathroom_power",
				EnergyEntity: "sensor." + spec.Slug() + "_bathroom_daily_energy",
				Description:  "Bathroom Equipment",
			})
		case area.DeviceKitchenAppliance:
			components = append(components,
				powerComponent{"kitchen_major", "sensor.kitchen_major_power", "sensor.kitchen_major_daily_energy", "Major Kitchen Appliances"},
				powerComponent{"kitchen_small", "sensor.kitchen_small_power", "sensor.kitchen_small_daily_energy", "Small Kitchen Appliances"},
			)
		}
	}

	if len(components) > 0 {
		components = append(components, powerComponent{
			Key:          "extras",
			PowerEntity:  "sensor." + spec.Slug() + "_extras_power",
			EnergyEntity: "sensor." + spec.Slug() + "_extras_daily_energy",
			Description:  "Other Devices",
		})
	}

	return components
}

// Power builds the total-power and daily-energy sensors for the area.
// Every component enters the sum through |float(0), so a device whose power
// entity is absent contributes zero instead of making the total undefined.
// An area with no metered devices produces no power sensors and no error.
func Power(spec *area.Spec) ([]entity.ConfigFragment, error) {
	components := PowerComponents(spec)
	if len(components) == 0 {
		return nil, nil
	}

	slug := spec.Slug()
	display := spec.DisplayName()

	powerEntities := make([]string, len(components))
	energyEntities := make([]string, len(components))
	attributes := make([]entity.Attribute, len(components))
	for i, c := range components {
		powerEntities[i] = c.PowerEntity
		energyEntities[i] = c.EnergyEntity
		attributes[i] = entity.Attribute{
			Key:   c.Key,
			Value: hatemplate.States(c.PowerEntity, "float(0)", "round(2)"),
		}
	}

	totalPower := entity.Def{
		Name:        display + " Total Power",
		UniqueID:    entity.UniqueID(slug, "total_power"),
		DeviceClass: "power",
		StateClass:  "measurement",
		Unit:        "W",
		State:       hatemplate.SumFloat(powerEntities, "power", 2),
		Attributes:  attributes,
	}

	dailyEnergy := entity.Def{
		Name:        display + " Daily Energy",
		UniqueID:    entity.UniqueID(slug, "daily_energy"),
		DeviceClass: "energy",
		StateClass:  "total_increasing",
		Unit:        "kWh",
		State:       hatemplate.SumFloat(energyEntities, "energy", 3),
		Attributes: []entity.Attribute{
			{Key: "last_reset", Value: "{{ now().replace(hour=0, minute=0, second=0, microsecond=0).isoformat() }}"},
		},
	}

	return []entity.ConfigFragment{
		{Category: entity.CategorySensor, Entries: []entity.Def{totalPower, dailyEnergy}},
	}, nil
}
