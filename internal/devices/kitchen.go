package devices

import (
	"fmt"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// Cooking detection thresholds. Either sustained appliance power draw or an
// oven above baking temperature counts as cooking.
const (
	cookingPowerWatts = 50
	cookingOvenTemp   = 80
)

// generateKitchen builds the template entities for kitchen appliances:
// a cooking-detection binary sensor combining power and temperature, a
// combined power sensor, an oven temperature sensor, an appliance status
// sensor, and a ventilation fan.
func generateKitchen(spec *area.Spec) ([]entity.ConfigFragment, error) {
	display := spec.DisplayName()
	slug := spec.Slug()

	ovenPower := spec.SourceEntity("oven_power", "sensor.oven_power")
	ovenTemp := spec.SourceEntity("oven_temperature", "sensor.oven_temperature")
	dishwasherPower := spec.SourceEntity("dishwasher_power", "sensor.dishwasher_power")
	refrigeratorPower := spec.SourceEntity("refrigerator_power", "sensor.refrigerator_power")

	cookingActive := entity.Def{
		Name:        display + " Cooking Active",
		UniqueID:    entity.UniqueID(slug, "cooking_active"),
		DeviceClass: "heat",
		State: hatemplate.Lines(
			hatemplate.SetFloat("oven_power", ovenPower, 0),
			hatemplate.SetFloat("oven_temp", ovenTemp, 0),
			hatemplate.SetFloat("dishwasher_power", dishwasherPower, 0),
			fmt.Sprintf("{{ oven_power > %d or dishwasher_power > %d or oven_temp > %d }}",
				cookingPowerWatts, cookingPowerWatts, cookingOvenTemp),
		),
		Attributes: []entity.Attribute{
			{Key: "oven_power", Value: hatemplate.States(ovenPower, "float(0)")},
			{Key: "oven_temperature", Value: hatemplate.States(ovenTemp, "float(0)")},
			{Key: "dishwasher_power", Value: hatemplate.States(dishwasherPower, "float(0)")},
		},
	}

	appliancePower := entity.Def{
		Name:        display + " Kitchen Appliance Power",
		UniqueID:    entity.UniqueID(slug, "kitchen_appliance_power"),
		DeviceClass: "power",
		StateClass:  "measurement",
		Unit:        "W",
		State: hatemplate.Lines(
			hatemplate.SetFloat("oven_power", ovenPower, 0),
			hatemplate.SetFloat("dishwasher_power", dishwasherPower, 0),
			hatemplate.SetFloat("refrigerator_power", refrigeratorPower, 0),
			"{{ (oven_power + dishwasher_power + refrigerator_power)|round(2) }}",
		),
		Attributes: []entity.Attribute{
			{Key: "refrigerator_temp", Value: hatemplate.States(spec.SourceEntity("refrigerator_temperature", "sensor.refrigerator_temperature"), "float(0)")},
		},
	}

	ovenTemperature := entity.Def{
		Name:        display + " Oven Temperature",
		UniqueID:    entity.UniqueID(slug, "oven_temperature"),
		DeviceClass: "temperature",
		StateClass:  "measurement",
		Unit:        "°C",
		State:       hatemplate.States(ovenTemp, "float(0)", "round(1)"),
	}

	applianceStatus := entity.Def{
		Name:     display + " Kitchen Appliance Status",
		UniqueID: entity.UniqueID(slug, "kitchen_appliance_status"),
		State: hatemplate.Lines(
			"{% set oven_state = states('"+spec.SourceEntity("oven_state", "sensor.oven_state")+"') %}",
			"{% set dishwasher_state = states('"+spec.SourceEntity("dishwasher_state", "sensor.dishwasher_state")+"') %}",
			"{% if oven_state == 'on' and dishwasher_state == 'on' %}high_activity",
			"{% elif oven_state == 'on' or dishwasher_state == 'on' %}moderate_activity",
			"{% else %}idle",
			"{% endif %}",
		),
	}

	fan := ventilationFan(
		entity.UniqueID(slug, "kitchen_ventilation"),
		display+" Kitchen Ventilation",
		slug+"_kitchen_fan",
	)

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: []entity.Def{cookingActive}},
		{Category: entity.CategorySensor, Entries: []entity.Def{appliancePower, ovenTemperature, applianceStatus}},
		{Category: entity.CategoryFan, Fans: []entity.FanDef{fan}},
	}, nil
}
