package devices

import (
	"fmt"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// Shower detection hysteresis, in percent relative humidity. Detection
// starts above the on threshold and holds until humidity drops below the
// off threshold, so the sensor does not flap around a single boundary.
const (
	showerHumidityOn  = 75
	showerHumidityOff = 60
	humidityAlertAt   = 70
)

// generateBathroom builds the template entities for bathroom fixtures:
// a humidity sensor, a humidity-alert binary sensor, a shower-detection
// binary sensor with hysteresis, a humidity-change sensor, a comfort-level
// sensor, and a ventilation fan.
//
// A humidity source is a hard prerequisite. Without the humidity-sensor
// feature or a confirmed humidity entity override there is nothing to key
// the detection on, and generation fails rather than emitting dead sensors.
func generateBathroom(spec *area.Spec) ([]entity.ConfigFragment, error) {
	if !spec.Features.HumiditySensor && spec.SourceEntity("humidity", "") == "" {
		return nil, NewGenerationError(area.DeviceBathroomFixture,
			"no humidity data source configured (enable the humidity sensor feature or confirm a humidity entity)")
	}

	display := spec.DisplayName()
	slug := spec.Slug()

	humidityEntity := spec.SourceEntity("humidity", "sensor."+slug+"_humidity")
	tempEntity := spec.SourceEntity("temperature", "sensor."+slug+"_temperature")
	showerEntity := "binary_sensor." + entity.UniqueID(slug, "shower_active")

	humidity := entity.Def{
		Name:        display + " Humidity",
		UniqueID:    entity.UniqueID(slug, "humidity_level"),
		DeviceClass: "humidity",
		StateClass:  "measurement",
		Unit:        "%",
		State:       hatemplate.States(humidityEntity, "float(0)", "round(1)"),
	}

	humidityAlert := entity.Def{
		Name:        display + " Humidity Alert",
		UniqueID:    entity.UniqueID(slug, "humidity_alert"),
		DeviceClass: "moisture",
		State: hatemplate.Lines(
			hatemplate.SetFloat("humidity", humidityEntity, 0),
			fmt.Sprintf("{{ humidity > %d }}", humidityAlertAt),
		),
		Attributes: []entity.Attribute{
			{Key: "humidity", Value: hatemplate.States(humidityEntity, "float(0)")},
			{Key: "temperature", Value: hatemplate.States(tempEntity, "float(0)")},
		},
	}

	showerActive := entity.Def{
		Name:        display + " Shower Active",
		UniqueID:    entity.UniqueID(slug, "shower_active"),
		DeviceClass: "moisture",
		State: hatemplate.Lines(
			hatemplate.SetFloat("humidity", humidityEntity, 0),
			"{% set was_on = is_state('"+showerEntity+"', 'on') %}",
			fmt.Sprintf("{{ humidity > %d or (was_on and humidity > %d) }}", showerHumidityOn, showerHumidityOff),
		),
		Attributes: []entity.Attribute{
			{Key: "humidity", Value: hatemplate.States(humidityEntity, "float(0)")},
		},
	}

	humidityChange := entity.Def{
		Name:       display + " Humidity Change",
		UniqueID:   entity.UniqueID(slug, "humidity_change"),
		StateClass: "measurement",
		Unit:       "%",
		State: hatemplate.Lines(
			hatemplate.SetFloat("current", humidityEntity, 50),
			hatemplate.SetFloat("average", spec.SourceEntity("average_humidity", "sensor."+slug+"_average_humidity"), 50),
			"{{ ((current - average) / average * 100)|round(1) }}",
		),
		Attributes: []entity.Attribute{
			{Key: "is_ventilating", Value: hatemplate.IsState("fan."+entity.UniqueID(slug, "ventilation"), "on")},
		},
	}

	comfortLevel := entity.Def{
		Name:     display + " Comfort Level",
		UniqueID: entity.UniqueID(slug, "comfort_level"),
		State: hatemplate.Lines(
			hatemplate.SetFloat("humidity", humidityEntity, 0),
			hatemplate.SetFloat("temperature", tempEntity, 0),
			"{% if humidity > 70 and temperature > 25 %}uncomfortable",
			"{% elif humidity > 60 %}moderate",
			"{% else %}comfortable",
			"{% endif %}",
		),
	}

	fan := ventilationFan(
		entity.UniqueID(slug, "ventilation"),
		display+" Ventilation",
		slug+"_fan",
	)

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: []entity.Def{humidityAlert, showerActive}},
		{Category: entity.CategorySensor, Entries: []entity.Def{humidity, humidityChange, comfortLevel}},
		{Category: entity.CategoryFan, Fans: []entity.FanDef{fan}},
	}, nil
}
