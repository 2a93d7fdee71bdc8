package generators

import (
	"fmt"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// ComfortThresholds holds the comfort classification boundaries for one
// area type. Humidity values are percent relative humidity; temperatures
// are degrees Celsius.
type ComfortThresholds struct {
	HumidityHigh     float64 // above this: uncomfortable
	HumidityModerate float64 // above this: moderate
	TempHigh         float64 // above this: uncomfortable
	TempLow          float64 // below this: uncomfortable
}

// comfortByType fixes comfort thresholds per area type. Bathrooms tolerate
// far more humidity than bedrooms before classifying as uncomfortable;
// utility rooms tolerate wider temperature swings.
var comfortByType = map[area.Type]ComfortThresholds{
	area.TypeStudy:      {HumidityHigh: 60, HumidityModerate: 50, TempHigh: 25, TempLow: 17},
	area.TypeLivingRoom: {HumidityHigh: 65, HumidityModerate: 55, TempHigh: 25, TempLow: 17},
	area.TypeBedroom:    {HumidityHigh: 60, HumidityModerate: 50, TempHigh: 24, TempLow: 16},
	area.TypeKitchen:    {HumidityHigh: 70, HumidityModerate: 60, TempHigh: 26, TempLow: 16},
	area.TypeBathroom:   {HumidityHigh: 80, HumidityModerate: 70, TempHigh: 27, TempLow: 18},
	area.TypeUtility:    {HumidityHigh: 75, HumidityModerate: 65, TempHigh: 28, TempLow: 12},
}

// ComfortFor returns the comfort thresholds for an area type. Unknown types
// fall back to the living-room profile.
func ComfortFor(t area.Type) ComfortThresholds {
	if th, ok := comfortByType[t]; ok {
		return th
	}
	return comfortByType[area.TypeLivingRoom]
}

// Climate builds the climate monitoring entities for an area: a comfort
// classification sensor with per-area-type thresholds, temperature
// differential and trend sensors, humidity monitoring when a humidity
// source exists, and window monitoring when window sensors exist.
func Climate(spec *area.Spec) ([]entity.ConfigFragment, error) {
	slug := spec.Slug()
	display := spec.DisplayName()
	thresholds := ComfortFor(spec.Type)

	tempEntity := spec.SourceEntity("temperature", "sensor."+slug+"_temperature")
	humidityEntity := spec.SourceEntity("humidity", "sensor."+slug+"_humidity")
	climateEntity := spec.SourceEntity("climate", "climate."+slug)

	comfort := entity.Def{
		Name:     display + " Comfort State",
		UniqueID: entity.UniqueID(slug, "comfort_state"),
		State: hatemplate.Lines(
			hatemplate.SetFloat("temperature", tempEntity, 20),
			hatemplate.SetFloat("humidity", humidityEntity, 50),
			fmt.Sprintf("{%% if temperature > %s or temperature < %s or humidity > %s %%}uncomfortable",
				trim(thresholds.TempHigh), trim(thresholds.TempLow), trim(thresholds.HumidityHigh)),
			fmt.Sprintf("{%% elif humidity > %s %%}moderate", trim(thresholds.HumidityModerate)),
			"{% else %}comfortable",
			"{% endif %}",
		),
		Attributes: []entity.Attribute{
			{Key: "temperature", Value: hatemplate.States(tempEntity, "float(20)")},
			{Key: "humidity", Value: hatemplate.States(humidityEntity, "float(50)")},
		},
	}

	tempDifferential := entity.Def{
		Name:        display + " Temperature Differential",
		UniqueID:    entity.UniqueID(slug, "temp_differential"),
		DeviceClass: "temperature",
		StateClass:  "measurement",
		Unit:        "°C",
		State: hatemplate.Lines(
			hatemplate.SetFloat("current", tempEntity, 20),
			"{% set target = state_attr('"+climateEntity+"', 'temperature')|float(20) %}",
			"{{ (current - target)|round(1) }}",
		),
		Attributes: []entity.Attribute{
			{Key: "current_temp", Value: hatemplate.States(tempEntity, "float(20)")},
			{Key: "target_temp", Value: hatemplate.Attr(climateEntity, "temperature", "float(20)")},
			{Key: "mode", Value: hatemplate.Attr(climateEntity, "hvac_action", "default('off')")},
		},
	}

	tempRising := entity.Def{
		Name:        display + " Temperature Rising",
		UniqueID:    entity.UniqueID(slug, "temp_rising"),
		DeviceClass: "heat",
		State:       tempTrendTemplate(tempEntity, true),
	}

	tempFalling := entity.Def{
		Name:        display + " Temperature Falling",
		UniqueID:    entity.UniqueID(slug, "temp_falling"),
		DeviceClass: "cold",
		State:       tempTrendTemplate(tempEntity, false),
	}

	sensors := []entity.Def{comfort, tempDifferential}
	binarySensors := []entity.Def{tempRising, tempFalling}

	if spec.Features.HumiditySensor || spec.SourceEntity("humidity", "") != "" {
		sensors = append(sensors, entity.Def{
			Name:        display + " Humidity Trend",
			UniqueID:    entity.UniqueID(slug, "humidity_trend"),
			DeviceClass: "humidity",
			StateClass:  "measurement",
			Unit:        "%",
			State: hatemplate.Lines(
				hatemplate.SetFloat("current", humidityEntity, 50),
				hatemplate.SetFloat("average", spec.SourceEntity("average_humidity", "sensor."+slug+"_average_humidity"), 50),
				"{{ ((current - average) / average * 100)|round(1) }}",
			),
		})
		binarySensors = append(binarySensors, entity.Def{
			Name:        display + " High Humidity",
			UniqueID:    entity.UniqueID(slug, "high_humidity"),
			DeviceClass: "moisture",
			State: hatemplate.Lines(
				hatemplate.SetFloat("current", humidityEntity, 50),
				fmt.Sprintf("{{ current > %s }}", trim(thresholds.HumidityHigh)),
			),
		})
	}

	if spec.Features.WindowSensor {
		windowEntity := spec.SourceEntity("window", "binary_sensor."+slug+"_window")
		binarySensors = append(binarySensors, entity.Def{
			Name:        display + " Windows Open",
			UniqueID:    entity.UniqueID(slug, "windows_open"),
			DeviceClass: "window",
			State:       hatemplate.IsState(windowEntity, "on"),
			Attributes: []entity.Attribute{
				{Key: "climate_impact", Value: windowImpactTemplate(slug, windowEntity)},
			},
		})
	}

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: binarySensors},
		{Category: entity.CategorySensor, Entries: sensors},
	}, nil
}

// tempTrendTemplate detects a temperature trend against the sensor's
// previously recorded value.
func tempTrendTemplate(tempEntity string, rising bool) string {
	operator := ">"
	if !rising {
		operator = "<"
	}
	return hatemplate.Lines(
		hatemplate.SetFloat("current", tempEntity, 20),
		"{% set previous = state_attr('"+tempEntity+"', 'previous_value')|float(20) %}",
		"{% set threshold = 0.2 %}",
		fmt.Sprintf("{{ (current - previous) %s threshold }}", operator),
	)
}

// windowImpactTemplate classifies the climate impact of an open window from
// the temperature differential.
func windowImpactTemplate(slug, windowEntity string) string {
	return hatemplate.Lines(
		hatemplate.SetFloat("temp_diff", "sensor."+entity.UniqueID(slug, "temp_differential"), 0),
		"{% set window_open = is_state('"+windowEntity+"', 'on') %}",
		"{% if window_open %}",
		"  {% if temp_diff > 2 %}heating_loss",
		"  {% elif temp_diff < -2 %}cooling_loss",
		"  {% else %}minimal",
		"  {% endif %}",
		"{% else %}none",
		"{% endif %}",
	)
}

func trim(v float64) string {
	return fmt.Sprintf("%g", v)
}
