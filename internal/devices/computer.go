package devices

import (
	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// Application categories the active-application sensor recognizes.
// Anything else reported by the source sensor maps to "other".
var knownAppStates = "['gaming', 'office', 'media', 'development']"

// generateComputer builds the template entities for a computer/PC setup:
// an activity binary sensor keyed on idle time and power draw, a power
// sensor, a temperature sensor, and an active-application state sensor.
func generateComputer(spec *area.Spec) ([]entity.ConfigFragment, error) {
	display := spec.DisplayName()
	slug := spec.Slug()

	idleEntity := spec.SourceEntity("pc_idle_time", "sensor.pc_idle_time")
	powerEntity := spec.SourceEntity("pc_power", "sensor.pc_power")
	statusEntity := spec.SourceEntity("pc_status", "sensor.pc_status")

	pcActive := entity.Def{
		Name:        display + " PC Active",
		UniqueID:    entity.UniqueID(slug, "pc_active"),
		DeviceClass: "power",
		State: hatemplate.Lines(
			hatemplate.SetInt("idle_time", idleEntity, 0),
			hatemplate.SetFloat("power", powerEntity, 0),
			"{{ idle_time < 300 or power > 50 }}",
		),
		Attributes: []entity.Attribute{
			{Key: "idle_time", Value: hatemplate.States(idleEntity, "int(0)")},
			{Key: "power_draw", Value: hatemplate.States(powerEntity, "float(0)")},
			{Key: "apps_running", Value: hatemplate.Attr(statusEntity, "running_apps", "default([])")},
		},
	}

	pcPower := entity.Def{
		Name:        display + " PC Power",
		UniqueID:    entity.UniqueID(slug, "pc_power_draw"),
		DeviceClass: "power",
		StateClass:  "measurement",
		Unit:        "W",
		State:       hatemplate.States(powerEntity, "float(0)", "round(1)"),
	}

	pcTemperature := entity.Def{
		Name:        display + " PC Temperature",
		UniqueID:    entity.UniqueID(slug, "pc_temperature"),
		DeviceClass: "temperature",
		StateClass:  "measurement",
		Unit:        "°C",
		State: hatemplate.Lines(
			hatemplate.SetFloat("cpu", spec.SourceEntity("pc_cpu_temp", "sensor.pc_cpu_temp"), 0),
			hatemplate.SetFloat("gpu", spec.SourceEntity("pc_gpu_temp", "sensor.pc_gpu_temp"), 0),
			"{{ [cpu, gpu]|max|round(1) }}",
		),
	}

	activeApp := entity.Def{
		Name:     display + " PC Active Application",
		UniqueID: entity.UniqueID(slug, "pc_active_app"),
		State: hatemplate.Lines(
			hatemplate.SetFloat("power", powerEntity, 0),
			"{% set app = states('"+spec.SourceEntity("pc_active_app", "sensor.pc_active_app")+"') %}",
			"{% if power <= 10 %}off",
			"{% elif app in "+knownAppStates+" %}{{ app }}",
			"{% elif app in ['unknown', 'unavailable', 'none'] %}idle",
			"{% else %}other",
			"{% endif %}",
		),
		Attributes: []entity.Attribute{
			{Key: "uptime", Value: hatemplate.States(spec.SourceEntity("pc_uptime", "sensor.pc_uptime"))},
			{Key: "cpu_usage", Value: hatemplate.States(spec.SourceEntity("pc_cpu_usage", "sensor.pc_cpu_usage"))},
			{Key: "memory_usage", Value: hatemplate.States(spec.SourceEntity("pc_memory_usage", "sensor.pc_memory_usage"))},
		},
	}

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: []entity.Def{pcActive}},
		{Category: entity.CategorySensor, Entries: []entity.Def{pcPower, pcTemperature, activeApp}},
	}, nil
}
