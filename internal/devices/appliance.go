package devices

import (
	"fmt"
	"strings"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// Power thresholds for appliance cycle detection, in watts. Above running
// the appliance is mid-cycle; below standby it has stopped.
const (
	applianceRunningWatts = 50
	applianceStandbyWatts = 10
)

// generateAppliance builds the template entities for a major appliance
// (washing machine, dishwasher, dryer): an activity binary sensor, a
// cycle-state sensor with an idle/running/finished vocabulary, a runtime
// sensor, a power sensor, and a ventilation fan.
//
// The cycle-state sensor references its own previous state so "finished"
// latches after a running cycle ends and holds until the next cycle starts.
func generateAppliance(spec *area.Spec) ([]entity.ConfigFragment, error) {
	display := spec.DisplayName()
	slug := spec.Slug()
	appliance := spec.Appliance()
	applianceDisplay := titleWords(appliance)

	powerEntity := spec.SourceEntity("appliance_power", "sensor."+slug+"_"+appliance+"_power")
	cycleStateEntity := "sensor." + entity.UniqueID(slug, appliance+"_cycle_state")

	active := entity.Def{
		Name:        display + " " + applianceDisplay + " Active",
		UniqueID:    entity.UniqueID(slug, appliance+"_active"),
		DeviceClass: "running",
		State: hatemplate.Lines(
			hatemplate.SetFloat("power", powerEntity, 0),
			fmt.Sprintf("{{ power > %d }}", applianceStandbyWatts),
		),
		Attributes: []entity.Attribute{
			{Key: "power_draw", Value: hatemplate.States(powerEntity, "float(0)")},
		},
	}

	cycleState := entity.Def{
		Name:     display + " " + applianceDisplay + " Cycle State",
		UniqueID: entity.UniqueID(slug, appliance+"_cycle_state"),
		State: hatemplate.Lines(
			hatemplate.SetFloat("power", powerEntity, 0),
			"{% set prev = states('"+cycleStateEntity+"') %}",
			fmt.Sprintf("{%% if power > %d %%}running", applianceRunningWatts),
			"{% elif prev in ['running', 'finished'] %}finished",
			"{% else %}idle",
			"{% endif %}",
		),
		Attributes: []entity.Attribute{
			{Key: "power_draw", Value: hatemplate.States(powerEntity, "float(0)")},
		},
	}

	runtime := entity.Def{
		Name:       display + " " + applianceDisplay + " Runtime Today",
		UniqueID:   entity.UniqueID(slug, appliance+"_runtime_today"),
		StateClass: "total_increasing",
		Unit:       "h",
		State:      hatemplate.States(spec.SourceEntity("appliance_runtime", "sensor."+slug+"_"+appliance+"_runtime"), "float(0)", "round(2)"),
		Attributes: []entity.Attribute{
			{Key: "cycle_state", Value: hatemplate.States(cycleStateEntity)},
		},
	}

	power := entity.Def{
		Name:        display + " " + applianceDisplay + " Power",
		UniqueID:    entity.UniqueID(slug, appliance+"_power_draw"),
		DeviceClass: "power",
		StateClass:  "measurement",
		Unit:        "W",
		State:       hatemplate.States(powerEntity, "float(0)", "round(1)"),
	}

	fan := ventilationFan(
		entity.UniqueID(slug, appliance+"_fan"),
		display+" "+applianceDisplay+" Fan",
		slug+"_"+appliance+"_fan",
	)

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: []entity.Def{active}},
		{Category: entity.CategorySensor, Entries: []entity.Def{cycleState, runtime, power}},
		{Category: entity.CategoryFan, Fans: []entity.FanDef{fan}},
	}, nil
}

// ventilationFan builds a legacy-style template fan backed by a switch and
// an input_number speed control. Shared by the appliance, bathroom and
// kitchen generators.
func ventilationFan(key, friendlyName, controlSlug string) entity.FanDef {
	return entity.FanDef{
		Key:           key,
		FriendlyName:  friendlyName,
		ValueTemplate: hatemplate.States("switch." + controlSlug),
		SpeedTemplate: hatemplate.States("sensor." + controlSlug + "_speed"),
		TurnOn: entity.ServiceCall{
			Service:  "switch.turn_on",
			EntityID: "switch." + controlSlug,
		},
		TurnOff: entity.ServiceCall{
			Service:  "switch.turn_off",
			EntityID: "switch." + controlSlug,
		},
		SetSpeed: entity.ServiceCall{
			Service:  "input_number.set_value",
			EntityID: "input_number." + controlSlug + "_speed",
			DataTemplate: []entity.Attribute{
				{Key: "value", Value: "{{ speed }}"},
			},
		},
		Speeds: []string{"low", "medium", "high"},
	}
}

// titleWords turns a snake_case identifier into display words
// ("washing_machine" becomes "Washing Machine").
func titleWords(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
