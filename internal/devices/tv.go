package devices

import (
	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
	"github.com/muurk/areacfg/internal/hatemplate"
)

// generateTV builds the template entities for a television/entertainment
// setup: an activity binary sensor, a media-state sensor with a fixed
// off/idle/playing/paused vocabulary, a power sensor, and an input-source
// sensor.
func generateTV(spec *area.Spec) ([]entity.ConfigFragment, error) {
	display := spec.DisplayName()
	slug := spec.Slug()

	powerEntity := spec.SourceEntity("tv_power", "sensor.tv_power")
	mediaEntity := spec.SourceEntity("tv_media_player", "media_player."+slug+"_tv")

	tvActive := entity.Def{
		Name:        display + " TV Active",
		UniqueID:    entity.UniqueID(slug, "tv_active"),
		DeviceClass: "power",
		State: hatemplate.Lines(
			hatemplate.SetFloat("power", powerEntity, 0),
			"{{ power > 10 }}",
		),
		Attributes: []entity.Attribute{
			{Key: "power_draw", Value: hatemplate.States(powerEntity, "float(0)")},
			{Key: "current_channel", Value: hatemplate.States(spec.SourceEntity("tv_channel", "sensor.tv_channel"))},
			{Key: "volume", Value: hatemplate.States(spec.SourceEntity("tv_volume", "sensor.tv_volume"), "int(0)")},
		},
	}

	mediaState := entity.Def{
		Name:     display + " TV Media State",
		UniqueID: entity.UniqueID(slug, "tv_media_state"),
		State: hatemplate.Lines(
			"{% set media = states('"+mediaEntity+"') %}",
			hatemplate.SetFloat("power", powerEntity, 0),
			"{% if media in ['playing', 'paused'] %}{{ media }}",
			"{% elif power > 10 %}idle",
			"{% else %}off",
			"{% endif %}",
		),
	}

	tvPower := entity.Def{
		Name:        display + " TV Power",
		UniqueID:    entity.UniqueID(slug, "tv_power_draw"),
		DeviceClass: "power",
		StateClass:  "measurement",
		Unit:        "W",
		State:       hatemplate.States(powerEntity, "float(0)", "round(1)"),
	}

	inputSource := entity.Def{
		Name:     display + " TV Input Source",
		UniqueID: entity.UniqueID(slug, "tv_input_source"),
		State:    hatemplate.States(spec.SourceEntity("tv_input_source", "sensor.tv_input_source")),
		Attributes: []entity.Attribute{
			{Key: "hdmi_connected", Value: hatemplate.Attr(spec.SourceEntity("tv_hdmi", "sensor.tv_hdmi"), "connected_devices", "default([])")},
		},
	}

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: []entity.Def{tvActive}},
		{Category: entity.CategorySensor, Entries: []entity.Def{mediaState, tvPower, inputSource}},
	}, nil
}
