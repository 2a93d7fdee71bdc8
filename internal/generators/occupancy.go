package generators

import (
	"fmt"
	"strings"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/entity"
)

// Trigger is one occupancy signal with its contribution weight.
// Condition is the entity state that counts as a hit ("on" unless set).
type Trigger struct {
	EntityID    string
	Weight      int
	Description string
	Condition   string
}

// Occupancy scoring constants. The manual override contributes enough to
// force occupancy on its own; the occupied threshold matches the lower edge
// of the medium confidence band.
const (
	OccupiedThreshold = 3
	overrideWeight    = 5
)

// Confidence band boundaries (inclusive upper edges). A score exactly on a
// boundary classifies into the lower band.
const (
	bandNoneMax = 0
	bandLowMax  = 2
	bandMedMax  = 5
)

// ConfidenceBand classifies a weighted occupancy score into a discrete
// confidence band. Monotonic: a higher score never yields a lower band.
func ConfidenceBand(score int) string {
	switch {
	case score <= bandNoneMax:
		return "none"
	case score <= bandLowMax:
		return "low"
	case score <= bandMedMax:
		return "medium"
	default:
		return "high"
	}
}

// Score sums the weights of the active triggers. The sum is commutative, so
// reordering triggers never changes the result.
func Score(triggers []Trigger, active func(Trigger) bool) int {
	total := 0
	for _, tr := range triggers {
		if active(tr) {
			total += tr.Weight
		}
	}
	return total
}

// OccupancyTriggers derives the occupancy signals for an area in a fixed
// order: ambient sensors first, then device activity in selection order.
func OccupancyTriggers(spec *area.Spec) []Trigger {
	slug := spec.Slug()
	var triggers []Trigger

	if spec.Features.MotionSensor {
		triggers = append(triggers, Trigger{
			EntityID:    spec.SourceEntity("motion", "binary_sensor."+slug+"_motion"),
			Weight:      2,
			Description: "Motion Detected",
		})
	}

	if spec.Features.DoorSensor {
		// A closed door counts toward occupancy.
		triggers = append(triggers, Trigger{
			EntityID:    spec.SourceEntity("door", "binary_sensor."+slug+"_door_contact"),
			Weight:      1,
			Description: "Door Closed",
			Condition:   "off",
		})
	}

	for _, kind := range spec.Devices {
		switch kind {
		case area.DeviceComputer:
			triggers = append(triggers, Trigger{
				EntityID:    "binary_sensor." + entity.UniqueID(slug, "pc_active"),
				Weight:      3,
				Description: "PC Active",
			})
		case area.DeviceTV:
			triggers = append(triggers, Trigger{
				EntityID:    "binary_sensor." + entity.UniqueID(slug, "tv_active"),
				Weight:      2,
				Description: "TV Active",
			})
		case area.DeviceMajorAppliance:
			triggers = append(triggers, Trigger{
				EntityID:    "binary_sensor." + entity.UniqueID(slug, spec.Appliance()+"_active"),
				Weight:      2,
				Description: "Appliance Active",
			})
		case area.DeviceBathroomFixture:
			triggers = append(triggers, Trigger{
				EntityID:    "binary_sensor." + entity.UniqueID(slug, "shower_active"),
				Weight:      2,
				Description: "Shower Active",
			})
		case area.DeviceKitchenAppliance:
			triggers = append(triggers, Trigger{
				EntityID:    "binary_sensor." + entity.UniqueID(slug, "cooking_active"),
				Weight:      2,
				Description: "Cooking Active",
			})
		}
	}

	return triggers
}

// Occupancy aggregates the area's activity signals into a single occupancy
// binary sensor with a weighted confidence score. Areas with no signal
// sources at all produce no occupancy sensor.
func Occupancy(spec *area.Spec) ([]entity.ConfigFragment, error) {
	triggers := OccupancyTriggers(spec)
	if len(triggers) == 0 {
		return nil, nil
	}

	slug := spec.Slug()
	overrideEntity := spec.SourceEntity("occupied_override", "input_boolean."+slug+"_occupied_override")

	occupancy := entity.Def{
		Name:        spec.DisplayName() + " Occupancy",
		UniqueID:    entity.UniqueID(slug, "occupancy"),
		DeviceClass: "occupancy",
		State:       scoreTemplate(triggers, overrideEntity, fmt.Sprintf("{{ scores.total >= %d }}", OccupiedThreshold)),
		Attributes: []entity.Attribute{
			{Key: "confidence_score", Value: scoreTemplate(triggers, overrideEntity, "{{ scores.total }}")},
			{Key: "confidence", Value: scoreTemplate(triggers, overrideEntity, bandClassifier())},
			{Key: "active_triggers", Value: activeTriggersTemplate(triggers, overrideEntity)},
		},
	}

	return []entity.ConfigFragment{
		{Category: entity.CategoryBinarySensor, Entries: []entity.Def{occupancy}},
	}, nil
}

// scoreTemplate emits the weighted-sum scoring block followed by the given
// final expression. Every attribute and the state share the same scoring
// logic, so they can never disagree about the total.
func scoreTemplate(triggers []Trigger, overrideEntity, result string) string {
	lines := []string{"{% set scores = namespace(total=0) %}"}

	for _, tr := range triggers {
		condition := tr.Condition
		if condition == "" {
			condition = "on"
		}
		lines = append(lines, fmt.Sprintf(
			"{%% if is_state('%s', '%s') %%}  {%% set scores.total = scores.total + %d %%}{%% endif %%}",
			tr.EntityID, condition, tr.Weight,
		))
	}

	lines = append(lines, fmt.Sprintf(
		"{%% if is_state('%s', 'on') %%}  {%% set scores.total = scores.total + %d %%}{%% endif %%}",
		overrideEntity, overrideWeight,
	))
	lines = append(lines, result)

	return strings.Join(lines, "\n")
}

// bandClassifier returns the Jinja expression mapping the score total to a
// confidence band, mirroring ConfidenceBand.
func bandClassifier() string {
	return strings.Join([]string{
		fmt.Sprintf("{%% if scores.total <= %d %%}none", bandNoneMax),
		fmt.Sprintf("{%% elif scores.total <= %d %%}low", bandLowMax),
		fmt.Sprintf("{%% elif scores.total <= %d %%}medium", bandMedMax),
		"{% else %}high",
		"{% endif %}",
	}, "\n")
}

// activeTriggersTemplate lists the descriptions of the currently-true
// signals, joined with commas.
func activeTriggersTemplate(triggers []Trigger, overrideEntity string) string {
	lines := []string{"{% set triggers = [] %}"}

	for _, tr := range triggers {
		condition := tr.Condition
		if condition == "" {
			condition = "on"
		}
		lines = append(lines, fmt.Sprintf(
			"{%% if is_state('%s', '%s') %%}  {%% set triggers = triggers + ['%s'] %%}{%% endif %%}",
			tr.EntityID, condition, tr.Description,
		))
	}

	lines = append(lines, fmt.Sprintf(
		"{%% if is_state('%s', 'on') %%}  {%% set triggers = triggers + ['Manual Override'] %%}{%% endif %%}",
		overrideEntity,
	))
	lines = append(lines, "{{ triggers|join(', ') }}")

	return strings.Join(lines, "\n")
}
