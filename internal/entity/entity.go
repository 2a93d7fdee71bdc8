// Package entity defines the building blocks of a generated area document:
// entity definitions, configuration fragments, and input helpers.
//
// Every generator returns ConfigFragments; the assemble package merges them
// and the render package serializes the result. Nothing in this package is
// mutated after creation.
package entity

// Category identifies the Home Assistant template platform an entity
// definition belongs to.
type Category string

const (
	CategoryBinarySensor Category = "binary_sensor"
	CategorySensor       Category = "sensor"
	CategoryFan          Category = "fan"
)

// CategoryOrder fixes the order category blocks appear in the output
// document. Entries within a category keep generator-submission order.
var CategoryOrder = []Category{
	CategoryBinarySensor,
	CategorySensor,
	CategoryFan,
}

// Attribute is one key/value pair in an entity's attribute block.
// Attributes are a slice, not a map, so the rendered order is exactly the
// order the generator produced.
type Attribute struct {
	Key   string
	Value string
}

// Def is one template entity definition (sensor or binary sensor).
// State holds a Jinja expression, frequently multi-line; the renderer emits
// multi-line states as literal block scalars. Optional fields left empty are
// omitted from the output entirely.
type Def struct {
	Name        string
	UniqueID    string
	DeviceClass string
	StateClass  string
	Unit        string
	Icon        string
	State       string
	Attributes  []Attribute
}

// ServiceCall describes one service invocation in a fan template
// (turn_on, turn_off, set_speed).
type ServiceCall struct {
	Service      string
	EntityID     string
	DataTemplate []Attribute
}

// FanDef is one legacy-style template fan definition. Fans are keyed by an
// identifier that shares the unique-id namespace with sensor entities.
type FanDef struct {
	Key           string
	FriendlyName  string
	ValueTemplate string
	SpeedTemplate string
	TurnOn        ServiceCall
	TurnOff       ServiceCall
	SetSpeed      ServiceCall
	Speeds        []string
}

// ConfigFragment is a partial configuration tree produced by one generator:
// an ordered run of entity definitions under a single category. Fragments
// from different generators are merged by category during assembly.
type ConfigFragment struct {
	Category Category
	Entries  []Def
	Fans     []FanDef
}

// InputNumber is one input_number helper definition.
type InputNumber struct {
	Key     string
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Unit    string
	Icon    string
	Initial float64
}

// InputBoolean is one input_boolean helper definition.
type InputBoolean struct {
	Key  string
	Name string
	Icon string
}

// UniqueID derives the deterministic unique id for an entity role within an
// area. Identical inputs always produce the identical id; there is no random
// or time-derived component anywhere in a generated document.
func UniqueID(slug, role string) string {
	if slug == "" {
		return role
	}
	return slug + "_" + role
}
