// Package render serializes a merged area document to YAML and writes it
// to disk.
//
// Serialization builds the yaml.v3 node tree explicitly rather than
// marshalling structs: field order inside each entity is fixed, unset
// optional fields are omitted entirely (never emitted as null), attribute
// order is preserved, and multi-line state expressions become literal block
// scalars. Identical documents therefore always render to identical bytes.
package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/muurk/areacfg/internal/assemble"
	"github.com/muurk/areacfg/internal/entity"
)

const yamlIndent = 2

// Render serializes a document to YAML.
func Render(doc *assemble.Document) ([]byte, error) {
	areaBody := mapNode()

	templates := seqNode()
	for _, frag := range doc.Templates {
		block, err := categoryBlock(frag)
		if err != nil {
			return nil, err
		}
		templates.Content = append(templates.Content, block)
	}
	addPair(areaBody, "template", templates)

	if len(doc.InputNumbers) > 0 {
		numbers := mapNode()
		for _, n := range doc.InputNumbers {
			node, err := inputNumberNode(n)
			if err != nil {
				return nil, err
			}
			addPair(numbers, n.Key, node)
		}
		addPair(areaBody, "input_number", numbers)
	}

	if len(doc.InputBooleans) > 0 {
		booleans := mapNode()
		for _, b := range doc.InputBooleans {
			node := mapNode()
			addPair(node, "name", strNode(b.Name))
			if b.Icon != "" {
				addPair(node, "icon", strNode(b.Icon))
			}
			addPair(booleans, b.Key, node)
		}
		addPair(areaBody, "input_boolean", booleans)
	}

	root := mapNode()
	addPair(root, doc.AreaName, areaBody)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize document: %w", err)
	}

	return buf.Bytes(), nil
}

// categoryBlock renders one category's entries as a single-key mapping,
// mirroring the platform's template schema.
func categoryBlock(frag entity.ConfigFragment) (*yaml.Node, error) {
	block := mapNode()

	if frag.Category == entity.CategoryFan {
		fans := seqNode()
		for _, fan := range frag.Fans {
			fans.Content = append(fans.Content, fanNode(fan))
		}
		addPair(block, string(frag.Category), fans)
		return block, nil
	}

	entries := seqNode()
	for _, def := range frag.Entries {
		node, err := entityNode(def)
		if err != nil {
			return nil, err
		}
		entries.Content = append(entries.Content, node)
	}
	addPair(block, string(frag.Category), entries)
	return block, nil
}

// entityNode renders one entity definition with fixed field order. Fields
// left at their zero value are omitted.
func entityNode(def entity.Def) (*yaml.Node, error) {
	node := mapNode()
	addPair(node, "name", strNode(def.Name))
	addPair(node, "unique_id", strNode(def.UniqueID))
	if def.DeviceClass != "" {
		addPair(node, "device_class", strNode(def.DeviceClass))
	}
	if def.StateClass != "" {
		addPair(node, "state_class", strNode(def.StateClass))
	}
	if def.Unit != "" {
		addPair(node, "unit_of_measurement", strNode(def.Unit))
	}
	if def.Icon != "" {
		addPair(node, "icon", strNode(def.Icon))
	}
	addPair(node, "state", stateNode(def.State))

	if len(def.Attributes) > 0 {
		attrs := mapNode()
		for _, a := range def.Attributes {
			attrs.Content = append(attrs.Content, strNode(a.Key), stateNode(a.Value))
		}
		addPair(node, "attributes", attrs)
	}

	return node, nil
}

// fanNode renders one legacy-style template fan platform entry.
func fanNode(fan entity.FanDef) *yaml.Node {
	body := mapNode()
	addPair(body, "friendly_name", strNode(fan.FriendlyName))
	addPair(body, "value_template", strNode(fan.ValueTemplate))
	addPair(body, "speed_template", strNode(fan.SpeedTemplate))
	addPair(body, "turn_on", serviceNode(fan.TurnOn))
	addPair(body, "turn_off", serviceNode(fan.TurnOff))
	addPair(body, "set_speed", serviceNode(fan.SetSpeed))

	speeds := seqNode()
	for _, s := range fan.Speeds {
		speeds.Content = append(speeds.Content, strNode(s))
	}
	addPair(body, "speeds", speeds)

	fans := mapNode()
	addPair(fans, fan.Key, body)

	node := mapNode()
	addPair(node, "platform", strNode("template"))
	addPair(node, "fans", fans)
	return node
}

func serviceNode(call entity.ServiceCall) *yaml.Node {
	node := mapNode()
	addPair(node, "service", strNode(call.Service))
	addPair(node, "entity_id", strNode(call.EntityID))
	if len(call.DataTemplate) > 0 {
		data := mapNode()
		for _, a := range call.DataTemplate {
			data.Content = append(data.Content, strNode(a.Key), strNode(a.Value))
		}
		addPair(node, "data_template", data)
	}
	return node
}

// inputNumberNode renders one input_number helper, rejecting non-finite
// numeric values with the offending field path.
func inputNumberNode(n entity.InputNumber) (*yaml.Node, error) {
	node := mapNode()
	addPair(node, "name", strNode(n.Name))

	fields := []struct {
		key   string
		value float64
	}{
		{"min", n.Min},
		{"max", n.Max},
		{"step", n.Step},
	}
	for _, f := range fields {
		num, err := floatNode("input_number."+n.Key+"."+f.key, f.value)
		if err != nil {
			return nil, err
		}
		addPair(node, f.key, num)
	}

	if n.Unit != "" {
		addPair(node, "unit_of_measurement", strNode(n.Unit))
	}
	if n.Icon != "" {
		addPair(node, "icon", strNode(n.Icon))
	}

	initial, err := floatNode("input_number."+n.Key+".initial", n.Initial)
	if err != nil {
		return nil, err
	}
	addPair(node, "initial", initial)

	return node, nil
}

// stateNode renders a template expression. Multi-line expressions use a
// literal block scalar so the generated YAML stays readable and reparses
// to the identical string.
func stateNode(expr string) *yaml.Node {
	node := strNode(expr)
	if strings.Contains(expr, "\n") {
		node.Style = yaml.LiteralStyle
	}
	return node
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func floatNode(path string, v float64) (*yaml.Node, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &SerializationError{Path: path, Message: fmt.Sprintf("non-finite number %v", v)}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
}

func mapNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func seqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}
