// Package hatemplate builds Home Assistant Jinja template expressions.
//
// Generators assemble entity state expressions from these helpers instead of
// hand-concatenating braces. All helpers are pure string construction; the
// resulting templates are evaluated by Home Assistant, never by this tool.
package hatemplate

import (
	"fmt"
	"strconv"
	"strings"
)

// States returns a "{{ states('...') }}" expression, with optional filters
// appended in order (e.g., States("sensor.tv_power", "float(0)")).
func States(entityID string, filters ...string) string {
	return wrap(statesCall(entityID, filters...))
}

// Attr returns a "{{ state_attr('...', '...') }}" expression with optional
// filters.
func Attr(entityID, attribute string, filters ...string) string {
	expr := fmt.Sprintf("state_attr('%s', '%s')", entityID, attribute)
	for _, f := range filters {
		expr += "|" + f
	}
	return wrap(expr)
}

// IsState returns a "{{ is_state('...', '...') }}" expression.
func IsState(entityID, state string) string {
	return wrap(fmt.Sprintf("is_state('%s', '%s')", entityID, state))
}

// SetFloat returns a "{% set name = states('...')|float(def) %}" statement.
// The float filter's default makes missing source entities contribute the
// default instead of poisoning the expression with 'unknown'.
func SetFloat(name, entityID string, def float64) string {
	return fmt.Sprintf("{%% set %s = states('%s')|float(%s) %%}", name, entityID, formatFloat(def))
}

// SetInt returns a "{% set name = states('...')|int(def) %}" statement.
func SetInt(name, entityID string, def int) string {
	return fmt.Sprintf("{%% set %s = states('%s')|int(%d) %%}", name, entityID, def)
}

// Lines joins template lines with newlines. The renderer emits multi-line
// states as literal block scalars, so one statement per line keeps the
// generated YAML readable.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// SumFloat returns the template lines that sum the states of the given
// entities with a namespace loop, rounding to the given precision. Each
// entity contributes |float(0), so absent entities sum as zero rather than
// making the total undefined.
func SumFloat(entityIDs []string, varName string, round int) string {
	lines := []string{"{% set components = ["}
	quoted := make([]string, len(entityIDs))
	for i, id := range entityIDs {
		quoted[i] = "'" + id + "'"
	}
	lines = append(lines, "    "+strings.Join(quoted, ",\n    "))
	lines = append(lines,
		"] %}",
		"",
		fmt.Sprintf("{%% set total = namespace(%s=0) %%}", varName),
		"{% for component in components %}",
		fmt.Sprintf("  {%% set total.%s = total.%s + states(component)|float(0) %%}", varName, varName),
		"{% endfor %}",
		fmt.Sprintf("{{ total.%s|round(%d) }}", varName, round),
	)
	return Lines(lines...)
}

func statesCall(entityID string, filters ...string) string {
	expr := fmt.Sprintf("states('%s')", entityID)
	for _, f := range filters {
		expr += "|" + f
	}
	return expr
}

func wrap(expr string) string {
	return "{{ " + expr + " }}"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
