package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/areacfg/internal/area"
)

// Step identifies the current wizard screen
type Step int

const (
	StepName Step = iota
	StepType
	StepDevices
	StepAppliance
	StepFeatures
	StepHumiditySource
	StepConfirm
)

// ApplianceOption pairs an appliance identifier with its display label
type ApplianceOption struct {
	ID    string
	Label string
}

// ApplianceOptions lists the major-appliance refinements offered by the
// wizard, in display order.
var ApplianceOptions = []ApplianceOption{
	{ID: "washing_machine", Label: "Washing machine"},
	{ID: "dishwasher", Label: "Dishwasher"},
	{ID: "tumble_dryer", Label: "Tumble dryer"},
	{ID: "water_heater", Label: "Water heater"},
	{ID: "appliance", Label: "Other appliance"},
}

// featureItem binds a checklist label to a flag inside area.Features
type featureItem struct {
	Label   string
	Hint    string
	Enabled func(*area.Features) *bool
}

func featureItems() []featureItem {
	return []featureItem{
		{"Motion sensor", "presence detection, weight 2", func(f *area.Features) *bool { return &f.MotionSensor }},
		{"Door sensor", "closed door counts toward occupancy", func(f *area.Features) *bool { return &f.DoorSensor }},
		{"Window sensor", "adds open-window climate impact", func(f *area.Features) *bool { return &f.WindowSensor }},
		{"Temperature sensor", "room temperature source", func(f *area.Features) *bool { return &f.TemperatureSensor }},
		{"Humidity sensor", "required for bathroom fixtures", func(f *area.Features) *bool { return &f.HumiditySensor }},
		{"Smart lighting", "brightness and transition helpers", func(f *area.Features) *bool { return &f.SmartLighting }},
		{"Power monitoring", "total power and daily energy sensors", func(f *area.Features) *bool { return &f.PowerMonitoring }},
		{"Climate control", "comfort and trend sensors", func(f *area.Features) *bool { return &f.ClimateControl }},
	}
}

// wizardKeyMap defines key bindings shared across wizard steps
type wizardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Next   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Next, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Next, k.Back, k.Quit},
	}
}

// WizardModel walks the user through describing one area: name, room type,
// devices, features, and source overrides, ending at a confirmation summary.
type WizardModel struct {
	Step Step

	// Step inputs
	NameInput      textinput.Model
	HumidityInput  textinput.Model
	TypeCursor     int
	DeviceCursor   int
	DeviceChecked  map[area.DeviceKind]bool
	DeviceOrder    []area.DeviceKind // selection order, drives generation order
	ApplianceIdx   int
	FeatureCursor  int
	Features       area.Features
	FeatureTouched bool // user changed a toggle; stop re-applying type presets

	// Validation feedback for the current step
	FieldError string

	// Outcome
	Confirmed bool

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   wizardKeyMap
}

// NewWizardModel creates the wizard in its initial state
func NewWizardModel() WizardModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Master Bedroom"
	nameInput.CharLimit = 60
	nameInput.Width = 40
	nameInput.Focus()

	humidityInput := textinput.New()
	humidityInput.Placeholder = "sensor.hall_humidity"
	humidityInput.CharLimit = 120
	humidityInput.Width = 50

	keys := wizardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}

	return WizardModel{
		Step:          StepName,
		NameInput:     nameInput,
		HumidityInput: humidityInput,
		DeviceChecked: make(map[area.DeviceKind]bool),
		Features:      area.DefaultFeatures(),
		Help:          help.New(),
		Keys:          keys,
		Width:         MinTerminalWidth,
		Height:        24,
	}
}

// Init initializes the wizard
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and advances the wizard state machine
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Confirmed = false
			return m, tea.Quit
		}
	}

	switch m.Step {
	case StepName:
		return m.updateName(msg)
	case StepType:
		return m.updateType(msg)
	case StepDevices:
		return m.updateDevices(msg)
	case StepAppliance:
		return m.updateAppliance(msg)
	case StepFeatures:
		return m.updateFeatures(msg)
	case StepHumiditySource:
		return m.updateHumiditySource(msg)
	case StepConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

// updateName handles the area name entry step
func (m WizardModel) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			name := strings.TrimSpace(m.NameInput.Value())
			if name == "" {
				m.FieldError = "Area name cannot be empty"
				return m, nil
			}
			if area.Normalize(name) == "" {
				m.FieldError = fmt.Sprintf("%q contains no usable characters", name)
				return m, nil
			}
			m.FieldError = ""
			m.Step = StepType
			return m, nil

		case "esc":
			// Nothing earlier to go back to
			m.Confirmed = false
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.NameInput, cmd = m.NameInput.Update(msg)
	return m, cmd
}

// updateType handles the room type selection step
func (m WizardModel) updateType(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.TypeCursor > 0 {
			m.TypeCursor--
		}
	case "down", "j":
		if m.TypeCursor < len(area.AllTypes)-1 {
			m.TypeCursor++
		}
	case "enter":
		m.applyTypePreset()
		m.Step = StepDevices
	case "esc":
		m.Step = StepName
		m.NameInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// applyTypePreset adjusts feature defaults for the chosen room type.
// Skipped once the user has touched the feature checklist.
func (m *WizardModel) applyTypePreset() {
	if m.FeatureTouched {
		return
	}
	switch area.AllTypes[m.TypeCursor] {
	case area.TypeBathroom:
		m.Features.HumiditySensor = true
		m.Features.WindowSensor = true
	case area.TypeKitchen:
		m.Features.WindowSensor = true
	}
}

// updateDevices handles the device multi-select step
func (m WizardModel) updateDevices(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.DeviceCursor > 0 {
			m.DeviceCursor--
		}
	case "down", "j":
		if m.DeviceCursor < len(area.AllDeviceKinds)-1 {
			m.DeviceCursor++
		}
	case " ":
		kind := area.AllDeviceKinds[m.DeviceCursor]
		if m.DeviceChecked[kind] {
			delete(m.DeviceChecked, kind)
			m.DeviceOrder = removeKind(m.DeviceOrder, kind)
		} else {
			m.DeviceChecked[kind] = true
			m.DeviceOrder = append(m.DeviceOrder, kind)
		}
	case "enter":
		m.FieldError = ""
		if m.DeviceChecked[area.DeviceMajorAppliance] {
			m.Step = StepAppliance
		} else {
			m.Step = StepFeatures
		}
	case "esc":
		m.Step = StepType
	}

	return m, nil
}

// removeKind drops one kind from a selection-order slice
func removeKind(order []area.DeviceKind, kind area.DeviceKind) []area.DeviceKind {
	out := order[:0]
	for _, k := range order {
		if k != kind {
			out = append(out, k)
		}
	}
	return out
}

// updateAppliance handles the appliance refinement step
func (m WizardModel) updateAppliance(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.ApplianceIdx > 0 {
			m.ApplianceIdx--
		}
	case "down", "j":
		if m.ApplianceIdx < len(ApplianceOptions)-1 {
			m.ApplianceIdx++
		}
	case "enter":
		m.Step = StepFeatures
	case "esc":
		m.Step = StepDevices
	}

	return m, nil
}

// updateFeatures handles the feature checklist step
func (m WizardModel) updateFeatures(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := featureItems()

	switch keyMsg.String() {
	case "up", "k":
		if m.FeatureCursor > 0 {
			m.FeatureCursor--
		}
	case "down", "j":
		if m.FeatureCursor < len(items)-1 {
			m.FeatureCursor++
		}
	case " ":
		flag := items[m.FeatureCursor].Enabled(&m.Features)
		*flag = !*flag
		m.FeatureTouched = true
	case "enter":
		if m.needsHumiditySource() {
			m.Step = StepHumiditySource
			m.HumidityInput.Focus()
			return m, textinput.Blink
		}
		m.Step = StepConfirm
	case "esc":
		if m.DeviceChecked[area.DeviceMajorAppliance] {
			m.Step = StepAppliance
		} else {
			m.Step = StepDevices
		}
	}

	return m, nil
}

// needsHumiditySource reports whether bathroom generation would fail
// without an external humidity entity.
func (m WizardModel) needsHumiditySource() bool {
	return m.DeviceChecked[area.DeviceBathroomFixture] && !m.Features.HumiditySensor
}

// updateHumiditySource handles the external humidity entity prompt
func (m WizardModel) updateHumiditySource(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if strings.TrimSpace(m.HumidityInput.Value()) == "" {
				m.FieldError = "Bathroom fixtures need a humidity source; name an entity or go back and enable the humidity sensor"
				return m, nil
			}
			m.FieldError = ""
			m.Step = StepConfirm
			return m, nil

		case "esc":
			m.FieldError = ""
			m.Step = StepFeatures
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.HumidityInput, cmd = m.HumidityInput.Update(msg)
	return m, cmd
}

// updateConfirm handles the summary/confirmation step
func (m WizardModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "g":
		m.Confirmed = true
		return m, tea.Quit
	case "esc":
		if m.needsHumiditySource() {
			m.Step = StepHumiditySource
			m.HumidityInput.Focus()
			return m, textinput.Blink
		}
		m.Step = StepFeatures
	case "q":
		m.Confirmed = false
		return m, tea.Quit
	}

	return m, nil
}

// BuildSpec assembles the collected answers into an area description.
// Only meaningful after the user confirmed.
func (m WizardModel) BuildSpec() *area.Spec {
	spec := &area.Spec{
		Name:     strings.TrimSpace(m.NameInput.Value()),
		Type:     area.AllTypes[m.TypeCursor],
		Devices:  append([]area.DeviceKind(nil), m.DeviceOrder...),
		Features: m.Features,
	}

	if m.DeviceChecked[area.DeviceMajorAppliance] {
		spec.ApplianceType = ApplianceOptions[m.ApplianceIdx].ID
	}

	if humidity := strings.TrimSpace(m.HumidityInput.Value()); humidity != "" {
		spec.EntityOverrides = map[string]string{"humidity": humidity}
	}

	return spec
}

// View renders the current wizard step
func (m WizardModel) View() string {
	var content string

	switch m.Step {
	case StepName:
		content = m.viewName()
	case StepType:
		content = m.viewType()
	case StepDevices:
		content = m.viewDevices()
	case StepAppliance:
		content = m.viewAppliance()
	case StepFeatures:
		content = m.viewFeatures()
	case StepHumiditySource:
		content = m.viewHumiditySource()
	case StepConfirm:
		content = m.viewConfirm()
	}

	return RenderApplicationContainer(content, m.Help.View(m.Keys), m.Width, m.Height)
}

// viewName renders the area name entry screen
func (m WizardModel) viewName() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 1/6 · Area Name"))
	b.WriteString("\n\n")
	b.WriteString("  What is this area called?\n\n")
	b.WriteString("  " + m.NameInput.View())
	b.WriteString("\n\n")

	if slug := area.Normalize(m.NameInput.Value()); slug != "" {
		b.WriteString(RenderSubtitle("  Entity prefix: " + slug))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFieldError())
	return b.String()
}

// viewType renders the room type selection screen
func (m WizardModel) viewType() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 2/6 · Room Type"))
	b.WriteString("\n\n")
	b.WriteString("  The room type tunes comfort thresholds and defaults.\n\n")

	for i, t := range area.AllTypes {
		label := fmt.Sprintf("%-14s %s", string(t), area.TypeDescriptions[t])
		b.WriteString(RenderMenuItem(label, i == m.TypeCursor))
		b.WriteString("\n")
	}

	return b.String()
}

// viewDevices renders the device checklist screen
func (m WizardModel) viewDevices() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 3/6 · Devices"))
	b.WriteString("\n\n")
	b.WriteString("  Select the devices present in this area. Order of selection\n")
	b.WriteString("  is the order their sensors appear in the output.\n\n")

	for i, kind := range area.AllDeviceKinds {
		marker := "[ ]"
		if m.DeviceChecked[kind] {
			marker = "[x]"
		}
		label := fmt.Sprintf("%s %-18s %s", marker, string(kind), area.DeviceKindDescriptions[kind])
		b.WriteString(RenderMenuItem(label, i == m.DeviceCursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("  %d selected", len(m.DeviceOrder))))
	b.WriteString("\n")

	return b.String()
}

// viewAppliance renders the appliance refinement screen
func (m WizardModel) viewAppliance() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 4/6 · Appliance Type"))
	b.WriteString("\n\n")
	b.WriteString("  Which major appliance lives here? This names its sensors.\n\n")

	for i, opt := range ApplianceOptions {
		label := fmt.Sprintf("%-16s %s", opt.ID, opt.Label)
		b.WriteString(RenderMenuItem(label, i == m.ApplianceIdx))
		b.WriteString("\n")
	}

	return b.String()
}

// viewFeatures renders the feature checklist screen
func (m WizardModel) viewFeatures() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 5/6 · Features"))
	b.WriteString("\n\n")
	b.WriteString("  Toggle the signal sources available in this area.\n\n")

	features := m.Features
	for i, item := range featureItems() {
		marker := "[ ]"
		if *item.Enabled(&features) {
			marker = "[x]"
		}
		label := fmt.Sprintf("%s %-20s %s", marker, item.Label, item.Hint)
		b.WriteString(RenderMenuItem(label, i == m.FeatureCursor))
		b.WriteString("\n")
	}

	if m.needsHumiditySource() {
		b.WriteString("\n")
		b.WriteString(RenderSubtitle("  Bathroom fixtures selected without a humidity sensor;"))
		b.WriteString("\n")
		b.WriteString(RenderSubtitle("  the next step asks for an external humidity entity."))
		b.WriteString("\n")
	}

	return b.String()
}

// viewHumiditySource renders the external humidity entity prompt
func (m WizardModel) viewHumiditySource() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 5b/6 · Humidity Source"))
	b.WriteString("\n\n")
	b.WriteString("  Bathroom sensors derive shower and ventilation state from\n")
	b.WriteString("  humidity. Name the entity that measures it for this area.\n\n")
	b.WriteString("  " + m.HumidityInput.View())
	b.WriteString("\n")
	b.WriteString(m.renderFieldError())

	return b.String()
}

// viewConfirm renders the final summary screen
func (m WizardModel) viewConfirm() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Step 6/6 · Review"))
	b.WriteString("\n\n")

	name := strings.TrimSpace(m.NameInput.Value())
	areaType := area.AllTypes[m.TypeCursor]

	summary := fmt.Sprintf("  Name:      %s\n", name)
	summary += fmt.Sprintf("  Slug:      %s\n", area.Normalize(name))
	summary += fmt.Sprintf("  Type:      %s\n", area.TypeDescriptions[areaType])

	if len(m.DeviceOrder) == 0 {
		summary += "  Devices:   none\n"
	} else {
		names := make([]string, len(m.DeviceOrder))
		for i, kind := range m.DeviceOrder {
			names[i] = string(kind)
		}
		summary += fmt.Sprintf("  Devices:   %s\n", strings.Join(names, ", "))
	}

	if m.DeviceChecked[area.DeviceMajorAppliance] {
		summary += fmt.Sprintf("  Appliance: %s\n", ApplianceOptions[m.ApplianceIdx].ID)
	}
	if humidity := strings.TrimSpace(m.HumidityInput.Value()); humidity != "" {
		summary += fmt.Sprintf("  Humidity:  %s\n", humidity)
	}

	summary += fmt.Sprintf("  Features:  %s", featureSummary(m.Features))

	b.WriteString(RenderInfo(summary))
	b.WriteString("\n\n")
	b.WriteString(SuccessBoxStyle.Render("  Press enter to generate the configuration."))
	b.WriteString("\n")

	return b.String()
}

// featureSummary lists the enabled features on one line
func featureSummary(f area.Features) string {
	var on []string
	features := f
	for _, item := range featureItems() {
		if *item.Enabled(&features) {
			on = append(on, strings.ToLower(item.Label))
		}
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ", ")
}

// renderFieldError renders the current validation message, if any
func (m WizardModel) renderFieldError() string {
	if m.FieldError == "" {
		return ""
	}
	return "\n" + RenderError(m.FieldError) + "\n"
}

// Run launches the wizard and blocks until the user confirms or quits.
// Returns the described area and whether the user confirmed generation.
func Run() (*area.Spec, bool, error) {
	p := tea.NewProgram(NewWizardModel())
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("wizard error: %w", err)
	}

	model, ok := final.(WizardModel)
	if !ok || !model.Confirmed {
		return nil, false, nil
	}

	return model.BuildSpec(), true, nil
}
