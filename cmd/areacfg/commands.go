package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/areacfg/internal/area"
	"github.com/muurk/areacfg/internal/areaconfig"
	"github.com/muurk/areacfg/internal/assemble"
	"github.com/muurk/areacfg/internal/devices"
	"github.com/muurk/areacfg/internal/logging"
	"github.com/muurk/areacfg/internal/registry"
	"github.com/muurk/areacfg/internal/render"
	"github.com/muurk/areacfg/internal/ui"
	"github.com/muurk/areacfg/internal/wizard/tui"
)

// Generation command flags
var (
	genName       string
	genType       string
	genDevices    []string
	genAppliance  string
	genHumidityID string
	outputDir     string
	toStdout      bool
	force         bool

	// Feature gates; the positive set defaults on, the negative set off
	noMotion      bool
	noDoor        bool
	noTemperature bool
	noLighting    bool
	noPower       bool
	noClimate     bool
	withWindow    bool
	withHumidity  bool

	// Lighting defaults
	lightBrightness int
	lightColorTemp  string
	lightTransition int
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(kindsCmd)
}

// generateCmd builds an area configuration entirely from flags
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an area configuration from flags",
	Long: `Generate an area configuration without the interactive wizard.

The area name and type are required. Devices are passed as a comma-separated
list of kinds in the order their sensors should appear in the output; use
'areacfg kinds' to list them.

Motion, door, temperature, lighting, power, and climate features default on
and can be disabled individually. Window and humidity sensors default off.`,
	Example: `  # Study with a PC, everything else default
  areacfg generate --name Study --type study --devices computer

  # Bathroom with an external humidity sensor
  areacfg generate --name "Main Bathroom" --type bathroom \
    --devices bathroom_fixture --humidity-entity sensor.hall_humidity

  # Utility room washing machine, no climate sensors, print to stdout
  areacfg generate --name "Utility Room" --type utility \
    --devices major_appliance --appliance-type washing_machine \
    --no-climate --stdout`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genName, "name", "", "Area display name (required)")
	generateCmd.Flags().StringVar(&genType, "type", "", "Area type (required; see 'areacfg kinds')")
	generateCmd.Flags().StringSliceVar(&genDevices, "devices", nil, "Device kinds, in output order")
	generateCmd.Flags().StringVar(&genAppliance, "appliance-type", "", "Major appliance refinement (e.g. washing_machine)")
	generateCmd.Flags().StringVar(&genHumidityID, "humidity-entity", "", "External humidity entity id")
	generateCmd.Flags().StringVar(&outputDir, "out", "", "Output directory (default: stored preference or current directory)")
	generateCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print YAML to stdout instead of writing a file")
	generateCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file without asking")

	generateCmd.Flags().BoolVar(&noMotion, "no-motion", false, "Area has no motion sensor")
	generateCmd.Flags().BoolVar(&noDoor, "no-door", false, "Area has no door sensor")
	generateCmd.Flags().BoolVar(&noTemperature, "no-temperature", false, "Area has no temperature sensor")
	generateCmd.Flags().BoolVar(&noLighting, "no-lighting", false, "Skip smart lighting helpers")
	generateCmd.Flags().BoolVar(&noPower, "no-power", false, "Skip power monitoring sensors")
	generateCmd.Flags().BoolVar(&noClimate, "no-climate", false, "Skip climate comfort sensors")
	generateCmd.Flags().BoolVar(&withWindow, "window", false, "Area has a window sensor")
	generateCmd.Flags().BoolVar(&withHumidity, "humidity", false, "Area has a humidity sensor")

	generateCmd.Flags().IntVar(&lightBrightness, "brightness", 50, "Default lighting brightness (0-100)")
	generateCmd.Flags().StringVar(&lightColorTemp, "color-temp", "neutral", "Default color temperature (warm, neutral, cool)")
	generateCmd.Flags().IntVar(&lightTransition, "transition", 1, "Default lighting transition in seconds")

	_ = generateCmd.MarkFlagRequired("name")
	_ = generateCmd.MarkFlagRequired("type")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags()
	if err != nil {
		return err
	}
	return runGeneration(spec)
}

// specFromFlags assembles an area description from the generate flags
func specFromFlags() (*area.Spec, error) {
	areaType, err := area.ParseType(genType)
	if err != nil {
		return nil, err
	}

	kinds := make([]area.DeviceKind, 0, len(genDevices))
	for _, raw := range genDevices {
		kind, err := area.ParseDeviceKind(raw)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}

	features := area.DefaultFeatures()
	features.MotionSensor = !noMotion
	features.DoorSensor = !noDoor
	features.TemperatureSensor = !noTemperature
	features.SmartLighting = !noLighting
	features.PowerMonitoring = !noPower
	features.ClimateControl = !noClimate
	features.WindowSensor = withWindow
	features.HumiditySensor = withHumidity
	features.Lighting = area.LightingDefaults{
		Brightness: lightBrightness,
		ColorTemp:  lightColorTemp,
		Transition: lightTransition,
	}

	spec := &area.Spec{
		Name:          genName,
		Type:          areaType,
		Devices:       kinds,
		Features:      features,
		ApplianceType: genAppliance,
	}
	if genHumidityID != "" {
		spec.EntityOverrides = map[string]string{"humidity": genHumidityID}
	}

	return spec, nil
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive area wizard",
	Long: `Launch an interactive TUI wizard that walks through describing an area:
name, room type, devices, available sensors, and source overrides, ending
with a summary before anything is generated.

This is the recommended way to generate configurations for most users.`,
	Example: `  # Launch the wizard
  areacfg wizard
  # Or simply (wizard is default):
  areacfg`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the wizard needs an interactive terminal; use 'areacfg generate' instead")
	}

	spec, confirmed, err := tui.Run()
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Nothing generated.")
		return nil
	}

	return runGeneration(spec)
}

// kindsCmd lists the supported area types and device kinds
var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List supported area types and device kinds",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Area types:")
		for _, t := range area.AllTypes {
			fmt.Printf("  %-18s %s\n", string(t), area.TypeDescriptions[t])
		}
		fmt.Println()
		fmt.Println("Device kinds:")
		for _, k := range devices.Registered() {
			fmt.Printf("  %-18s %s\n", string(k), area.DeviceKindDescriptions[k])
		}
	},
}

// runGeneration runs the full pipeline for one area and reports the result
func runGeneration(spec *area.Spec) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	if !toStdout {
		devicesLine := "none"
		if len(spec.Devices) > 0 {
			devicesLine = strings.Join(deviceNames(spec), ", ")
		}
		fmt.Println(ui.NewHeader("Area Generation", "areacfg", []ui.Param{
			{Key: "Area", Value: spec.Name},
			{Key: "Type", Value: string(spec.Type)},
			{Key: "Devices", Value: devicesLine},
		}).Render())
		fmt.Println()
	}

	doc, err := areaconfig.Build(spec)
	if err != nil {
		fmt.Println(ui.RenderFailure("Area generation", err, troubleshootingFor(err)))
		return err
	}

	data, err := render.Render(doc)
	if err != nil {
		fmt.Println(ui.RenderFailure("Area generation", err, troubleshootingFor(err)))
		return err
	}

	entities := countEntities(doc)
	logging.LogGeneration(doc.AreaName, entities, deviceNames(spec))

	if toStdout {
		fmt.Print(string(data))
		return nil
	}

	// Output directory: flag beats stored preference beats current directory
	reg, regErr := registry.LoadRegistry()
	dir := outputDir
	if dir == "" {
		dir = "."
		if regErr == nil {
			dir = reg.OutputDirOr(".")
		}
	}

	path := render.OutputPath(dir, doc.Slug)
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("%s already exists; pass --force to overwrite", path)
			}
			if !ui.ConfirmOverwrite(path) {
				return nil
			}
		}
	}

	if err := render.WriteFile(path, data); err != nil {
		fmt.Println(ui.RenderFailure("Area generation", err, []string{
			"Check that the output directory is writable",
			"Pass --out to choose a different directory",
		}))
		return err
	}
	logging.LogOutput(path, len(data))

	// Remember the run; history failures never fail the generation
	if regErr == nil {
		reg.RecordGeneration(doc.Slug, doc.AreaName, string(spec.Type),
			deviceNames(spec), spec.ApplianceType, path, entities)
		if saveErr := reg.Save(); saveErr != nil {
			logging.Warn("failed to record generation history: " + saveErr.Error())
		}
	}

	fmt.Println(ui.RenderSuccess("Area configuration written", []ui.Param{
		{Key: "Area", Value: doc.AreaName},
		{Key: "File", Value: path},
		{Key: "Entities", Value: fmt.Sprintf("%d", entities)},
		{Key: "Helpers", Value: fmt.Sprintf("%d", len(doc.InputNumbers)+len(doc.InputBooleans))},
	}))
	return nil
}

// troubleshootingFor maps known failure kinds to actionable hints
func troubleshootingFor(err error) []string {
	switch {
	case devices.IsGenerationError(err):
		return []string{
			"Bathroom fixtures need a humidity source: pass --humidity or --humidity-entity",
			"Run 'areacfg kinds' to check device kind spellings",
		}
	case area.IsValidationError(err):
		return []string{
			"Check the area name, type, and device kinds",
			"Run 'areacfg kinds' to list valid values",
		}
	case assemble.IsDuplicateIDError(err):
		return []string{
			"Two generators produced the same entity id",
			"Remove one of the conflicting device kinds and retry",
		}
	default:
		return nil
	}
}

// countEntities totals template entities and fans in a document
func countEntities(doc *assemble.Document) int {
	n := 0
	for _, frag := range doc.Templates {
		n += len(frag.Entries) + len(frag.Fans)
	}
	return n
}

// deviceNames returns the selected device kinds as plain strings
func deviceNames(spec *area.Spec) []string {
	names := make([]string, len(spec.Devices))
	for i, k := range spec.Devices {
		names[i] = string(k)
	}
	return names
}
