// Package tui implements the terminal user interface for the area
// configuration wizard.
//
// This package provides an interactive, full-screen TUI for describing a
// room and generating its template-entity configuration. Built using the
// Bubble Tea framework, it follows the Elm architecture with immutable state
// updates and a clean Model-Update-View pattern.
//
// # Architecture
//
// The wizard is a linear sequence of steps inside one model:
//   - Name: Free-text area name with live slug preview
//   - Type: Room type selection (tunes comfort thresholds and presets)
//   - Devices: Multi-select checklist; selection order drives output order
//   - Appliance: Refinement shown only when a major appliance was selected
//   - Features: Checklist of signal sources, preselected from defaults
//   - Humidity source: Entity prompt shown only when bathroom fixtures were
//     selected without a humidity sensor
//   - Review: Summary with confirm-to-generate
//
// All steps use a unified container pattern (RenderApplicationContainer) for
// consistent layout with header, content area, and context-sensitive footer.
//
// # Framework Components
//
// The TUI leverages Bubble Tea framework components throughout:
//   - bubbles/textinput: Text entry fields with validation
//   - bubbles/help: Context-aware help system
//   - bubbles/key: Declarative key bindings
//   - lipgloss: Styling and layout
//
// # Usage Example
//
//	spec, confirmed, err := tui.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !confirmed {
//	    return // user backed out, generate nothing
//	}
//
// # Key Bindings
//
// Each step shares one set of bindings:
//   - ↑/↓ or k/j: move the cursor
//   - space: toggle a checklist entry
//   - enter: accept the step and continue
//   - esc: return to the previous step (quits from the first step)
//   - ctrl+c: quit without generating
//
// # State Management
//
// The TUI maintains immutable state with explicit updates:
//   - Models contain all state (no global variables)
//   - Update() returns new model + commands
//   - View() is pure function of model state
//
// # Error Handling
//
// Validation happens per step, so mistakes surface next to the field that
// caused them: an empty or unusable area name blocks the first step, and a
// missing humidity source blocks the prompt rather than failing generation
// later.
//
// # Thread Safety
//
// The Bubble Tea framework ensures thread safety through message passing.
// All model updates occur in a single goroutine, preventing race conditions.
package tui
