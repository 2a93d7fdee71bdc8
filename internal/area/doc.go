// Package area defines the immutable description of a physical room that
// drives configuration generation.
//
// An area is a named space (a study, a kitchen) together with the smart
// devices present in it and a set of feature flags describing which signal
// sources exist (motion sensors, humidity sensors, climate control, and so
// on). The CLI and the interactive wizard both produce an *area.Spec; every
// generator consumes it read-only.
//
// # Device Kinds
//
// DeviceKind is a closed set. Dispatch to the matching generator happens
// through the registry in the devices package; adding a new kind means adding
// a constant here and registering a generator there, nothing else.
//
// # Validation
//
// Spec.Validate checks the spec before any generation runs: non-empty name,
// known area type, known device kinds, no duplicate device selections.
// Failures are reported as *ValidationError.
package area
