// Package devices generates template entities for each supported device
// kind in an area.
//
// One generator exists per area.DeviceKind. Each is a pure function from an
// immutable *area.Spec to a slice of entity.ConfigFragments: no I/O, no
// shared state, deterministic output for identical input. Dispatch goes
// through a registry populated at init; adding a device kind means adding a
// constant in the area package, a generator file here, and one registry
// entry.
//
// # Prerequisites
//
// Generators validate their required context instead of silently emitting a
// partial configuration. A bathroom fixture without any humidity source, for
// example, fails with a *GenerationError naming the kind, and the whole run
// aborts before anything is written.
package devices
