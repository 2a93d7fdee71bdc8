// Package generators builds the cross-cutting configuration for an area:
// occupancy confidence, power monitoring, climate comfort, and the
// input_number/input_boolean helpers the generated templates reference.
//
// Unlike the per-device generators in the devices package, these aggregate
// signals across every device selected for the area. They are still pure
// functions over the immutable area spec; the occupancy score in particular
// is a commutative weighted sum, so signal order never changes the result.
package generators
