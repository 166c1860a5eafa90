// Package qccodec translates between engine-independent job descriptions and
// the native text formats of quantum-chemistry engines.
//
// Decode reads what an engine produced (its stdout text and, for engines
// that write several files, its result directory) into a Result addressed
// by target paths such as "computed.energy". Encode renders a JobSpec as the
// engine's input file plus a separate xyz geometry file.
//
// Both directions run synchronously and keep no state between calls, so a
// Codec may be shared by any number of goroutines.
package qccodec
