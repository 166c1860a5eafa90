// Package registry provides the dispatch table of the codec.
//
// The Registry maps an engine name to the layout of the files the engine
// writes and to its input encoder, and maps (engine, file kind, calculation
// type) to the extractors that pull values out of those files. Each extractor
// entry owns exactly one target path in the decoded result.
//
// During codec construction every engine Module registers itself, the
// registry is validated to ensure that entries and engine layouts agree, and
// the registry is sealed. From then on it is read-only and shared by all
// concurrent decode and encode calls.
package registry
