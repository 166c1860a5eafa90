// internal/target/doc.go

/*
Package target provides a structured representation of the locations inside a
decoded result that extractors write to, based on the canonical format `path`.

The format is a dot-separated sequence of segment names,
e.g., `computed.energy` or `provenance.program_version`.

This package enforces the path schema and centralizes all formatting and
parsing logic, so the registry and the result collector agree on what a
target is.
*/
package target
