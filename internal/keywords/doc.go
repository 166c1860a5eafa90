// Package keywords models the free-form engine options attached to a job and
// the key/value line grammar the encoders render them into.
//
// A keyword value is a small recursive variant: a string, integer, float or
// boolean scalar, or a block holding an ordered map of further keywords.
// Keyword maps keep insertion order, because engines that accept named blocks
// are sensitive to the order blocks appear in, and compare names without
// regard to case while preserving the caller's casing.
package keywords
