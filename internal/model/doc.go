// Package model holds the program-agnostic job and result data the codec
// reads and writes: the calculation kind, the molecular structure, the
// method/basis model, the job description handed to the encoder, and the
// per-step records produced when an optimization trajectory is decoded.
//
// These types are plain data. Nothing here knows about any engine.
package model
