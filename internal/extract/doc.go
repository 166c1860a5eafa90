// Package extract holds the numerically delicate parsers shared by engines:
// multi-block gradient tables, Hessian matrices printed as indexed rows over
// fixed-width column groups, Hessian matrices stored in delimited block files,
// and the assembly of optimization trajectories from per-step structures,
// energies and gradients.
//
// Engines supply the patterns; this package owns the block structure.
package extract
