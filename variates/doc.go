// Package variates fills caller-owned buffers with i.i.d. random draws in parallel.
//
// Fill partitions the rows of a *matrix.Dense into fixed-size chunks. Chunk k
// always draws from child k of the supplied seed pool, whatever the number of
// workers, so a buffer filled with 1 thread is bit-identical to one filled with
// 64. Workers write disjoint row windows of the same buffer and are joined
// before Fill returns; nothing is retained afterwards.
//
// Supported distributions form a closed set:
//
//	Uniform{Min, Max}        cell-wise U[Min, Max)
//	Beta{Alpha, Beta}        cell-wise Beta
//	Dirichlet{Alpha}         row-wise Dir(Alpha), len(Alpha) == buffer width
//	Choice{Values, Weights}  cell-wise weighted resample (discrete / empirical)
//
// Parameters are validated before any goroutine starts; failures are
// *market.ConfigError values naming the distribution.
package variates
