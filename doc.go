// Package mergesim generates synthetic market samples for merger simulation:
// market shares, prices, diversion ratios and price-cost margins for a pair of
// merging firms, drawn in parallel from reproducible seed sequences.
//
// 🚀 What is in the box?
//
//   - Seed pools: entropy hashing, child spawning, PCG or MT19937 sources
//   - Parallel variate filler: chunked, thread-count-invariant draws
//   - Share generators: uniform simplex and (stratified) Dirichlet shares
//   - Prices and filing tests: symmetric, correlated or independent prices
//   - Diversion ratios: proportional, inside-out and outside-in recapture
//   - Margins: uniform, beta, bounded beta, empirical; i.i.d., symmetric or MNL
//   - Assembler: oversample, filter, truncate, HHI statistics
//
// Packages:
//
//	seedseq/  : SeedSequence pools and random sources
//	matrix/   : row-major float64 buffer-of-draws, masks and reductions
//	variates/ : Distribution variants and the parallel Fill
//	market/   : enums, SampleSpec, validation and sentinel errors
//	shares/   : share arenas, firm counts, outside-good probabilities
//	prices/   : price columns and filing-test masks
//	diversion/: diversion-ratio matrices and their ordering check
//	margins/  : margin distributions and the MNL first-order condition
//	mktsample/: Generate: the end-to-end pipeline
//	cmd/mergesim: YAML-driven command line
//
// Quick example:
//
//	spec := market.DefaultSampleSpec()
//	spec.SampleSize = 100_000
//	ms, err := mktsample.Generate(spec, mktsample.WithSeeds(seedseq.DefaultList(4)...))
//
//	go install github.com/katalvlaran/mergesim/cmd/mergesim@latest
package mergesim
