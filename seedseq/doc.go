// Package seedseq provides reproducible entropy pools for parallel random streams.
//
// A SeedSequence is an immutable pool of entropy words plus a spawn key. Spawn(n)
// derives n children whose spawn keys extend the parent's key, so every child is
// a pure function of (entropy, key path): the same pool always yields the same
// children, in any order, from any goroutine. Streams built from distinct
// children are statistically independent because each child's 64-bit state is
// a BLAKE3 digest of its full key path.
//
// There is no package-level generator. Every function that draws random numbers
// takes a SeedSequence (or a Source built from one) explicitly.
//
//	seqs := seedseq.DefaultList(3)           // fixed, reproducible pools
//	kids := seqs[0].Spawn(4)                 // one child per worker
//	r := rand.New(kids[2].NewSource())       // golang.org/x/exp/rand
//
// Bit generators: PCG (default, golang.org/x/exp/rand.PCGSource) or MT19937
// (gonum.org/v1/gonum/mathext/prng).
package seedseq
