// SPDX-License-Identifier: MIT
// Package seedseq - entropy pools, spawning and source construction.
//
// Goals:
//   - Determinism: same entropy and key path ⇒ identical streams across platforms.
//   - Encapsulation: no time-based sources hidden anywhere; OS entropy only in Fresh.
//   - Concurrency: a *SeedSequence is read-only after construction and safe to
//     share; the Sources it builds are NOT goroutine-safe (one per worker).
package seedseq

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext/prng"
)

// poolSize is the number of 32-bit entropy words drawn for fresh pools.
const poolSize = 8

// BitGenerator selects the core generator a SeedSequence seeds.
type BitGenerator int

const (
	// PCG is the 128-bit permuted congruential generator from golang.org/x/exp/rand.
	PCG BitGenerator = iota
	// MT19937 is the Mersenne Twister from gonum's mathext/prng.
	MT19937
)

// String returns the generator name.
func (g BitGenerator) String() string {
	switch g {
	case PCG:
		return "PCG"
	case MT19937:
		return "MT19937"
	default:
		return fmt.Sprintf("BitGenerator(%d)", int(g))
	}
}

var (
	// ErrEmptyEntropy indicates a pool built from zero entropy words.
	ErrEmptyEntropy = errors.New("seedseq: entropy must be non-empty")

	// ErrUnknownGenerator indicates an out-of-range BitGenerator.
	ErrUnknownGenerator = errors.New("seedseq: unknown bit generator")
)

// SeedSequence is an immutable entropy pool with a spawn key.
// Children differ from their parent only in the spawn key.
type SeedSequence struct {
	entropy  []uint32
	spawnKey []uint32
	gen      BitGenerator
}

// FromEntropy builds a pool from explicit entropy words.
// Errors: ErrEmptyEntropy when words is empty.
// Complexity: O(len(words)).
func FromEntropy(words ...uint32) (*SeedSequence, error) {
	if len(words) == 0 {
		return nil, ErrEmptyEntropy
	}

	return &SeedSequence{entropy: append([]uint32(nil), words...)}, nil
}

// New expands a single integer seed into a full pool with the SplitMix64
// finalizer, so nearby integer seeds still produce unrelated pools.
// Complexity: O(1).
func New(seed uint64) *SeedSequence {
	words := make([]uint32, poolSize)
	x := seed
	for i := 0; i < poolSize; i += 2 {
		x = splitMix(x, uint64(i))
		words[i] = uint32(x)
		words[i+1] = uint32(x >> 32)
	}

	return &SeedSequence{entropy: words}
}

// Fresh builds a pool from operating-system entropy. Results are not reproducible
// unless the caller records Entropy().
// Errors: the crypto/rand read error, if any.
func Fresh() (*SeedSequence, error) {
	var buf [4 * poolSize]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("seedseq: read OS entropy: %w", err)
	}
	words := make([]uint32, poolSize)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}

	return &SeedSequence{entropy: words}, nil
}

// defaultEntropy holds fixed entropy words for DefaultList. Index k of the list
// uses word defaultEntropy[k%len] mixed with k, so lists of any length are stable
// prefixes of each other.
var defaultEntropy = [...]uint32{
	0x8c6a1f21, 0x3b0d6e55, 0xd17c42a9, 0x6f93b0e7,
	0x0a4e95c3, 0xe2581d7b, 0x57c3a90f, 0xb9f02e61,
}

// DefaultList returns n reproducible pools for tests and examples.
// DefaultList(k) is a prefix of DefaultList(k+1).
// Complexity: O(n).
func DefaultList(n int) []*SeedSequence {
	out := make([]*SeedSequence, n)
	for k := 0; k < n; k++ {
		out[k] = &SeedSequence{entropy: []uint32{
			defaultEntropy[k%len(defaultEntropy)],
			uint32(k),
			0x5eed5eed,
		}}
	}

	return out
}

// WithGenerator returns a copy of s that seeds gen instead. Children inherit it.
// Panics on an unknown generator (programmer error, like option constructors).
func (s *SeedSequence) WithGenerator(gen BitGenerator) *SeedSequence {
	if gen != PCG && gen != MT19937 {
		panic(fmt.Sprintf("seedseq: WithGenerator(%d): %v", int(gen), ErrUnknownGenerator))
	}
	cp := *s
	cp.gen = gen

	return &cp
}

// Generator reports the bit generator this pool seeds.
func (s *SeedSequence) Generator() BitGenerator { return s.gen }

// Entropy returns a copy of the entropy words.
func (s *SeedSequence) Entropy() []uint32 { return append([]uint32(nil), s.entropy...) }

// SpawnKey returns a copy of the spawn key path.
func (s *SeedSequence) SpawnKey() []uint32 { return append([]uint32(nil), s.spawnKey...) }

// Child returns the i-th child pool. Child(i) equals Spawn(n)[i] for any n > i.
// Complexity: O(len(key)).
func (s *SeedSequence) Child(i int) *SeedSequence {
	key := make([]uint32, len(s.spawnKey)+1)
	copy(key, s.spawnKey)
	key[len(s.spawnKey)] = uint32(i)

	return &SeedSequence{entropy: s.entropy, spawnKey: key, gen: s.gen}
}

// Spawn returns n independent child pools. Spawn is pure: it never changes s.
// Complexity: O(n*len(key)).
func (s *SeedSequence) Spawn(n int) []*SeedSequence {
	if n <= 0 {
		return nil
	}
	out := make([]*SeedSequence, n)
	for i := range out {
		out[i] = s.Child(i)
	}

	return out
}

// State returns the 64-bit generator state derived from entropy and key path.
// The digest covers the word counts too, so (entropy=[a], key=[b]) and
// (entropy=[a,b], key=[]) never collide.
// Complexity: O(len(entropy)+len(key)).
func (s *SeedSequence) State() uint64 {
	sum := s.digest()

	return binary.LittleEndian.Uint64(sum[:8])
}

// digest is the BLAKE3 hash of the word counts, entropy and spawn key.
func (s *SeedSequence) digest() [32]byte {
	h := blake3.New()
	var w [4]byte
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(w[:], v)
		_, _ = h.Write(w[:])
	}
	put(uint32(len(s.entropy)))
	for _, v := range s.entropy {
		put(v)
	}
	put(uint32(len(s.spawnKey)))
	for _, v := range s.spawnKey {
		put(v)
	}
	var sum [32]byte
	h.Sum(sum[:0])

	return sum
}

// mtKeys is the number of 32-bit keys fed to MT19937.SeedFromKeys.
const mtKeys = 8

// NewSource builds a freshly seeded bit generator for this pool.
//   - PCG is seeded with State().
//   - MT19937 is seeded from all 256 digest bits via SeedFromKeys; its
//     Seed(uint64) keeps only the low 32 bits, which would let distinct
//     children share a stream.
//
// The returned Source is not safe for concurrent use.
// Complexity: O(1) for PCG, O(624) for MT19937.
func (s *SeedSequence) NewSource() xrand.Source {
	switch s.gen {
	case MT19937:
		sum := s.digest()
		keys := make([]uint32, mtKeys)
		for i := range keys {
			keys[i] = binary.LittleEndian.Uint32(sum[4*i:])
		}
		src := prng.NewMT19937()
		src.SeedFromKeys(keys)

		return src
	default:
		src := &xrand.PCGSource{}
		src.Seed(s.State())

		return src
	}
}

// String renders the pool for logs: entropy, key path and generator.
func (s *SeedSequence) String() string {
	return fmt.Sprintf("SeedSequence{entropy=%v key=%v gen=%s}", s.entropy, s.spawnKey, s.gen)
}

// splitMix mixes a parent value and a stream identifier into a new 64-bit value.
// SplitMix64 finalizer constants; small input changes diffuse across all bits.
// Complexity: O(1).
func splitMix(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}
