// Package seeding owns the random number sources shared by beer commands.
//
// Sources start from runtime entropy, so two runs draw different values
// unless SeedAll is called. The dispatcher only calls SeedAll for a
// non-negative --seed; an unseeded run being non-deterministic is the
// intended default.
package seeding

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"golang.org/x/xerrors"
)

// Names of the built-in sources.
const (
	General = "general"
	Array   = "array"
)

// pcgStream is the fixed PCG increment so a seed fully determines the stream.
const pcgStream = 0x9e3779b97f4a7c15

// Seeder seeds every random source of the process from one integer.
type Seeder interface {
	SeedAll(seed int64)
}

// Source is a random number generator that can be reseeded.
type Source interface {
	Seed(seed uint64)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(seed uint64)

func (f SourceFunc) Seed(seed uint64) { f(seed) }

type namedSource struct {
	name string
	src  Source
}

// Sources is the set of random sources used by commands.
// The *rand.Rand values are not safe for concurrent use; commands that
// sample from several goroutines must derive their own generators.
type Sources struct {
	mu      sync.Mutex
	pcg     *rand.PCG
	chacha  *rand.ChaCha8
	general *rand.Rand
	array   *rand.Rand
	sources []namedSource
}

// Default is the process-wide set of sources.
var Default = New()

// New returns sources seeded from runtime entropy.
func New() *Sources {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], rand.Uint64())
	}

	s := &Sources{
		pcg:    rand.NewPCG(rand.Uint64(), rand.Uint64()),
		chacha: rand.NewChaCha8(key),
	}
	s.general = rand.New(s.pcg)
	s.array = rand.New(s.chacha)
	s.sources = []namedSource{
		{name: General, src: SourceFunc(func(seed uint64) { s.pcg.Seed(seed, pcgStream) })},
		{name: Array, src: SourceFunc(func(seed uint64) { s.chacha.Seed(chachaKey(seed)) })},
	}
	return s
}

func chachaKey(seed uint64) [32]byte {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return key
}

// General returns the general purpose generator.
func (s *Sources) General() *rand.Rand {
	return s.general
}

// Array returns the generator used for sampling numeric arrays.
func (s *Sources) Array() *rand.Rand {
	return s.array
}

// Register adds a source that SeedAll will reseed, after the sources
// registered before it.
func (s *Sources) Register(name string, src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src == nil {
		return xerrors.Errorf("source %q is nil", name)
	}
	for _, ns := range s.sources {
		if ns.name == name {
			return xerrors.Errorf("source %q already registered", name)
		}
	}
	s.sources = append(s.sources, namedSource{name: name, src: src})
	return nil
}

// Names returns the source names in seeding order.
func (s *Sources) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.sources))
	for _, ns := range s.sources {
		names = append(names, ns.name)
	}
	return names
}

// SeedAll reseeds every source with seed.
// Any value is passed through; callers decide what "unseeded" means.
func (s *Sources) SeedAll(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ns := range s.sources {
		ns.src.Seed(uint64(seed))
	}
}
