package engine

import (
	"fmt"
	"sort"
	"strings"

	"synth-pump/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cespare/xxhash/v2"
)

// Source is the random source a ValueGenerator draws from. Number returns a
// uniformly distributed int in [min, max]. *gofakeit.Faker satisfies it.
type Source interface {
	Number(min, max int) int
}

var _ Source = (*gofakeit.Faker)(nil)

// NewSource returns an independent random source. Seed 0 picks a random seed.
func NewSource(seed int64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

// DeriveSeed gives every (table, field) pair of a seeded run its own stable seed
// so generators never share random state. A zero run seed stays zero (unseeded).
func DeriveSeed(runSeed int64, table, field string) int64 {
	if runSeed == 0 {
		return 0
	}
	seed := int64(xxhash.Sum64String(fmt.Sprintf("%d\x00%s\x00%s", runSeed, table, field)))
	if seed == 0 {
		seed = runSeed
	}
	return seed
}

// Strategy is how a ValueGenerator produces values. It is fixed at construction.
type Strategy int

const (
	WeightedSample Strategy = iota
	PrimaryKeyCycle
	TypeRandom
)

func (s Strategy) String() string {
	switch s {
	case WeightedSample:
		return "weighted-sample"
	case PrimaryKeyCycle:
		return "primary-key-cycle"
	case TypeRandom:
		return "type-random"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

type valueSource interface {
	next() string
}

// ValueGenerator produces values for a single field.
type ValueGenerator struct {
	strategy Strategy
	src      valueSource
}

// GeneratorOptions are the run-level switches that affect a single generator.
type GeneratorOptions struct {
	// ForceKey cycles through the observed values in order instead of sampling.
	ForceKey bool
	// Uniform weighs every distinct value 1 instead of its observed frequency.
	Uniform bool
}

// NewValueGenerator selects the strategy for the field: a forced key always
// cycles, observed values are sampled, and fields without any observed values
// fall back to random values shaped by their type and max length.
func NewValueGenerator(field *schema.Field, opts GeneratorOptions, rnd Source) *ValueGenerator {
	switch {
	case opts.ForceKey:
		return &ValueGenerator{
			strategy: PrimaryKeyCycle,
			src:      &keyCycle{values: field.ValueCounts.Values()},
		}
	case !field.ValueCounts.IsEmpty():
		return &ValueGenerator{
			strategy: WeightedSample,
			src:      newWeightedSample(field, opts.Uniform, rnd),
		}
	default:
		return &ValueGenerator{
			strategy: TypeRandom,
			src:      &typeRandom{kind: field.Kind(), length: field.MaxLength, rnd: rnd},
		}
	}
}

func (g *ValueGenerator) Strategy() Strategy {
	return g.strategy
}

// Generate returns the next value for the field.
func (g *ValueGenerator) Generate() string {
	return g.src.next()
}

type weightedSample struct {
	values     []string
	cumulative []int
	total      int
	kind       schema.TypeKind
	rnd        Source
}

func newWeightedSample(field *schema.Field, uniform bool, rnd Source) *weightedSample {
	w := &weightedSample{
		values:     make([]string, field.ValueCounts.Len()),
		cumulative: make([]int, field.ValueCounts.Len()),
		kind:       field.Kind(),
		rnd:        rnd,
	}
	running := 0
	for i, vc := range field.ValueCounts {
		w.values[i] = vc.Value
		if uniform {
			running++
		} else {
			running += vc.Frequency
		}
		w.cumulative[i] = running
	}
	w.total = running
	return w
}

func (w *weightedSample) next() string {
	i := len(w.values) - 1
	if w.total > 0 {
		r := w.rnd.Number(0, w.total-1)
		// first bucket whose cumulative weight exceeds r
		i = sort.Search(len(w.cumulative), func(j int) bool { return w.cumulative[j] > r })
	}
	value := w.values[i]
	if w.kind != schema.TypeChar && strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

// keyCycle walks the distinct values in order and wraps around. Values repeat
// once more rows are requested than there are distinct values.
type keyCycle struct {
	values []string
	cursor int
}

func (k *keyCycle) next() string {
	if len(k.values) == 0 {
		return ""
	}
	value := k.values[k.cursor]
	k.cursor++
	if k.cursor >= len(k.values) {
		k.cursor = 0
	}
	return value
}

type typeRandom struct {
	kind   schema.TypeKind
	length int
	rnd    Source
}

func (t *typeRandom) next() string {
	if t.length <= 0 {
		return ""
	}
	switch t.kind {
	case schema.TypeChar:
		return t.fill('A', 26)
	case schema.TypeInteger:
		return t.fill('0', 10)
	default:
		// date, real, empty and unrecognized types have no generator yet
		return ""
	}
}

func (t *typeRandom) fill(base byte, n int) string {
	buf := make([]byte, t.length)
	for i := range buf {
		buf[i] = base + byte(t.rnd.Number(0, n-1))
	}
	return string(buf)
}
