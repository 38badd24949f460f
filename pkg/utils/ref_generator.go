package utils

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RefGenerator mints unique, sortable transaction reference codes.
// Format: TXN-{ULID}, e.g. TXN-01ARZ3NDEKTSV4RRFFQ69G5FAV.
type RefGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	prefix  string
}

func NewRefGenerator(prefix string) *RefGenerator {
	return &RefGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		prefix:  strings.ToUpper(prefix),
	}
}

// New returns the next reference code. Monotonic entropy keeps codes
// strictly increasing within one process.
func (g *RefGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	if g.prefix == "" {
		return id.String()
	}
	return g.prefix + "-" + id.String()
}

// Valid reports whether s could have been minted by this generator.
func (g *RefGenerator) Valid(s string) bool {
	return ValidRef(s, g.prefix)
}

// ValidRef reports whether s looks like a reference this generator mints.
func ValidRef(s, prefix string) bool {
	prefix = strings.ToUpper(prefix)
	if prefix != "" {
		if !strings.HasPrefix(s, prefix+"-") {
			return false
		}
		s = strings.TrimPrefix(s, prefix+"-")
	}
	if len(s) != 26 {
		return false
	}
	_, err := ulid.Parse(s)
	return err == nil
}
