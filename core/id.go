package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// idSource generates the random component of new ids. Swappable so
// tests can produce deterministic ids.
var idSource = func() string {
	return uuid.NewString()[:8]
}

// NewID returns a fresh element id. Ids combine a timestamp with a
// random component so they are never reused within a session; existing
// ids are never regenerated.
func NewID(prefix string) string {
	if prefix == "" {
		prefix = "el"
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), idSource())
}

// SetIDSource replaces the random id component generator and returns a
// restore function. Intended for tests.
func SetIDSource(src func() string) func() {
	prev := idSource
	idSource = src
	return func() { idSource = prev }
}
