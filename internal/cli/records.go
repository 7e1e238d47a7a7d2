package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wellnest/internal/models"
)

const minIDPrefix = 4

// ShortID is the prefix shown in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ResolveRecord finds the record whose ID equals ref or uniquely starts with
// it. Prefixes shorter than four characters must match exactly.
func ResolveRecord[T models.Record](items []T, ref, kind string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	var match []T
	for _, it := range items {
		id := it.GetID()
		if id == ref {
			return it, nil
		}
		if len(ref) >= minIDPrefix && strings.HasPrefix(id, ref) {
			match = append(match, it)
		}
	}
	switch len(match) {
	case 0:
		return zero, fmt.Errorf("%s not found: %s", kind, ref)
	case 1:
		return match[0], nil
	}
	return zero, fmt.Errorf("ambiguous ID %q matches %d %s entries", ref, len(match), kind)
}
