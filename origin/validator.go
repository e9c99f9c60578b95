package origin

import (
	"sort"
	"strings"
	"sync"

	"github.com/aura-mf/bridge/core"
)

// Validator answers allow/deny for sender origins against an exact-match
// allow-list. Substring or prefix matching is spoofable in both directions
// and is deliberately not offered.
type Validator struct {
	mu      sync.RWMutex
	allowed map[string]struct{}
}

func NewValidator(origins []string) *Validator {
	v := &Validator{allowed: map[string]struct{}{}}
	v.Replace(origins)
	return v
}

func (v *Validator) Allow(origin string) bool {
	if v == nil {
		return false
	}
	normalized := Normalize(origin)
	if normalized == "" {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.allowed[normalized]
	return ok
}

// Replace swaps the entire allow-list. The set is never mutated in place;
// runtime changes only happen through an explicit configuration update.
func (v *Validator) Replace(origins []string) {
	if v == nil {
		return
	}
	next := make(map[string]struct{}, len(origins))
	for _, entry := range origins {
		normalized := Normalize(entry)
		if normalized == "" {
			continue
		}
		next[normalized] = struct{}{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.allowed = next
}

func (v *Validator) Origins() []string {
	if v == nil {
		return []string{}
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, 0, len(v.allowed))
	for entry := range v.allowed {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

// Normalize lowercases the origin and strips surrounding whitespace and any
// trailing slash, so "https://Example.com/" and "https://example.com" compare
// equal. It does no parsing beyond that; a normalized origin either matches
// an allow-list entry exactly or it is denied.
func Normalize(origin string) string {
	trimmed := strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimRight(trimmed, "/")
}

var _ core.OriginValidator = (*Validator)(nil)
