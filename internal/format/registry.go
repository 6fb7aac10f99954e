package format

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/civicdata-il/protokol/internal/router"
)

// Registry maps municipality codes to formats and selects a format by
// signature match against the document head. Registration order decides
// precedence; the generic format is the fallback.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	formats  map[string]Format
	patterns map[string][]*regexp.Regexp
	generic  Format
}

// NewRegistry builds a registry with the built-in formats registered.
// The router is handed to each format for escalation; nil keeps formats
// pattern-only.
func NewRegistry(rt *router.Router) *Registry {
	r := &Registry{
		formats:  make(map[string]Format),
		patterns: make(map[string][]*regexp.Regexp),
		generic:  NewGenericFormat(rt),
	}
	r.Register(NewYehudFormat(rt))
	return r
}

// Register adds a municipality format. Later registrations with the same
// code replace the earlier one; detection keeps registration order.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := strings.ToLower(f.Code())
	if _, exists := r.formats[code]; !exists {
		r.order = append(r.order, code)
	}
	r.formats[code] = f

	compiled := make([]*regexp.Regexp, 0, len(f.SignaturePatterns()))
	for _, p := range f.SignaturePatterns() {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	r.patterns[code] = compiled
}

// Detect scans the document head (first 2000 runes) against each registered
// municipality's signatures, in registration order; first match wins,
// otherwise the generic fallback is returned.
func (r *Registry) Detect(text string) Format {
	if text == "" {
		return r.generic
	}

	head := text
	if runes := []rune(text); len(runes) > 2000 {
		head = string(runes[:2000])
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, code := range r.order {
		for _, re := range r.patterns[code] {
			if re.MatchString(head) {
				return r.formats[code]
			}
		}
	}
	return r.generic
}

// Get returns a format by municipality code
func (r *Registry) Get(code string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code = strings.ToLower(code)
	if code == "generic" {
		return r.generic, nil
	}
	if f, ok := r.formats[code]; ok {
		return f, nil
	}
	available := append(append([]string{}, r.order...), "generic")
	return nil, fmt.Errorf("unknown municipality code %q (available: %s)", code, strings.Join(available, ", "))
}

// List returns registered codes in registration order, generic last
func (r *Registry) List() []string {
	codes := make([]string, 0, len(r.order)+1)
	codes = append(codes, r.order...)
	return append(codes, "generic")
}
