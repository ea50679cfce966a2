package scanner

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"ContentCurator/internal/domain"
)

// Feed is one listing page a scanner reads stories from.
type Feed struct {
	Name string
	URL  string
}

// Request carries the per-site settings for one discovery pass.
type Request struct {
	SiteName string
	Feeds    []Feed
	// Limit caps the number of candidates taken from each feed; zero means the
	// scanner's default.
	Limit   int
	Options map[string]string
}

// Scanner discovers candidate items on one kind of site.
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.CandidateItem, error)
}

// Registry maps scanner names used in config to implementations. It is safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	scanners map[string]Scanner
}

func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds s under s.Name(), replacing any previous entry.
func (r *Registry) Register(s Scanner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[s.Name()] = s
}

// Resolve looks a scanner up by name.
func (r *Registry) Resolve(name string) (Scanner, error) {
	r.mu.RLock()
	s, ok := r.scanners[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("scanner %s is not registered (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return s, nil
}

// Names lists registered scanner names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.scanners))
	for name := range r.scanners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
