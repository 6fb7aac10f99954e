package router

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/civicdata-il/protokol/internal/model"
)

// Router escalates an extraction request through its provider chain until a
// provider's result clears that provider's threshold, remembering the best
// attempt along the way. Construct once and share; availability caches and
// the rate counter are synchronized internally.
type Router struct {
	cfg     model.RouterConfig
	pattern Provider
	local   Provider
	cloud   Provider
	results *gocache.Cache
}

// New builds a router with the real provider chain
func New(cfg model.RouterConfig) *Router {
	return NewWithProviders(cfg, &PatternProvider{}, NewOllamaProvider(cfg), NewOpenAIProvider(cfg))
}

// NewWithProviders builds a router over explicit providers. Tests use this
// to substitute stubs.
func NewWithProviders(cfg model.RouterConfig, pattern, local, cloud Provider) *Router {
	return &Router{
		cfg:     cfg,
		pattern: pattern,
		local:   local,
		cloud:   cloud,
		results: gocache.New(15*time.Minute, 5*time.Minute),
	}
}

// Extract routes one request. minConfidence is the caller's acceptance bar
// for the cloud provider; pass 0 to use the configured default. The returned
// Result's Success flag reflects whether any provider produced usable data,
// independent of whether a threshold was met.
func (r *Router) Extract(ctx context.Context, text string, typ ExtractionType, minConfidence float64) Result {
	if minConfidence <= 0 {
		minConfidence = r.cfg.MinConfidence
	}

	key := cacheKey(text, typ)
	if cached, ok := r.results.Get(key); ok {
		return cached.(Result)
	}

	result := r.route(ctx, text, typ, minConfidence)
	r.results.Set(key, result, gocache.DefaultExpiration)
	return result
}

func (r *Router) route(ctx context.Context, text string, typ ExtractionType, minConfidence float64) Result {
	chain := []struct {
		provider  Provider
		enabled   bool
		threshold float64
	}{
		{r.pattern, true, r.cfg.PatternThreshold},
		{r.local, r.cfg.EnableLocal, r.cfg.LocalThreshold},
		{r.cloud, r.cfg.EnableCloud, minConfidence},
	}

	best := Result{Error: "no extraction attempted"}

	for _, entry := range chain {
		if !entry.enabled || !entry.provider.Available(ctx) {
			continue
		}

		result := entry.provider.Extract(ctx, text, typ)
		if result.GoodEnough(entry.threshold) {
			return result
		}
		if result.Success && result.Confidence > best.Confidence {
			best = result
		} else if !best.Success && result.Error != "" && best.Error == "no extraction attempted" {
			best.Error = result.Error
			best.Method = result.Method
		}
	}

	return best
}

// LocalAvailable reports whether the local model provider answered its probe
func (r *Router) LocalAvailable(ctx context.Context) bool {
	return r.local.Available(ctx)
}

// CloudAvailable reports whether the cloud provider is enabled, credentialed
// and reachable
func (r *Router) CloudAvailable(ctx context.Context) bool {
	return r.cfg.EnableCloud && r.cloud.Available(ctx)
}

func cacheKey(text string, typ ExtractionType) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%s:%x", typ, h.Sum64())
}
