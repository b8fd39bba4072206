package costschedule

import (
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const fetchTimeout = 2 * time.Second

// Registry serves reference schedules, optionally refreshed from a remote
// price list. Remote schedules are cached for the life of the registry and
// any fetch failure falls back to the embedded schedule.
type Registry struct {
	url    string
	client *fasthttp.Client
	cache  sync.Map
}

// NewRegistry returns a registry backed by url. An empty url serves only the
// embedded schedules.
func NewRegistry(url string) *Registry {
	r := &Registry{url: url}
	if url != "" {
		r.client = &fasthttp.Client{
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         fetchTimeout,
			WriteTimeout:        fetchTimeout,
		}
	}
	return r
}

// Get returns the named schedule. ok is false only for unknown names.
func (r *Registry) Get(name string) (Schedule, bool) {
	fallback, ok := Builtin(name)
	if !ok {
		return Schedule{}, false
	}
	if r == nil || r.url == "" {
		return fallback, true
	}

	if s, ok := r.cache.Load(name); ok {
		return s.(Schedule).clone(), true
	}

	s, err := r.fetch(name)
	if err != nil {
		return fallback, true
	}
	r.cache.Store(name, s)
	return s.clone(), true
}

// All returns every schedule keyed by name, fetching concurrently.
func (r *Registry) All() map[string]Schedule {
	names := Names()
	result := make(map[string]Schedule, len(names))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			s, _ := r.Get(name)
			mu.Lock()
			result[name] = s
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	return result
}

func (r *Registry) fetch(name string) (Schedule, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url + "/schedules/" + name)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := r.client.DoTimeout(req, resp, fetchTimeout); err != nil {
		return Schedule{}, fmt.Errorf("fetch schedule %s: %w", name, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return Schedule{}, fmt.Errorf("fetch schedule %s: status %d", name, resp.StatusCode())
	}

	var s Schedule
	if err := json.Unmarshal(resp.Body(), &s); err != nil {
		return Schedule{}, fmt.Errorf("decode schedule %s: %w", name, err)
	}
	if len(s.Items) == 0 {
		return Schedule{}, fmt.Errorf("schedule %s has no items", name)
	}
	s.Name = name
	if s.Title == "" {
		if b, ok := Builtin(name); ok {
			s.Title = b.Title
		}
	}
	return s, nil
}
