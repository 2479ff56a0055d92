package session

import "sync"

// Registry keys live engines by session id. Engines hold running timers, so
// they stay process-local; abandoned sessions are removed and their countdown
// cancelled.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]*Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]*Engine)}
}

func (r *Registry) Put(e *Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[e.ID()] = e
}

func (r *Registry) Get(id string) (*Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[id]
	return e, ok
}

// Remove drops the engine and cancels its countdown.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.engines[id]
	delete(r.engines, id)
	r.mu.Unlock()
	if ok {
		e.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}
