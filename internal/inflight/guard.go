// Package inflight tracks which controls have a request outstanding, so a
// second click on the same control is rejected until the first settles.
package inflight

import "sync"

type Guard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// Acquire marks key as busy. ok is false when key is already busy; otherwise
// release must be called once the request settles.
func (g *Guard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.keys == nil {
		g.keys = make(map[string]struct{})
	}
	if _, busy := g.keys[key]; busy {
		return nil, false
	}
	g.keys[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, true
}
