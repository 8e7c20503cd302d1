package report

import "sync"

// generations hands out a monotonically increasing sequence number per key.
// It replaces request cancellation: a response is applied only while its
// sequence is still the newest issued for that key.
type generations struct {
	mu   sync.Mutex
	last map[string]uint64
}

func (g *generations) begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		g.last = make(map[string]uint64)
	}
	g.last[key]++
	return g.last[key]
}

func (g *generations) current(key string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last[key] == seq
}
