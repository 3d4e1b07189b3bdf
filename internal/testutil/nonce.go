package testutil

import "sync"

// FixedNonces returns predetermined salty nonces for testing.
//
// This enables golden comparison of ECR and OOR credentials, whose digest
// depends on the nonce.
//
// Thread-safety: FixedNonces is safe for concurrent use via internal mutex.
type FixedNonces struct {
	mu     sync.Mutex
	nonces []string
	idx    int
}

// NewFixedNonces creates a source that returns nonces in order.
//
// Example:
//
//	src := NewFixedNonces("0ABhY2RlZmdoaWprbG1ub3Bx", "0ABhY2RlZmdoaWprbG1ub3By")
//	src.Next() // "0ABhY2RlZmdoaWprbG1ub3Bx", nil
//	src.Next() // "0ABhY2RlZmdoaWprbG1ub3By", nil
//	src.Next() // panic: all nonces exhausted
func NewFixedNonces(nonces ...string) *FixedNonces {
	return &FixedNonces{nonces: nonces}
}

// Next returns the next predetermined nonce. Its signature matches
// credential.NewNonce so it can stand in for it.
//
// Panics if all nonces have been consumed, which means the test built more
// credentials than it planned for.
func (g *FixedNonces) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.nonces) {
		panic("FixedNonces: all nonces exhausted")
	}
	n := g.nonces[g.idx]
	g.idx++
	return n, nil
}

// Remaining reports how many nonces have not been handed out.
func (g *FixedNonces) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nonces) - g.idx
}
