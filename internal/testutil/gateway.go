package testutil

import (
	"context"
	"sync"
)

// StubGateway is a scriptable ai.Gateway. Responses are consumed in
// order; when the queue is empty the fixed Response/Err pair is used.
type StubGateway struct {
	mu        sync.Mutex
	queue     []stubReply
	Response  string
	Err       error
	callCount int
	prompts   []string
}

type stubReply struct {
	text string
	err  error
}

func NewStubGateway() *StubGateway {
	return &StubGateway{Response: "Great job"}
}

// Enqueue scripts the next reply.
func (g *StubGateway) Enqueue(text string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queue = append(g.queue, stubReply{text: text, err: err})
}

// Fail makes every unscripted call return err.
func (g *StubGateway) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Err = err
}

func (g *StubGateway) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.callCount++
	g.prompts = append(g.prompts, prompt)

	if len(g.queue) > 0 {
		reply := g.queue[0]
		g.queue = g.queue[1:]
		return reply.text, reply.err
	}
	return g.Response, g.Err
}

// Calls reports how many times Generate ran.
func (g *StubGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.callCount
}

// Prompts returns every prompt seen so far.
func (g *StubGateway) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}
