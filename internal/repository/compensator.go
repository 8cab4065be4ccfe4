package repository

import (
	"context"
	"log"
)

// Compensator collects undo actions for a multi-key write that the store
// cannot apply atomically. Register an undo after each successful write,
// Commit once every write has landed, and defer RollbackUnlessCommitted so
// a failure part way through undoes what was already written, newest first.
//
// Rollback is best effort: undo failures are logged and the remaining
// actions still run.
type Compensator struct {
	op        string
	undo      []func(ctx context.Context) error
	committed bool
}

func NewCompensator(op string) *Compensator {
	return &Compensator{op: op}
}

func (c *Compensator) Add(fn func(ctx context.Context) error) {
	c.undo = append(c.undo, fn)
}

func (c *Compensator) Commit() {
	c.committed = true
}

func (c *Compensator) RollbackUnlessCommitted(ctx context.Context) {
	if c.committed {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for i := len(c.undo) - 1; i >= 0; i-- {
		if err := c.undo[i](ctx); err != nil {
			log.Printf("ERROR [%s] compensation step %d failed: %v", c.op, i, err)
		}
	}
	c.undo = nil
}
