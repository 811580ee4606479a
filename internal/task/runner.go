package task

import (
	"context"
	"sync"

	"voxelmesh/internal/engine"
)

// Runner computes derived data of type T on a background worker pool,
// keyed by the owning entity. Spawning for an owner that already has an
// in-flight task replaces (cancels) the old one; destroying the owner
// cancels and discards its task. Results are installed into the output
// store through the deferred command queue, never for a destroyed owner.
//
// The registry is only touched from the tick goroutine; workers see
// nothing but the job closure and its result channel.
type Runner[T any] struct {
	world  *engine.World
	out    *engine.Store[T]
	jobs   chan func()
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	tasks  map[engine.Entity]*handle[T]
}

type handle[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	result chan T
}

// NewRunner starts a pool of workers feeding results for the output store.
func NewRunner[T any](w *engine.World, out *engine.Store[T], workers, queueSize int) *Runner[T] {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner[T]{
		world:  w,
		out:    out,
		jobs:   make(chan func(), queueSize),
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[engine.Entity]*handle[T]),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	w.OnDespawn(func(e engine.Entity) { r.drop(e) })
	return r
}

func (r *Runner[T]) worker() {
	defer r.wg.Done()
	for {
		select {
		case job := <-r.jobs:
			job()
		case <-r.ctx.Done():
			return
		}
	}
}

// Spawn begins computing for the owner. The compute closure must already
// hold snapshots of everything it needs; it runs off the tick goroutine
// and should return early when its context is cancelled.
func (r *Runner[T]) Spawn(owner engine.Entity, compute func(ctx context.Context) T) {
	if old, ok := r.tasks[owner]; ok {
		old.cancel()
		delete(r.tasks, owner)
	}
	hctx, hcancel := context.WithCancel(r.ctx)
	h := &handle[T]{ctx: hctx, cancel: hcancel, result: make(chan T, 1)}
	r.tasks[owner] = h

	job := func() {
		if h.ctx.Err() != nil {
			return
		}
		h.result <- compute(h.ctx)
	}
	// A full queue blocks until a worker drains a slot, so the job count
	// stays bounded by the pool. Close releases a blocked send.
	select {
	case r.jobs <- job:
	case <-r.ctx.Done():
		h.cancel()
	}
}

// Poll is the per-tick pass: check every in-flight task without blocking
// and queue finished results for installation on the owner.
func (r *Runner[T]) Poll() {
	for owner, h := range r.tasks {
		select {
		case v := <-h.result:
			delete(r.tasks, owner)
			h.cancel()
			r.world.Defer(func() {
				if !r.world.Alive(owner) {
					return
				}
				r.out.Set(owner, v)
			})
		default:
		}
	}
}

// InFlight reports whether the owner currently has an outstanding task.
func (r *Runner[T]) InFlight(owner engine.Entity) bool {
	_, ok := r.tasks[owner]
	return ok
}

// Pending returns the number of outstanding tasks.
func (r *Runner[T]) Pending() int {
	return len(r.tasks)
}

// drop removes the owner's task, if any, cancelling the computation. A
// result arriving afterwards stays in the abandoned handle's channel and
// is never installed.
func (r *Runner[T]) drop(e engine.Entity) {
	if h, ok := r.tasks[e]; ok {
		h.cancel()
		delete(r.tasks, e)
	}
}

// Close shuts the worker pool down and waits for workers to exit.
func (r *Runner[T]) Close() {
	r.cancel()
	r.wg.Wait()
}
