package pool

import "sync"

// ContextPool is a mutex-guarded free list of codec contexts of type T,
// one per codec instance (spec §2 item 2 / §4.1). Contexts are created
// lazily by newFn on an empty-pool acquire and destroyed by closeFn, either
// individually (a tainted context passed to Discard) or in bulk on Close
// (teardown). The free list has no capacity limit.
//
// The critical section is a slice pop/push only — newFn and closeFn, which
// may call into cgo, always run outside the lock, matching spec §5's
// requirement that the mutex never be held across a codec call.
type ContextPool[T any] struct {
	mu      sync.Mutex
	free    []T
	newFn   func() (T, error)
	closeFn func(T)
}

// NewContextPool creates an empty pool. No contexts are allocated until
// the first Acquire.
func NewContextPool[T any](newFn func() (T, error), closeFn func(T)) *ContextPool[T] {
	return &ContextPool[T]{newFn: newFn, closeFn: closeFn}
}

// Acquire pops a free context, or creates a new one if the free list is
// empty. Acquire fails only if newFn fails (the underlying codec library
// could not allocate a context).
func (p *ContextPool[T]) Acquire() (T, error) {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		ctx := p.free[n-1]
		p.free[n-1] = *new(T)
		p.free = p.free[:n-1]
		p.mu.Unlock()

		return ctx, nil
	}
	p.mu.Unlock()

	return p.newFn()
}

// Release returns ctx to the free list for reuse.
func (p *ContextPool[T]) Release(ctx T) {
	p.mu.Lock()
	p.free = append(p.free, ctx)
	p.mu.Unlock()
}

// Discard destroys ctx instead of returning it to the free list — the
// engine calls this instead of Release when the context's last use ended
// in a tainting error (errs.Kind.TaintsContext).
func (p *ContextPool[T]) Discard(ctx T) {
	p.closeFn(ctx)
}

// Close destroys every pooled context. Must not be called while any
// context acquired from this pool is still checked out.
func (p *ContextPool[T]) Close() {
	p.mu.Lock()
	free := p.free
	p.free = nil
	p.mu.Unlock()

	for _, ctx := range free {
		p.closeFn(ctx)
	}
}

// Len reports the number of currently-free (checked-in) contexts. Exposed
// for the context-pool-reuse property test (spec §8 item 8).
func (p *ContextPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.free)
}
