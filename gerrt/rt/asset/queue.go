package asset

import (
	"context"
	"errors"
	"sync"

	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/google/uuid"
)

// Request identifies one submitted load. Gen is the generation of Key at the
// time the load was started; a completion whose Gen is no longer current for
// its Key is discarded.
type Request struct {
	ID   string
	Key  string
	Gen  uint64
	Path string
}

type generation struct {
	n      uint64
	ctx    context.Context
	cancel context.CancelFunc

	// requests submitted under n that Pump has not consumed yet
	outstanding int
	idle        []func()
}

type completion struct {
	req   Request
	node  *scene.Node
	err   error
	apply func(*scene.Node)
}

// Queue runs loads on worker goroutines and delivers results through Pump,
// which must be called from the goroutine that owns the scene.
type Queue struct {
	loader Loader
	cache  *Cache
	log    core.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// UI goroutine only
	gens map[string]*generation

	mu      sync.Mutex
	ready   []completion
	pending int
	notify  chan struct{}
	wg      sync.WaitGroup
}

func NewQueue(ctx context.Context, loader Loader, cache *Cache, log core.Logger) *Queue {
	if cache == nil {
		cache = NewCache()
	}
	qctx, cancel := context.WithCancel(ctx)
	return &Queue{
		loader: loader,
		cache:  cache,
		log:    core.OrNop(log),
		ctx:    qctx,
		cancel: cancel,
		gens:   make(map[string]*generation),
		notify: make(chan struct{}, 1),
	}
}

func (q *Queue) Cache() *Cache { return q.cache }

// Begin starts a new generation for key and cancels in-flight loads of the
// previous one.
func (q *Queue) Begin(key string) uint64 {
	g, ok := q.gens[key]
	if !ok {
		g = &generation{}
		q.gens[key] = g
	} else if g.cancel != nil {
		g.cancel()
	}
	g.n++
	g.ctx, g.cancel = context.WithCancel(q.ctx)
	g.outstanding = 0
	g.idle = nil
	return g.n
}

// Outstanding is the number of requests of the live generation of key that
// have not been delivered by Pump yet.
func (q *Queue) Outstanding(key string) int {
	if g, ok := q.gens[key]; ok {
		return g.outstanding
	}
	return 0
}

// WhenIdle runs fn once the live generation of key has no outstanding
// requests, immediately if it has none now. A new generation discards
// callbacks still waiting.
func (q *Queue) WhenIdle(key string, fn func()) {
	g, ok := q.gens[key]
	if !ok || g.outstanding == 0 {
		fn()
		return
	}
	g.idle = append(g.idle, fn)
}

func (q *Queue) fireIdle(g *generation) {
	for g.outstanding == 0 && len(g.idle) > 0 {
		fn := g.idle[0]
		g.idle = g.idle[1:]
		fn()
	}
}

// Current returns the live generation of key, 0 if none was started.
func (q *Queue) Current(key string) uint64 {
	if g, ok := q.gens[key]; ok {
		return g.n
	}
	return 0
}

// Stale reports whether gen is no longer the live generation for key.
func (q *Queue) Stale(key string, gen uint64) bool { return q.Current(key) != gen }

// Cancel invalidates the live generation of key without starting a load.
func (q *Queue) Cancel(key string) { q.Begin(key) }

// Submit queues a load of path under an existing generation of key. apply runs
// in a later Pump with a fresh clone of the loaded model. Cached paths skip
// the worker.
func (q *Queue) Submit(key string, gen uint64, path string, apply func(*scene.Node)) Request {
	req := Request{ID: uuid.NewString(), Key: key, Gen: gen, Path: path}
	if g := q.generation(key); g.n == gen {
		g.outstanding++
	}

	if tmpl, ok := q.cache.Get(path); ok {
		q.mu.Lock()
		q.ready = append(q.ready, completion{req: req, node: tmpl, apply: apply})
		q.mu.Unlock()
		q.signal()
		return req
	}

	ctx := q.keyContext(key)
	if q.Stale(key, gen) {
		// Already superseded: load anyway for the cache, the result is dropped.
		ctx = q.ctx
	}
	q.mu.Lock()
	q.pending++
	q.mu.Unlock()
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		node, err := q.loader.Load(ctx, path)
		if err == nil && ctx.Err() != nil {
			err = ErrCancelled
		}
		q.mu.Lock()
		q.pending--
		q.ready = append(q.ready, completion{req: req, node: node, err: err, apply: apply})
		q.mu.Unlock()
		q.signal()
	}()
	return req
}

// Load starts a new generation for key and submits a single path under it.
func (q *Queue) Load(key, path string, apply func(*scene.Node)) Request {
	return q.Submit(key, q.Begin(key), path, apply)
}

func (q *Queue) generation(key string) *generation {
	if _, ok := q.gens[key]; !ok {
		q.Begin(key)
	}
	return q.gens[key]
}

func (q *Queue) keyContext(key string) context.Context {
	return q.generation(key).ctx
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Ready is signalled whenever a completion is waiting for Pump.
func (q *Queue) Ready() <-chan struct{} { return q.notify }

// Pending is the number of loads still running on workers.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// Pump applies finished loads. Results of stale generations are cached but
// not applied. It returns the number of completions applied.
func (q *Queue) Pump() int {
	q.mu.Lock()
	batch := q.ready
	q.ready = nil
	q.mu.Unlock()

	applied := 0
	for _, c := range batch {
		if c.err == nil && c.node != nil {
			if _, ok := q.cache.Get(c.req.Path); !ok {
				q.cache.Put(c.req.Path, c.node)
			}
		}
		g, ok := q.gens[c.req.Key]
		if !ok || g.n != c.req.Gen {
			q.log.Debugf("asset: dropping stale load %s (key=%s gen=%d)", c.req.Path, c.req.Key, c.req.Gen)
			continue
		}
		g.outstanding--
		if q.deliver(c) {
			applied++
		}
		// apply may have started a new generation
		if cur := q.gens[c.req.Key]; cur == g && g.n == c.req.Gen {
			q.fireIdle(g)
		}
	}
	return applied
}

func (q *Queue) deliver(c completion) bool {
	if c.err != nil {
		if errors.Is(c.err, ErrCancelled) || errors.Is(c.err, context.Canceled) {
			q.log.Debugf("asset: load %s cancelled", c.req.Path)
		} else {
			q.log.Warnf("asset: failed to load %s: %v", c.req.Path, c.err)
		}
		return false
	}
	if c.node == nil {
		return false
	}
	if c.apply != nil {
		c.apply(c.node.Clone())
	}
	return true
}

// Wait blocks until every worker has finished. Results still need a Pump.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Close cancels all in-flight loads and waits for workers to exit.
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}
