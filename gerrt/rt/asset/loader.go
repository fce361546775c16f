// Package asset loads part models and hands them to the UI goroutine.
package asset

import (
	"context"
	"errors"

	"github.com/gerkit/gerkit/gerrt/rt/scene"
)

var ErrCancelled = errors.New("load cancelled")

// Loader resolves an asset path into a detached scene node. Implementations
// must be safe to call from worker goroutines.
type Loader interface {
	Load(ctx context.Context, path string) (*scene.Node, error)
}

type LoaderFunc func(ctx context.Context, path string) (*scene.Node, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (*scene.Node, error) {
	return f(ctx, path)
}

// Cache keeps one parsed template per asset path. It is owned by the UI
// goroutine and is not safe for concurrent use.
type Cache struct {
	templates map[string]*scene.Node
}

func NewCache() *Cache {
	return &Cache{templates: make(map[string]*scene.Node)}
}

func (c *Cache) Get(path string) (*scene.Node, bool) {
	n, ok := c.templates[path]
	return n, ok
}

func (c *Cache) Put(path string, n *scene.Node) {
	c.templates[path] = n
}

func (c *Cache) Len() int { return len(c.templates) }
