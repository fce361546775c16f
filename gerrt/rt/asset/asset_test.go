package asset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxLoader(calls *int32) Loader {
	return LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		n := scene.NewNode(path, nil)
		n.Mesh = core.NewBox(path, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1})
		return n, nil
	})
}

func TestQueueAppliesOnPump(t *testing.T) {
	q := NewQueue(context.Background(), boxLoader(nil), nil, core.NewNopLogger())
	defer q.Close()

	var got *scene.Node
	q.Load("part", "models/toono.glb", func(n *scene.Node) { got = n })
	q.Wait()
	assert.Nil(t, got, "apply must wait for Pump")

	assert.Equal(t, 1, q.Pump())
	require.NotNil(t, got)
	assert.Equal(t, "models/toono.glb", got.Name)
	assert.Equal(t, 1, q.Cache().Len())
}

func TestQueueCachedInstancesAreDistinct(t *testing.T) {
	var calls int32
	q := NewQueue(context.Background(), boxLoader(&calls), nil, nil)
	defer q.Close()

	var nodes []*scene.Node
	collect := func(n *scene.Node) { nodes = append(nodes, n) }

	q.Load("a", "models/uni.glb", collect)
	q.Wait()
	q.Pump()
	q.Load("b", "models/uni.glb", collect)
	q.Pump()

	require.Len(t, nodes, 2)
	assert.NotSame(t, nodes[0], nodes[1])
	assert.NotEqual(t, nodes[0].Id, nodes[1].Id)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second load must come from cache")
}

func TestQueueDropsStaleGeneration(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	loader := LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		if path == "slow" {
			<-release
		}
		return scene.NewNode(path, nil), nil
	})
	q := NewQueue(context.Background(), loader, nil, nil)
	defer q.Close()

	var applied []string
	apply := func(n *scene.Node) { applied = append(applied, n.Name) }

	first := q.Load("group", "slow", apply)
	second := q.Load("group", "fast", apply)
	assert.True(t, q.Stale("group", first.Gen))
	assert.False(t, q.Stale("group", second.Gen))

	once.Do(func() { close(release) })
	q.Wait()
	q.Pump()
	assert.Equal(t, []string{"fast"}, applied)
}

func TestQueueCancelContext(t *testing.T) {
	started := make(chan struct{})
	loader := LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	q := NewQueue(context.Background(), loader, nil, nil)
	defer q.Close()

	applied := false
	q.Load("state", "x", func(*scene.Node) { applied = true })
	<-started
	q.Cancel("state")
	q.Wait()
	assert.Equal(t, 0, q.Pump())
	assert.False(t, applied)
	assert.Equal(t, 0, q.Pending())
}

func TestQueueLoadErrorIsNotApplied(t *testing.T) {
	loader := LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		return nil, errors.New("boom")
	})
	q := NewQueue(context.Background(), loader, nil, nil)
	defer q.Close()

	applied := false
	q.Load("k", "missing.glb", func(*scene.Node) { applied = true })
	q.Wait()
	assert.Equal(t, 0, q.Pump())
	assert.False(t, applied)
	assert.Equal(t, 0, q.Cache().Len())
}

func TestReadySignal(t *testing.T) {
	q := NewQueue(context.Background(), boxLoader(nil), nil, nil)
	defer q.Close()
	q.Load("k", "p", nil)
	<-q.Ready()
	q.Wait()
	assert.Equal(t, 1, q.Pump())
}

func TestNodeFromDocument(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 1, 3, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{"POSITION": pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "body", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	root, err := NodeFromDocument(doc, "toono")
	require.NoError(t, err)
	assert.Equal(t, "toono", root.Name)
	require.Len(t, root.Children(), 1)

	body := root.Children()[0]
	assert.Equal(t, "body", body.Name)
	require.NotNil(t, body.Mesh)
	assert.Equal(t, 2, body.Mesh.TriangleCount())
	assert.Len(t, body.Mesh.Positions, 4)

	hit, ok := body.Mesh.Intersect(core.Ray{Origin: mgl32.Vec3{0.5, 0.5, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	assert.True(t, ok)
	assert.InDelta(t, 5, hit, 1e-4)
}

func TestGLTFLoaderMissingFile(t *testing.T) {
	_, err := GLTFLoader{Root: t.TempDir()}.Load(context.Background(), "nope.glb")
	assert.Error(t, err)
}

func TestQueueWhenIdleWaitsForGeneration(t *testing.T) {
	q := NewQueue(context.Background(), boxLoader(nil), nil, nil)
	defer q.Close()

	var order []string
	gen := q.Begin("scene")
	q.Submit("scene", gen, "a", func(n *scene.Node) { order = append(order, n.Name) })
	q.Submit("scene", gen, "b", func(n *scene.Node) { order = append(order, n.Name) })
	assert.Equal(t, 2, q.Outstanding("scene"))

	q.WhenIdle("scene", func() { order = append(order, "idle") })
	assert.Empty(t, order, "callback must wait for outstanding loads")

	q.Wait()
	q.Pump()
	assert.Equal(t, []string{"a", "b", "idle"}, order)
	assert.Equal(t, 0, q.Outstanding("scene"))

	fired := false
	q.WhenIdle("scene", func() { fired = true })
	assert.True(t, fired, "idle key runs immediately")
}

func TestQueueWhenIdleCountsFailures(t *testing.T) {
	loader := LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		return nil, errors.New("boom")
	})
	q := NewQueue(context.Background(), loader, nil, nil)
	defer q.Close()

	gen := q.Begin("scene")
	q.Submit("scene", gen, "missing.glb", nil)
	fired := false
	q.WhenIdle("scene", func() { fired = true })
	q.Wait()
	q.Pump()
	assert.True(t, fired)
}

func TestQueueBeginDiscardsIdleCallbacks(t *testing.T) {
	release := make(chan struct{})
	loader := LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		<-release
		return scene.NewNode(path, nil), nil
	})
	q := NewQueue(context.Background(), loader, nil, nil)
	defer q.Close()

	gen := q.Begin("scene")
	q.Submit("scene", gen, "a", nil)
	fired := false
	q.WhenIdle("scene", func() { fired = true })

	q.Begin("scene")
	close(release)
	q.Wait()
	q.Pump()
	assert.False(t, fired)
	assert.Equal(t, 0, q.Outstanding("scene"))
}
