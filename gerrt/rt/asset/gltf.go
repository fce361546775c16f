package asset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFLoader reads .glb / .gltf files relative to Root.
type GLTFLoader struct {
	Root string
}

func (l GLTFLoader) Load(ctx context.Context, path string) (*scene.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := path
	if l.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.Root, path)
	}
	doc, err := gltf.Open(full)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", full, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NodeFromDocument(doc, name)
}

// NodeFromDocument converts the default scene of doc into a node tree under a
// single untagged root called name. Only triangle geometry is kept; it is
// what picking needs.
func NodeFromDocument(doc *gltf.Document, name string) (*scene.Node, error) {
	meshPrims := make([][]*core.Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := readPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			meshPrims[mi] = append(meshPrims[mi], m)
		}
	}

	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		nodeName := gn.Name
		if nodeName == "" {
			nodeName = fmt.Sprintf("node_%d", i)
		}
		n := scene.NewNode(nodeName, nil)

		t := gn.TranslationOrDefault()
		n.Transform.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
		sc := gn.ScaleOrDefault()
		n.Transform.Scale = mgl32.Vec3{float32(sc[0]), float32(sc[1]), float32(sc[2])}
		r := gn.RotationOrDefault() // [x, y, z, w]
		n.Transform.Rotation = core.QuatToEuler(mgl32.Quat{
			W: float32(r[3]),
			V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
		})

		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) {
			prims := meshPrims[*gn.Mesh]
			switch len(prims) {
			case 0:
			case 1:
				n.Mesh = prims[0]
			default:
				for pi, p := range prims {
					child := scene.NewNode(fmt.Sprintf("%s_prim%d", nodeName, pi), nil)
					child.Mesh = p
					n.Add(child)
				}
			}
		}
		nodes[i] = n
	}

	for i, gn := range doc.Nodes {
		for _, childIdx := range gn.Children {
			if childIdx < len(nodes) && childIdx != i {
				nodes[i].Add(nodes[childIdx])
			}
		}
	}

	root := scene.NewNode(name, nil)
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, idx := range doc.Scenes[*doc.Scene].Nodes {
			if idx < len(nodes) {
				root.Add(nodes[idx])
			}
		}
		return root, nil
	}

	// No default scene: collect all parentless nodes
	for _, n := range nodes {
		if n.Parent() == nil {
			root.Add(n)
		}
	}
	return root, nil
}

func readPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (*core.Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	if posIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("POSITION accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	m := &core.Mesh{Name: name, Positions: make([]mgl32.Vec3, len(positions))}
	for i, p := range positions {
		m.Positions[i] = mgl32.Vec3{p[0], p[1], p[2]}
	}

	if prim.Indices != nil {
		if *prim.Indices >= len(doc.Accessors) {
			return nil, fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	return m, nil
}
