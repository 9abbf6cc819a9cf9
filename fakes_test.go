package gbufview

import (
	"errors"
	"strings"

	"github.com/gogpu/gbufview/render"
)

// fakePipeline records its source and whether it was destroyed.
type fakePipeline struct {
	label     string
	source    string
	destroyed bool
}

func (p *fakePipeline) Label() string  { return p.label }
func (p *fakePipeline) Source() string { return p.source }
func (p *fakePipeline) Destroy()       { p.destroyed = true }

// fakeCompiler builds fakePipelines and rejects sources containing
// brokenMarker.
type fakeCompiler struct {
	compiled []*fakePipeline
}

const brokenMarker = "BROKEN"

func (c *fakeCompiler) Compile(desc render.ProgramDescriptor) (render.Pipeline, error) {
	if strings.Contains(desc.Source, brokenMarker) {
		return nil, errors.New("fake: syntax error")
	}
	p := &fakePipeline{label: desc.Label, source: desc.Source}
	c.compiled = append(c.compiled, p)
	return p, nil
}

// fakeGeometry counts geometry handles.
type fakeGeometry struct {
	next     render.GeometryID
	released []render.GeometryID
}

func (g *fakeGeometry) AllocateID() render.GeometryID {
	g.next++
	return g.next
}

func (g *fakeGeometry) ReleaseID(id render.GeometryID) {
	g.released = append(g.released, id)
}

type fakeTexture struct{ label string }

func (t *fakeTexture) Label() string { return t.label }

type fakeBuffer struct{ label string }

func (b *fakeBuffer) Label() string { return b.label }
func (b *fakeBuffer) Size() uint64  { return 256 }
