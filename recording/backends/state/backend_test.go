package state

import (
	"testing"

	"github.com/gogpu/gbufview/recording"
	"github.com/gogpu/gbufview/render"
)

type tex string

func (t tex) Label() string { return string(t) }

type buf string

func (b buf) Label() string { return string(b) }
func (b buf) Size() uint64  { return 16 }

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered("state") {
		t.Fatal("state backend not registered")
	}
	b, err := recording.NewBackend("state")
	if err != nil {
		t.Fatalf("NewBackend(state) error = %v", err)
	}
	if _, ok := b.(*Backend); !ok {
		t.Fatalf("backend is %T, want *state.Backend", b)
	}
}

func TestBackendSnapshotsBindingsAtDraw(t *testing.T) {
	rec := recording.NewRecorder(render.NewViewport(8, 8))
	rec.SetResourceTexture(render.SlotAlbedo, tex("albedo"))
	rec.SetUniformBuffer(render.ParamShadowTransform, buf("shadow"))
	rec.DrawQuad(3, render.FullScreen, render.White)
	rec.SetResourceTexture(render.SlotAlbedo, nil)
	rec.SetUniformBuffer(render.ParamShadowTransform, nil)

	b := NewBackend()
	if err := rec.FinishRecording().Playback(b); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}

	draws := b.Draws()
	if len(draws) != 1 {
		t.Fatalf("len(Draws()) = %d, want 1", len(draws))
	}
	d := draws[0]
	if d.Geometry != 3 {
		t.Errorf("Geometry = %v, want 3", d.Geometry)
	}
	if d.Textures[render.SlotAlbedo] != tex("albedo") {
		t.Errorf("albedo at draw = %v", d.Textures[render.SlotAlbedo])
	}
	if d.Buffers[render.ParamShadowTransform] != buf("shadow") {
		t.Errorf("shadow transform at draw = %v", d.Buffers[render.ParamShadowTransform])
	}
	if got := b.BoundTextures(); len(got) != 0 {
		t.Errorf("BoundTextures() after frame = %v, want none", got)
	}
	if got := b.BoundBuffers(); len(got) != 0 {
		t.Errorf("BoundBuffers() after frame = %v, want none", got)
	}
	if b.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", b.Frames())
	}
}

func TestBackendReportsLeakedBindings(t *testing.T) {
	rec := recording.NewRecorder(render.NewViewport(8, 8))
	rec.SetResourceTexture(render.SlotVelocity, tex("velocity"))
	rec.SetResourceTexture(render.SlotDepth, tex("depth"))
	rec.DrawQuad(1, render.FullScreen, render.White)

	b := NewBackend()
	if err := rec.FinishRecording().Playback(b); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	got := b.BoundTextures()
	if len(got) != 2 || got[0] != render.SlotDepth || got[1] != render.SlotVelocity {
		t.Errorf("BoundTextures() = %v, want [Depth Velocity]", got)
	}
}
