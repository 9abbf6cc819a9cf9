package recording

import (
	"errors"
	"testing"

	"github.com/gogpu/gbufview/render"
)

type fakePipeline struct{ label string }

func (p *fakePipeline) Label() string  { return p.label }
func (p *fakePipeline) Source() string { return "" }
func (p *fakePipeline) Destroy()       {}

type fakeTexture struct{ label string }

func (t *fakeTexture) Label() string { return t.label }

type fakeBuffer struct{ label string }

func (b *fakeBuffer) Label() string { return b.label }
func (b *fakeBuffer) Size() uint64  { return 64 }

// spyBackend records the command types it receives.
type spyBackend struct {
	beginCalls int
	endCalls   int
	viewport   render.Viewport
	got        []CommandType
	drawErr    error
	deferred   error
}

func (b *spyBackend) Begin(v render.Viewport) error {
	b.beginCalls++
	b.viewport = v
	return nil
}

func (b *spyBackend) End() error {
	b.endCalls++
	return nil
}

func (b *spyBackend) SetViewport(render.Viewport) { b.got = append(b.got, CmdSetViewport) }
func (b *spyBackend) SetProjectionTransform(render.Mat4) {
	b.got = append(b.got, CmdSetProjectionTransform)
}
func (b *spyBackend) SetViewTransform(render.Mat4)  { b.got = append(b.got, CmdSetViewTransform) }
func (b *spyBackend) SetModelTransform(render.Mat4) { b.got = append(b.got, CmdSetModelTransform) }
func (b *spyBackend) SetPipeline(render.Pipeline)   { b.got = append(b.got, CmdSetPipeline) }
func (b *spyBackend) SetResourceTexture(render.TextureSlot, render.Texture) {
	b.got = append(b.got, CmdSetResourceTexture)
}
func (b *spyBackend) SetUniformBuffer(render.ParamSlot, render.Buffer) {
	b.got = append(b.got, CmdSetUniformBuffer)
}
func (b *spyBackend) DrawQuad(render.GeometryID, render.Rect, render.Color) error {
	b.got = append(b.got, CmdDrawQuad)
	return b.drawErr
}
func (b *spyBackend) Err() error { return b.deferred }

func recordFrame(rec *Recorder) {
	rec.SetViewport(render.NewViewport(64, 32))
	rec.SetProjectionTransform(render.Identity())
	rec.SetViewTransform(render.Identity())
	rec.SetModelTransform(render.Identity())
	rec.SetPipeline(&fakePipeline{label: "albedo"})
	rec.SetResourceTexture(render.SlotAlbedo, &fakeTexture{label: "albedo"})
	rec.SetUniformBuffer(render.ParamDeferredFrameTransform, &fakeBuffer{label: "frame"})
	rec.DrawQuad(1, render.FullScreen, render.White)
	rec.SetResourceTexture(render.SlotAlbedo, nil)
	rec.SetUniformBuffer(render.ParamDeferredFrameTransform, nil)
}

func TestRecorderRecordsInOrder(t *testing.T) {
	rec := NewRecorder(render.NewViewport(64, 32))
	if rec.Len() != 0 {
		t.Fatalf("new recorder Len() = %d, want 0", rec.Len())
	}

	recordFrame(rec)

	want := []CommandType{
		CmdSetViewport, CmdSetProjectionTransform, CmdSetViewTransform, CmdSetModelTransform,
		CmdSetPipeline, CmdSetResourceTexture, CmdSetUniformBuffer, CmdDrawQuad,
		CmdSetResourceTexture, CmdSetUniformBuffer,
	}
	if rec.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", rec.Len(), len(want))
	}
	for i, c := range rec.Commands() {
		if c.Type() != want[i] {
			t.Errorf("command %d = %v, want %v", i, c.Type(), want[i])
		}
	}
	if got := rec.Count(CmdSetResourceTexture); got != 2 {
		t.Errorf("Count(SetResourceTexture) = %d, want 2", got)
	}
	if got := rec.Count(CmdDrawQuad); got != 1 {
		t.Errorf("Count(DrawQuad) = %d, want 1", got)
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder(render.NewViewport(8, 8))
	recordFrame(rec)
	rec.Reset()
	if rec.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", rec.Len())
	}
	if rec.Viewport().Width != 8 {
		t.Errorf("Viewport() lost after Reset: %+v", rec.Viewport())
	}
}

func TestPlaybackDispatchesEveryCommand(t *testing.T) {
	rec := NewRecorder(render.NewViewport(64, 32))
	recordFrame(rec)
	r := rec.FinishRecording()

	spy := &spyBackend{}
	if err := r.Playback(spy); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	if spy.beginCalls != 1 || spy.endCalls != 1 {
		t.Errorf("begin/end = %d/%d, want 1/1", spy.beginCalls, spy.endCalls)
	}
	if spy.viewport.Width != 64 || spy.viewport.Height != 32 {
		t.Errorf("Begin viewport = %+v", spy.viewport)
	}
	if len(spy.got) != len(r.Commands()) {
		t.Fatalf("dispatched %d commands, want %d", len(spy.got), len(r.Commands()))
	}
	for i, c := range r.Commands() {
		if spy.got[i] != c.Type() {
			t.Errorf("dispatch %d = %v, want %v", i, spy.got[i], c.Type())
		}
	}

	// A recording can be replayed.
	spy2 := &spyBackend{}
	if err := r.Playback(spy2); err != nil {
		t.Fatalf("second Playback() error = %v", err)
	}
	if len(spy2.got) != len(spy.got) {
		t.Errorf("replay dispatched %d, want %d", len(spy2.got), len(spy.got))
	}
}

func TestPlaybackStopsAtDrawError(t *testing.T) {
	rec := NewRecorder(render.NewViewport(4, 4))
	recordFrame(rec)

	errDraw := errors.New("device lost")
	spy := &spyBackend{drawErr: errDraw}
	err := rec.FinishRecording().Playback(spy)
	if !errors.Is(err, errDraw) {
		t.Fatalf("Playback() error = %v, want %v", err, errDraw)
	}
	if spy.got[len(spy.got)-1] != CmdDrawQuad {
		t.Errorf("last dispatched = %v, want DrawQuad", spy.got[len(spy.got)-1])
	}
	if spy.endCalls != 1 {
		t.Errorf("End should run after a failed draw, calls = %d", spy.endCalls)
	}
}

func TestPlaybackReportsDeferredError(t *testing.T) {
	errLate := errors.New("submit failed")
	spy := &spyBackend{deferred: errLate}
	err := NewRecorder(render.NewViewport(1, 1)).FinishRecording().Playback(spy)
	if !errors.Is(err, errLate) {
		t.Errorf("Playback() error = %v, want %v", err, errLate)
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdSetViewport, "SetViewport"},
		{CmdSetPipeline, "SetPipeline"},
		{CmdSetUniformBuffer, "SetUniformBuffer"},
		{CmdDrawQuad, "DrawQuad"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
