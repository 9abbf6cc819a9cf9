// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}

	// DeviceHandle is gpucontext.DeviceProvider.
	var _ gpucontext.DeviceProvider = handle
}

func TestSlotBindingsUnique(t *testing.T) {
	names := make(map[string]bool)
	bindings := make(map[uint32]string)
	for _, b := range SlotBindings {
		if names[b.Name] {
			t.Errorf("duplicate slot name %q", b.Name)
		}
		names[b.Name] = true
		if other, ok := bindings[b.Binding()]; ok {
			t.Errorf("%q and %q share binding %d", b.Name, other, b.Binding())
		}
		bindings[b.Binding()] = b.Name
	}
	if got, want := len(SlotBindings), NumTextureSlots+NumParamSlots; got != want {
		t.Errorf("len(SlotBindings) = %d, want %d", got, want)
	}
}

func TestSlotBindingsCoverEverySlot(t *testing.T) {
	seenTex := make(map[TextureSlot]bool)
	seenParam := make(map[ParamSlot]bool)
	for _, b := range SlotBindings {
		switch b.Kind {
		case SlotKindTexture:
			seenTex[b.Texture] = true
		case SlotKindUniform:
			seenParam[b.Param] = true
		}
	}
	for s := TextureSlot(0); int(s) < NumTextureSlots; s++ {
		if !seenTex[s] {
			t.Errorf("texture slot %v has no binding name", s)
		}
	}
	for s := ParamSlot(0); int(s) < NumParamSlots; s++ {
		if !seenParam[s] {
			t.Errorf("param slot %v has no binding name", s)
		}
	}
}

func TestLookupSlot(t *testing.T) {
	tests := []struct {
		name    string
		kind    SlotKind
		binding uint32
	}{
		{"albedoMap", SlotKindTexture, 0},
		{"obscuranceMap", SlotKindTexture, uint32(SlotAmbientOcclusion)},
		{"velocityMap", SlotKindTexture, 14},
		{"cameraCorrectionBuffer", SlotKindUniform, 16},
		{"shadowTransformBuffer", SlotKindUniform, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := LookupSlot(tt.name)
			if !ok {
				t.Fatalf("LookupSlot(%q) not found", tt.name)
			}
			if b.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", b.Kind, tt.kind)
			}
			if b.Binding() != tt.binding {
				t.Errorf("Binding() = %d, want %d", b.Binding(), tt.binding)
			}
		})
	}

	if _, ok := LookupSlot("nope"); ok {
		t.Error("LookupSlot(nope) should not be found")
	}
}

func TestSlotString(t *testing.T) {
	if got := SlotAmbientOcclusionBlurred.String(); got != "AmbientOcclusionBlurred" {
		t.Errorf("String() = %q", got)
	}
	if got := TextureSlot(99).String(); got != "Unknown" {
		t.Errorf("TextureSlot(99).String() = %q, want Unknown", got)
	}
	if got := ParamShadowTransform.String(); got != "ShadowTransform" {
		t.Errorf("String() = %q", got)
	}
}

func TestDefaultBindingsIsCopy(t *testing.T) {
	b := DefaultBindings()
	b[0].Name = "changed"
	if SlotBindings[0].Name == "changed" {
		t.Error("DefaultBindings must not alias SlotBindings")
	}
}

func TestEntryPointsDefaults(t *testing.T) {
	d := ProgramDescriptor{}
	vs, fs := d.EntryPoints()
	if vs != "vs_main" || fs != "fs_main" {
		t.Errorf("EntryPoints() = %q, %q", vs, fs)
	}
	d = ProgramDescriptor{VertexEntryPoint: "v", FragmentEntryPoint: "f"}
	vs, fs = d.EntryPoints()
	if vs != "v" || fs != "f" {
		t.Errorf("EntryPoints() = %q, %q, want v, f", vs, fs)
	}
}

func TestGeometryID(t *testing.T) {
	if InvalidGeometryID.Valid() {
		t.Error("zero ID should be invalid")
	}
	if !GeometryID(3).Valid() {
		t.Error("ID 3 should be valid")
	}
	if got := GeometryID(3).String(); got != "geom#3" {
		t.Errorf("String() = %q", got)
	}
}

func TestRect(t *testing.T) {
	r := NewRect(0, -1, 1, 1)
	if x, y := r.BottomLeft(); x != 0 || y != -1 {
		t.Errorf("BottomLeft() = %v,%v", x, y)
	}
	if x, y := r.TopRight(); x != 1 || y != 1 {
		t.Errorf("TopRight() = %v,%v", x, y)
	}
	if r.Empty() {
		t.Error("rect should not be empty")
	}
	if !NewRect(1, 0, 1, 1).Empty() {
		t.Error("zero-width rect should be empty")
	}
	if got := r.String(); got != "(0,-1)-(1,1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestViewportTransform(t *testing.T) {
	v := Viewport{X: 10, Y: 20, Width: 200, Height: 100}
	m := v.Transform()

	// NDC (-1,-1) maps to the viewport origin, (1,1) to the far corner.
	x := m[0]*-1 + m[12]
	y := m[5]*-1 + m[13]
	if x != 10 || y != 20 {
		t.Errorf("(-1,-1) -> (%v,%v), want (10,20)", x, y)
	}
	x = m[0] + m[12]
	y = m[5] + m[13]
	if x != 210 || y != 120 {
		t.Errorf("(1,1) -> (%v,%v), want (210,120)", x, y)
	}

	if got := v.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, want 2", got)
	}
	if got := (Viewport{}).Aspect(); got != 1 {
		t.Errorf("degenerate Aspect() = %v, want 1", got)
	}
}

func TestMat4Mul(t *testing.T) {
	a := Identity()
	a[12], a[13], a[14] = 1, 2, 3 // translate

	if got := a.Mul(Identity()); got != a {
		t.Errorf("a * I = %v, want %v", got, a)
	}
	if got := Identity().Mul(a); got != a {
		t.Errorf("I * a = %v, want %v", got, a)
	}

	twice := a.Mul(a)
	if twice[12] != 2 || twice[13] != 4 || twice[14] != 6 {
		t.Errorf("translation composed = %v,%v,%v, want 2,4,6", twice[12], twice[13], twice[14])
	}
}

func TestFrustumDefaultViewIsIdentity(t *testing.T) {
	f := NewFrustum()
	if v := f.EvalViewTransform(); !v.IsIdentity() {
		t.Errorf("EvalViewTransform() = %v, want identity", v)
	}
}

func TestFrustumViewTranslates(t *testing.T) {
	f := NewFrustum()
	f.Position = Vec3{0, 0, 5}
	v := f.EvalViewTransform()

	// The eye itself maps to the view-space origin.
	z := v[2]*0 + v[6]*0 + v[10]*5 + v[14]
	if z != 0 {
		t.Errorf("eye view z = %v, want 0", z)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.5), float32(50)
	p := Perspective(math.Pi/2, 1, near, far)

	clip := func(zView float32) float32 {
		z := p[10]*zView + p[14]
		w := p[11] * zView
		return z / w
	}
	if d := clip(-near); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	if d := clip(-far); math.Abs(float64(d-1)) > 1e-5 {
		t.Errorf("far plane depth = %v, want 1", d)
	}
	if p[0] != p[5] {
		t.Errorf("square aspect should scale x and y equally: %v vs %v", p[0], p[5])
	}
}

func TestVec3(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y = %v", got)
	}
	if got := (Vec3{3, 0, 4}).Normalize(); math.Abs(float64(got[0]-0.6)) > 1e-6 || math.Abs(float64(got[2]-0.8)) > 1e-6 {
		t.Errorf("Normalize() = %v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v", got)
	}
}

func TestTextureTarget(t *testing.T) {
	target := NewTextureTarget(640, 480, gputypes.TextureFormatBGRA8Unorm, nil, nil)
	if target.Width() != 640 || target.Height() != 480 {
		t.Errorf("size = %dx%d", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v", target.Format())
	}
	if vp := target.Viewport(); vp.Width != 640 || vp.Height != 480 {
		t.Errorf("Viewport() = %+v", vp)
	}
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	tests := []struct {
		name       string
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"fits", 800, 800, 400, 200},
		{"width bound", 100, 800, 100, 50},
		{"height bound", 800, 50, 100, 50},
		{"unbounded", 0, 0, 400, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Thumbnail(src, tt.maxW, tt.maxH)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
			c := got.RGBAAt(got.Bounds().Dx()/2, got.Bounds().Dy()/2)
			if c.R < 250 || c.G != 0 {
				t.Errorf("center pixel = %v, want red", c)
			}
		})
	}
}

func TestScaleTiny(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	got := Scale(src, 0.01)
	if got.Bounds().Dx() != 1 || got.Bounds().Dy() != 1 {
		t.Errorf("size = %v, want 1x1", got.Bounds())
	}
}
