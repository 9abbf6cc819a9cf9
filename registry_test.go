package gbufview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gbufview/render"
)

const fragmentSignature = "fn get_fragment_color(uv: vec2<f32>) -> vec4<f32>"

func TestSourceForVelocity(t *testing.T) {
	want := `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let v = textureLoad(velocityMap, texel(textureDimensions(velocityMap), uv), 0).xy;
    return vec4<f32>(v, 0.0, 1.0);
}
`
	if got := SourceFor(ModeVelocity); got != want {
		t.Errorf("SourceFor(Velocity) =\n%s\nwant\n%s", got, want)
	}
}

// TestSourceForGolden compares every built-in body with
// testdata/bodies/<Mode>.wgsl.
func TestSourceForGolden(t *testing.T) {
	for _, m := range Modes() {
		if m == ModeCustom || m == ModeOff {
			continue
		}
		t.Run(m.String(), func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("testdata", "bodies", m.String()+".wgsl"))
			if err != nil {
				t.Fatalf("golden body: %v", err)
			}
			if got := SourceFor(m); got != string(want) {
				t.Errorf("SourceFor(%v) =\n%s\nwant\n%s", m, got, want)
			}
		})
	}
}

func TestSourceForReadsItsBuffer(t *testing.T) {
	// Each body must read the map of the buffer it visualizes.
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeAlbedo, "unpack_deferred_fragment_no_position"},
		{ModeMetallic, "frag.metallic"},
		{ModeRoughness, "frag.roughness"},
		{ModeNormal, "frag.normal"},
		{ModeDepth, "depthMap"},
		{ModeEmissive, "FRAG_MODE_SHADED"},
		{ModeUnlit, "FRAG_MODE_UNLIT"},
		{ModeOcclusion, "specularMap"},
		{ModeLightmap, "FRAG_MODE_LIGHTMAPPED"},
		{ModeScattering, "FRAG_MODE_SCATTERING"},
		{ModeLighting, "lightingMap"},
		{ModeShadowCascade0, "shadowMap"},
		{ModeShadowCascadeIndices, "determine_shadow_cascades"},
		{ModeLinearDepth, "linearDepthMap"},
		{ModeHalfLinearDepth, "halfLinearDepthMap"},
		{ModeHalfNormal, "halfNormalMap"},
		{ModeCurvature, "curvatureMap"},
		{ModeNormalCurvature, "curvatureMap"},
		{ModeDiffusedCurvature, "diffusedCurvatureMap"},
		{ModeDiffusedNormalCurvature, "diffusedCurvatureMap"},
		{ModeCurvatureOcclusion, "curvature_ao"},
		{ModeScatteringDebug, "scatteringMap"},
		{ModeAmbientOcclusion, "obscuranceMap"},
		{ModeAmbientOcclusionBlurred, "occlusionBlurredMap"},
		{ModeVelocity, "velocityMap"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			src := SourceFor(tt.mode)
			if !strings.HasPrefix(src, fragmentSignature) {
				t.Errorf("body does not start with %q", fragmentSignature)
			}
			if !strings.Contains(src, tt.want) {
				t.Errorf("body does not reference %q:\n%s", tt.want, src)
			}
		})
	}
}

func TestSourceForDistinct(t *testing.T) {
	seen := make(map[string]Mode)
	for m := ModeAlbedo; m < ModeCustom; m++ {
		if m.IsShadowCascade() && m != ModeShadowCascade0 {
			continue
		}
		src := SourceFor(m)
		if prev, ok := seen[src]; ok {
			t.Errorf("%v and %v share a body", prev, m)
		}
		seen[src] = m
	}
}

func TestSourceForShadowCascadesShareBody(t *testing.T) {
	want := SourceFor(ModeShadowCascade0)
	for _, m := range []Mode{ModeShadowCascade1, ModeShadowCascade2, ModeShadowCascade3} {
		if SourceFor(m) != want {
			t.Errorf("SourceFor(%v) differs from ShadowCascade0", m)
		}
	}
}

func TestSourceForFallsBackToAlbedo(t *testing.T) {
	albedo := SourceFor(ModeAlbedo)
	for _, m := range []Mode{Mode(-1), ModeCustom, ModeOff, Mode(999)} {
		if SourceFor(m) != albedo {
			t.Errorf("SourceFor(%d) is not the albedo body", int(m))
		}
	}
}

func TestSourceForPure(t *testing.T) {
	for _, m := range Modes() {
		if SourceFor(m) != SourceFor(m) {
			t.Errorf("SourceFor(%v) is not stable", m)
		}
	}
}

func TestCustomFallbackSource(t *testing.T) {
	if !strings.HasPrefix(CustomFallbackSource, fragmentSignature) {
		t.Errorf("fallback does not define get_fragment_color")
	}
	if !strings.Contains(CustomFallbackSource, "vec4<f32>(1.0, 0.0, 0.0, 1.0)") {
		t.Errorf("fallback should be flat red:\n%s", CustomFallbackSource)
	}
}

func TestTemplatePlaceholder(t *testing.T) {
	if n := strings.Count(Template(), SourcePlaceholder); n != 1 {
		t.Fatalf("template has %d placeholders, want 1", n)
	}
	baked := BakeShader(Template(), SourceFor(ModeDepth))
	if strings.Contains(baked, SourcePlaceholder) {
		t.Error("baked shader still contains the placeholder")
	}
	if !strings.Contains(baked, SourceFor(ModeDepth)) {
		t.Error("baked shader does not contain the body")
	}
	for _, entry := range []string{"fn vs_main", "fn fs_main"} {
		if !strings.Contains(baked, entry) {
			t.Errorf("baked shader has no %s", entry)
		}
	}
}

func TestTemplateDeclaresEverySlot(t *testing.T) {
	tmpl := Template()
	for _, b := range render.SlotBindings {
		decl := fmt.Sprintf("@group(0) @binding(%d) var %s:", b.Binding(), b.Name)
		if b.Kind == render.SlotKindUniform {
			decl = fmt.Sprintf("@group(0) @binding(%d) var<uniform> %s:", b.Binding(), b.Name)
		}
		if !strings.Contains(tmpl, decl) {
			t.Errorf("template lacks %q", decl)
		}
	}
}

func TestBakeShaderPanicsWithoutPlaceholder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("BakeShader without placeholder should panic")
		}
	}()
	BakeShader("@fragment fn fs_main() {}", albedoBody)
}
