package gbufview

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Mode selects which intermediate buffer the compositor visualizes.
type Mode int

const (
	ModeAlbedo Mode = iota
	ModeMetallic
	ModeRoughness
	ModeNormal
	ModeDepth
	ModeEmissive
	ModeUnlit
	ModeOcclusion
	ModeLightmap
	ModeScattering
	ModeLighting
	ModeShadowCascade0
	ModeShadowCascade1
	ModeShadowCascade2
	ModeShadowCascade3
	ModeShadowCascadeIndices
	ModeLinearDepth
	ModeHalfLinearDepth
	ModeHalfNormal
	ModeCurvature
	ModeNormalCurvature
	ModeDiffusedCurvature
	ModeDiffusedNormalCurvature
	ModeCurvatureOcclusion
	ModeScatteringDebug
	ModeAmbientOcclusion
	ModeAmbientOcclusionBlurred
	ModeVelocity

	// ModeCustom draws the body read from the custom shader file.
	ModeCustom

	// ModeOff disables the compositor: no commands are recorded.
	ModeOff
)

var modeNames = [...]string{
	ModeAlbedo:                  "Albedo",
	ModeMetallic:                "Metallic",
	ModeRoughness:               "Roughness",
	ModeNormal:                  "Normal",
	ModeDepth:                   "Depth",
	ModeEmissive:                "Emissive",
	ModeUnlit:                   "Unlit",
	ModeOcclusion:               "Occlusion",
	ModeLightmap:                "Lightmap",
	ModeScattering:              "Scattering",
	ModeLighting:                "Lighting",
	ModeShadowCascade0:          "ShadowCascade0",
	ModeShadowCascade1:          "ShadowCascade1",
	ModeShadowCascade2:          "ShadowCascade2",
	ModeShadowCascade3:          "ShadowCascade3",
	ModeShadowCascadeIndices:    "ShadowCascadeIndices",
	ModeLinearDepth:             "LinearDepth",
	ModeHalfLinearDepth:         "HalfLinearDepth",
	ModeHalfNormal:              "HalfNormal",
	ModeCurvature:               "Curvature",
	ModeNormalCurvature:         "NormalCurvature",
	ModeDiffusedCurvature:       "DiffusedCurvature",
	ModeDiffusedNormalCurvature: "DiffusedNormalCurvature",
	ModeCurvatureOcclusion:      "CurvatureOcclusion",
	ModeScatteringDebug:         "ScatteringDebug",
	ModeAmbientOcclusion:        "AmbientOcclusion",
	ModeAmbientOcclusionBlurred: "AmbientOcclusionBlurred",
	ModeVelocity:                "Velocity",
	ModeCustom:                  "Custom",
	ModeOff:                     "Off",
}

// String returns the mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is a defined mode.
func (m Mode) Valid() bool {
	return m >= ModeAlbedo && m <= ModeOff
}

// IsShadowCascade reports whether m shows one shadow cascade map.
func (m Mode) IsShadowCascade() bool {
	return m >= ModeShadowCascade0 && m <= ModeShadowCascade3
}

// CascadeIndex returns the cascade a shadow mode asks for. It is not
// range-checked; see ClampCascadeIndex.
func (m Mode) CascadeIndex() int {
	return int(m - ModeShadowCascade0)
}

// Modes returns every defined mode in order.
func Modes() []Mode {
	modes := make([]Mode, 0, len(modeNames))
	for m := ModeAlbedo; m <= ModeOff; m++ {
		modes = append(modes, m)
	}
	return modes
}

// ParseMode returns the mode named name. Matching ignores case (Unicode
// case folding), surrounding space and a "Mode" prefix or suffix, so
// "albedo", "ALBEDO", "ModeAlbedo" and "AlbedoMode" all name ModeAlbedo.
func ParseMode(name string) (Mode, error) {
	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(name))
	key = strings.TrimSuffix(strings.TrimPrefix(key, "mode"), "mode")
	if key == "" {
		return ModeOff, errors.New("gbufview: empty mode name")
	}
	for i, n := range modeNames {
		if fold.String(n) == key {
			return Mode(i), nil
		}
	}
	return ModeOff, fmt.Errorf("gbufview: unknown mode %q", name)
}
