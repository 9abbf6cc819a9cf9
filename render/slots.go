// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// TextureSlot is a numbered texture binding point of the debug program.
type TextureSlot int

const (
	SlotAlbedo TextureSlot = iota
	SlotNormal
	SlotSpecular
	SlotDepth
	SlotLighting
	SlotShadow
	SlotLinearDepth
	SlotHalfLinearDepth
	SlotHalfNormal
	SlotCurvature
	SlotDiffusedCurvature
	SlotScattering
	SlotAmbientOcclusion
	SlotAmbientOcclusionBlurred
	SlotVelocity

	// NumTextureSlots is the number of texture slots.
	NumTextureSlots = int(SlotVelocity) + 1
)

// ParamSlot is a numbered uniform-buffer binding point of the debug program.
type ParamSlot int

const (
	ParamCameraCorrection ParamSlot = iota
	ParamDeferredFrameTransform
	ParamShadowTransform

	// NumParamSlots is the number of uniform-buffer slots.
	NumParamSlots = int(ParamShadowTransform) + 1
)

// ParamBindingBase is the WGSL @binding index of the first ParamSlot.
// Texture slots occupy bindings [0, NumTextureSlots).
const ParamBindingBase = 16

var textureSlotNames = [...]string{
	SlotAlbedo:                  "Albedo",
	SlotNormal:                  "Normal",
	SlotSpecular:                "Specular",
	SlotDepth:                   "Depth",
	SlotLighting:                "Lighting",
	SlotShadow:                  "Shadow",
	SlotLinearDepth:             "LinearDepth",
	SlotHalfLinearDepth:         "HalfLinearDepth",
	SlotHalfNormal:              "HalfNormal",
	SlotCurvature:               "Curvature",
	SlotDiffusedCurvature:       "DiffusedCurvature",
	SlotScattering:              "Scattering",
	SlotAmbientOcclusion:        "AmbientOcclusion",
	SlotAmbientOcclusionBlurred: "AmbientOcclusionBlurred",
	SlotVelocity:                "Velocity",
}

// String returns the slot name.
func (s TextureSlot) String() string {
	if s >= 0 && int(s) < len(textureSlotNames) {
		return textureSlotNames[s]
	}
	return "Unknown"
}

// Binding returns the WGSL @binding index of the slot.
func (s TextureSlot) Binding() uint32 {
	return uint32(s) //nolint:gosec // slots are small non-negative constants
}

var paramSlotNames = [...]string{
	ParamCameraCorrection:       "CameraCorrection",
	ParamDeferredFrameTransform: "DeferredFrameTransform",
	ParamShadowTransform:        "ShadowTransform",
}

// String returns the slot name.
func (s ParamSlot) String() string {
	if s >= 0 && int(s) < len(paramSlotNames) {
		return paramSlotNames[s]
	}
	return "Unknown"
}

// Binding returns the WGSL @binding index of the slot.
func (s ParamSlot) Binding() uint32 {
	return ParamBindingBase + uint32(s) //nolint:gosec // slots are small non-negative constants
}

// SlotKind distinguishes texture slots from uniform-buffer slots.
type SlotKind uint8

const (
	SlotKindTexture SlotKind = iota
	SlotKindUniform
)

// SlotBinding associates a shader-visible variable name with its slot.
type SlotBinding struct {
	// Name is the WGSL variable name declared by the shader template.
	Name string

	// Kind selects which of Texture or Param is meaningful.
	Kind SlotKind

	Texture TextureSlot
	Param   ParamSlot
}

// Binding returns the WGSL @binding index for this entry.
func (b SlotBinding) Binding() uint32 {
	if b.Kind == SlotKindUniform {
		return b.Param.Binding()
	}
	return b.Texture.Binding()
}

// SlotBindings is the static name to slot table shared by every debug
// program. Slots a mode does not read are still declared; that mode simply
// never binds them.
var SlotBindings = [...]SlotBinding{
	{Name: "cameraCorrectionBuffer", Kind: SlotKindUniform, Param: ParamCameraCorrection},
	{Name: "deferredFrameTransformBuffer", Kind: SlotKindUniform, Param: ParamDeferredFrameTransform},
	{Name: "shadowTransformBuffer", Kind: SlotKindUniform, Param: ParamShadowTransform},

	{Name: "albedoMap", Kind: SlotKindTexture, Texture: SlotAlbedo},
	{Name: "normalMap", Kind: SlotKindTexture, Texture: SlotNormal},
	{Name: "specularMap", Kind: SlotKindTexture, Texture: SlotSpecular},
	{Name: "depthMap", Kind: SlotKindTexture, Texture: SlotDepth},
	{Name: "obscuranceMap", Kind: SlotKindTexture, Texture: SlotAmbientOcclusion},
	{Name: "lightingMap", Kind: SlotKindTexture, Texture: SlotLighting},
	{Name: "shadowMap", Kind: SlotKindTexture, Texture: SlotShadow},
	{Name: "linearDepthMap", Kind: SlotKindTexture, Texture: SlotLinearDepth},
	{Name: "halfLinearDepthMap", Kind: SlotKindTexture, Texture: SlotHalfLinearDepth},
	{Name: "halfNormalMap", Kind: SlotKindTexture, Texture: SlotHalfNormal},
	{Name: "curvatureMap", Kind: SlotKindTexture, Texture: SlotCurvature},
	{Name: "diffusedCurvatureMap", Kind: SlotKindTexture, Texture: SlotDiffusedCurvature},
	{Name: "scatteringMap", Kind: SlotKindTexture, Texture: SlotScattering},
	{Name: "occlusionBlurredMap", Kind: SlotKindTexture, Texture: SlotAmbientOcclusionBlurred},
	{Name: "velocityMap", Kind: SlotKindTexture, Texture: SlotVelocity},
}

// LookupSlot returns the binding registered under name.
func LookupSlot(name string) (SlotBinding, bool) {
	for _, b := range SlotBindings {
		if b.Name == name {
			return b, true
		}
	}
	return SlotBinding{}, false
}
