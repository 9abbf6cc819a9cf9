package gbufview

// Shader bodies. Each defines get_fragment_color, which the template's
// fragment entry point calls with the quad UV. Helpers such as texel and
// unpack_deferred_fragment_no_position are declared by the template.
const (
	albedoBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    return vec4<f32>(pow(frag.albedo, vec3<f32>(GAMMA)), 1.0);
}
`

	metallicBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    return vec4<f32>(vec3<f32>(pow(frag.metallic, GAMMA)), 1.0);
}
`

	roughnessBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    return vec4<f32>(vec3<f32>(pow(frag.roughness, GAMMA)), 1.0);
}
`

	normalBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    return vec4<f32>(vec3<f32>(0.5) + frag.normal * 0.5, 1.0);
}
`

	depthBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let d = textureLoad(depthMap, texel(textureDimensions(depthMap), uv), 0).x;
    return vec4<f32>(vec3<f32>(d), 1.0);
}
`

	emissiveBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    if (frag.mode != FRAG_MODE_SHADED) {
        return vec4<f32>(vec3<f32>(0.0), 1.0);
    }
    let emissive = textureLoad(specularMap, texel(textureDimensions(specularMap), uv), 0).rgb;
    return vec4<f32>(pow(emissive, vec3<f32>(GAMMA)), 1.0);
}
`

	unlitBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    if (frag.mode != FRAG_MODE_UNLIT) {
        return vec4<f32>(vec3<f32>(0.0), 1.0);
    }
    return vec4<f32>(pow(frag.albedo, vec3<f32>(GAMMA)), 1.0);
}
`

	occlusionBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let occlusion = textureLoad(specularMap, texel(textureDimensions(specularMap), uv), 0).a;
    return vec4<f32>(vec3<f32>(pow(occlusion, GAMMA)), 1.0);
}
`

	lightmapBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    if (frag.mode != FRAG_MODE_LIGHTMAPPED) {
        return vec4<f32>(vec3<f32>(0.0), 1.0);
    }
    let lightmap = textureLoad(specularMap, texel(textureDimensions(specularMap), uv), 0).rgb;
    return vec4<f32>(pow(lightmap, vec3<f32>(GAMMA)), 1.0);
}
`

	scatteringBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let frag = unpack_deferred_fragment_no_position(uv);
    if (frag.mode != FRAG_MODE_SCATTERING) {
        return vec4<f32>(vec3<f32>(0.0), 1.0);
    }
    return vec4<f32>(vec3<f32>(pow(frag.scattering, GAMMA)), 1.0);
}
`

	lightingBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let lighting = textureLoad(lightingMap, texel(textureDimensions(lightingMap), uv), 0).xyz;
    return vec4<f32>(pow(lighting, vec3<f32>(GAMMA)), 1.0);
}
`

	// shadowBody shows the stored depth of the bound cascade quantized to
	// 256 levels. The cascade itself is picked when the map is bound.
	shadowBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let d = textureLoad(shadowMap, texel(textureDimensions(shadowMap), uv), 0).x;
    return vec4<f32>(vec3<f32>(floor(clamp(d, 0.0, 1.0) * 255.0) / 255.0), 1.0);
}
`

	shadowCascadeIndicesBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    var cascade_colors = array<vec3<f32>, 4>(
        vec3<f32>(0.0, 1.0, 0.0),
        vec3<f32>(0.0, 0.0, 1.0),
        vec3<f32>(1.0, 0.0, 0.0),
        vec3<f32>(1.0, 1.0, 1.0),
    );
    let frag = unpack_deferred_fragment(uv);
    let view_depth = -frag.position.z;
    let cascades = determine_shadow_cascades(view_depth);
    let first = cascade_colors[i32(cascades.x)];
    let second = cascade_colors[i32(cascades.y)];
    let color = mix(first, second, cascades.z);
    return vec4<f32>(mix(vec3<f32>(0.0), color, eval_shadow_falloff(view_depth)), 1.0);
}
`

	linearDepthBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let d = textureLoad(linearDepthMap, texel(textureDimensions(linearDepthMap), uv), 0).x;
    return vec4<f32>(vec3<f32>(1.0 - d * 0.01), 1.0);
}
`

	halfLinearDepthBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let d = textureLoad(halfLinearDepthMap, texel(textureDimensions(halfLinearDepthMap), uv), 0).x;
    return vec4<f32>(vec3<f32>(1.0 - d * 0.01), 1.0);
}
`

	halfNormalBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let n = textureLoad(halfNormalMap, texel(textureDimensions(halfNormalMap), uv), 0).xyz;
    return vec4<f32>(n, 1.0);
}
`

	curvatureBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let k = textureLoad(curvatureMap, texel(textureDimensions(curvatureMap), uv), 0).a;
    return vec4<f32>(pow(vec3<f32>(k), vec3<f32>(GAMMA)), 1.0);
}
`

	normalCurvatureBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let n = textureLoad(curvatureMap, texel(textureDimensions(curvatureMap), uv), 0).xyz;
    return vec4<f32>(n, 1.0);
}
`

	diffusedCurvatureBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let k = textureLoad(diffusedCurvatureMap, texel(textureDimensions(diffusedCurvatureMap), uv), 0).a;
    return vec4<f32>(pow(vec3<f32>(k), vec3<f32>(GAMMA)), 1.0);
}
`

	diffusedNormalCurvatureBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let n = textureLoad(diffusedCurvatureMap, texel(textureDimensions(diffusedCurvatureMap), uv), 0).xyz;
    return vec4<f32>(n, 1.0);
}
`

	curvatureOcclusionBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let mid = unpack_mid_normal_curvature(uv);
    let low = unpack_low_normal_curvature(uv);
    let ao_low = curvature_ao(low.w * 20.0) * 0.5;
    let ao_high = curvature_ao(mid.w * 8.0) * 0.5;
    return vec4<f32>(vec3<f32>(min(ao_low, ao_high)), 1.0);
}
`

	scatteringDebugBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let s = textureLoad(scatteringMap, texel(textureDimensions(scatteringMap), uv), 0).xyz;
    return vec4<f32>(pow(s, vec3<f32>(GAMMA)), 1.0);
}
`

	ambientOcclusionBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let ao = textureLoad(obscuranceMap, texel(textureDimensions(obscuranceMap), uv), 0).x;
    return vec4<f32>(vec3<f32>(ao), 1.0);
}
`

	ambientOcclusionBlurredBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let ao = textureLoad(occlusionBlurredMap, texel(textureDimensions(occlusionBlurredMap), uv), 0).xyz;
    return vec4<f32>(ao, 1.0);
}
`

	velocityBody = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    let v = textureLoad(velocityMap, texel(textureDimensions(velocityMap), uv), 0).xy;
    return vec4<f32>(v, 0.0, 1.0);
}
`
)

// CustomFallbackSource is the body used in custom mode when the custom
// shader file cannot be read or does not compile. It paints the quad red.
const CustomFallbackSource = `fn get_fragment_color(uv: vec2<f32>) -> vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

// SourceFor returns the shader body that visualizes mode.
//
// All four shadow cascade modes share one body; the compositor picks the
// cascade when it binds the shadow map. ModeCustom has no built-in body and,
// like any other value without one, gets the albedo body. Custom text comes
// from LoadCustomShader.
func SourceFor(mode Mode) string {
	switch mode {
	case ModeAlbedo:
		return albedoBody
	case ModeMetallic:
		return metallicBody
	case ModeRoughness:
		return roughnessBody
	case ModeNormal:
		return normalBody
	case ModeDepth:
		return depthBody
	case ModeEmissive:
		return emissiveBody
	case ModeUnlit:
		return unlitBody
	case ModeOcclusion:
		return occlusionBody
	case ModeLightmap:
		return lightmapBody
	case ModeScattering:
		return scatteringBody
	case ModeLighting:
		return lightingBody
	case ModeShadowCascade0, ModeShadowCascade1, ModeShadowCascade2, ModeShadowCascade3:
		return shadowBody
	case ModeShadowCascadeIndices:
		return shadowCascadeIndicesBody
	case ModeLinearDepth:
		return linearDepthBody
	case ModeHalfLinearDepth:
		return halfLinearDepthBody
	case ModeHalfNormal:
		return halfNormalBody
	case ModeCurvature:
		return curvatureBody
	case ModeNormalCurvature:
		return normalCurvatureBody
	case ModeDiffusedCurvature:
		return diffusedCurvatureBody
	case ModeDiffusedNormalCurvature:
		return diffusedNormalCurvatureBody
	case ModeCurvatureOcclusion:
		return curvatureOcclusionBody
	case ModeScatteringDebug:
		return scatteringDebugBody
	case ModeAmbientOcclusion:
		return ambientOcclusionBody
	case ModeAmbientOcclusionBlurred:
		return ambientOcclusionBlurredBody
	case ModeVelocity:
		return velocityBody
	default:
		return albedoBody
	}
}
