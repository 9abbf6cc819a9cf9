// Package gbufview draws debug views of the intermediate buffers of a
// deferred renderer: albedo, normals, depth, shadow cascades, curvature,
// ambient occlusion, velocity and more.
//
// # Overview
//
// An operator picks a Mode. Each frame the Compositor records a full-screen
// quad whose fragment shader colorizes the buffer that mode is about:
//
//	dev, _ := gbufview.AttachDevice(host)
//	comp, _ := dev.NewCompositor()
//	comp.Configure(gbufview.Config{Mode: int(gbufview.ModeNormal), Viewport: render.FullScreen})
//
//	rec := recording.NewRecorder(viewport)
//	_ = comp.Run(&gbufview.RenderContext{Batch: rec, Viewport: viewport, Frustum: frustum}, inputs)
//	backend, _ := dev.NewBackend(target, false)
//	_ = rec.FinishRecording().Playback(backend)
//
// # Shaders
//
// Every mode has a shader body (SourceFor) defining get_fragment_color.
// Bodies are spliced into one template (Template, BakeShader) that declares
// every texture and uniform slot of render.SlotBindings, so all debug
// pipelines share one layout.
//
// ModeCustom reads its body from a file (LoadCustomShader). The
// PipelineCache checks the file's modification time on every Get and
// rebuilds when it changed, so edits show up on the next frame. A file that
// is missing or does not compile is drawn with CustomFallbackSource, a flat
// red.
//
// # Headless
//
// OpenHeadless runs the same pipeline on the noop HAL device. NewTarget and
// Target.Snapshot give CPU access to what a frame drew; cmd/gbufview builds
// on them.
//
// # Logging
//
// gbufview is silent by default. SetLogger enables log/slog output for the
// package and its GPU backend.
package gbufview
