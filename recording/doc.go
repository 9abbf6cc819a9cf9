// Package recording provides the per-frame draw context of the debug
// visualizer.
//
// Passes do not talk to the GPU directly. They append typed commands to a
// Recorder (the frame's batch); the render loop then plays the finished
// Recording back to a Backend, which may be the HAL backend issuing real
// draws or one of the inspection backends registered by name.
//
// Design follows the typed-command approach: every command is a plain struct
// that can be inspected, counted and replayed any number of times.
//
// # Architecture
//
// Commands capture the draw context state and draws:
//   - Transform commands (SetViewport, SetProjectionTransform,
//     SetViewTransform, SetModelTransform)
//   - Program commands (SetPipeline)
//   - Binding commands (SetResourceTexture, SetUniformBuffer); a nil
//     resource unbinds the slot
//   - Drawing commands (DrawQuad)
//
// # Example
//
//	rec := recording.NewRecorder(render.NewViewport(1280, 720))
//	rec.SetPipeline(p)
//	rec.SetResourceTexture(render.SlotAlbedo, albedo)
//	rec.DrawQuad(id, render.FullScreen, render.White)
//	rec.SetResourceTexture(render.SlotAlbedo, nil)
//
//	r := rec.FinishRecording()
//	r.Playback(backend)
//
// # Backends
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    "github.com/gogpu/gbufview/recording"
//	    _ "github.com/gogpu/gbufview/recording/backends/state" // "state"
//	    _ "github.com/gogpu/gbufview/recording/backends/trace" // "trace"
//	)
//
//	backend, err := recording.NewBackend("trace")
//
// The HAL backend that issues real GPU draws needs a device and a target, so
// it is constructed directly rather than through the registry.
//
// # Custom Backends
//
// Implement the [Backend] interface and register it with [Register]:
//
//	func init() {
//	    recording.Register("mybackend", func() recording.Backend {
//	        return NewMyBackend()
//	    })
//	}
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. A frame is recorded on one
// goroutine. Recording objects are immutable after FinishRecording and can
// be played back several times, one backend at a time.
package recording
