package gbufview

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gogpu/gbufview/internal/watch"
	"github.com/gogpu/gbufview/render"
)

// SourcePlaceholder marks where a shader body is spliced into the
// template. The template must contain it exactly once.
const SourcePlaceholder = "//SOURCE_PLACEHOLDER"

//go:embed shaders/debug_deferred_buffer.wgsl
var debugDeferredBufferTemplate string

// Template returns the embedded shader template.
func Template() string { return debugDeferredBufferTemplate }

// BakeShader replaces the placeholder in template with body.
// It panics if the placeholder is missing: the template is corrupt.
func BakeShader(template, body string) string {
	i := strings.Index(template, SourcePlaceholder)
	if i < 0 {
		panic("gbufview: shader template has no " + SourcePlaceholder)
	}
	return template[:i] + body + template[i+len(SourcePlaceholder):]
}

// Compiler turns a baked program into a pipeline.
// internal/gpu.ProgramCompiler implements it on a wgpu HAL device.
type Compiler interface {
	Compile(desc render.ProgramDescriptor) (render.Pipeline, error)
}

// customEntry is the cache slot of one custom shader file.
type customEntry struct {
	pipeline render.Pipeline

	// built is the file's modification time when pipeline was compiled.
	built time.Time

	// watched is set once the path is in the watcher; owned when this
	// cache added it there.
	watched bool
	owned   bool
}

// CacheOption configures a PipelineCache.
type CacheOption func(*PipelineCache)

// WithTemplate replaces the embedded shader template.
func WithTemplate(src string) CacheOption {
	return func(c *PipelineCache) {
		c.template = src
	}
}

// WithWatcher makes the cache register custom files in w instead of a
// private watcher. The watcher may be shared: Destroy removes only the
// paths this cache added.
func WithWatcher(w *watch.Watcher) CacheOption {
	return func(c *PipelineCache) {
		if w != nil {
			c.watcher = w
		}
	}
}

// PipelineCache owns the compiled debug pipelines: one per built-in mode
// and one per custom shader file.
//
// Built-in entries are built on first use and stay until invalidated.
// Custom entries are additionally rebuilt whenever the file's modification
// time changes; Get checks it on every call. Custom entries are never
// evicted, so the table grows with every distinct path referenced.
//
// PipelineCache is not safe for concurrent use.
type PipelineCache struct {
	compiler Compiler
	template string
	watcher  *watch.Watcher

	builtin [ModeCustom]render.Pipeline
	custom  map[string]*customEntry
	builds  int
}

// NewPipelineCache creates an empty cache compiling with compiler.
func NewPipelineCache(compiler Compiler, opts ...CacheOption) *PipelineCache {
	c := &PipelineCache{
		compiler: compiler,
		template: debugDeferredBufferTemplate,
		custom:   make(map[string]*customEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.watcher == nil {
		c.watcher = watch.New()
	}
	return c
}

// builtinIndex maps a non-custom mode to its table index. Values without a
// body of their own share the albedo entry, matching SourceFor.
func builtinIndex(mode Mode) int {
	if mode < ModeAlbedo || mode >= ModeCustom {
		return int(ModeAlbedo)
	}
	return int(mode)
}

// Get returns the pipeline for mode, or for customPath when mode is
// ModeCustom. While nothing changed it returns the same handle every call.
func (c *PipelineCache) Get(mode Mode, customPath string) (render.Pipeline, error) {
	if !c.NeedsUpdate(mode, customPath) {
		if mode == ModeCustom {
			return c.custom[customPath].pipeline, nil
		}
		Logger().Debug("gbufview: pipeline cache hit", "mode", mode.String())
		return c.builtin[builtinIndex(mode)], nil
	}
	return c.Rebuild(mode, customPath)
}

// NeedsUpdate reports whether Get would rebuild. Built-in modes need an
// update only when never built. Custom entries also need one when the
// file's modification time differs from the one recorded at the last
// successful build. NeedsUpdate records nothing.
func (c *PipelineCache) NeedsUpdate(mode Mode, customPath string) bool {
	if mode != ModeCustom {
		return c.builtin[builtinIndex(mode)] == nil
	}
	e, ok := c.custom[customPath]
	if !ok || e.pipeline == nil {
		return true
	}
	if !e.watched {
		return false
	}
	return !c.watcher.Current(customPath).Equal(e.built)
}

// Rebuild compiles the pipeline for mode (or customPath) unconditionally,
// stores it and destroys the one it replaces.
//
// A custom body that does not compile is replaced by CustomFallbackSource,
// so custom mode yields a pipeline whenever the template itself is sound.
func (c *PipelineCache) Rebuild(mode Mode, customPath string) (render.Pipeline, error) {
	if c.compiler == nil {
		return nil, ErrNilCompiler
	}
	if mode == ModeCustom {
		return c.rebuildCustom(customPath)
	}

	idx := builtinIndex(mode)
	key := Mode(idx)
	p, err := c.compile(key.String(), SourceFor(key))
	if err != nil {
		return nil, fmt.Errorf("gbufview: build %v pipeline: %w", key, err)
	}
	if old := c.builtin[idx]; old != nil {
		old.Destroy()
	}
	c.builtin[idx] = p
	Logger().Debug("gbufview: pipeline built", "mode", key.String())
	return p, nil
}

func (c *PipelineCache) rebuildCustom(path string) (render.Pipeline, error) {
	e, ok := c.custom[path]
	if !ok {
		e = &customEntry{}
		c.custom[path] = e
	}

	// Stamp before reading, so an edit landing after the read is seen by
	// the next check.
	stamp := c.watcher.Current(path)

	label := "Custom:" + path
	p, err := c.compile(label, LoadCustomShader(path))
	if err != nil {
		Logger().Warn("gbufview: custom shader failed to compile, using fallback",
			"path", path, "error", err)
		p, err = c.compile(label, CustomFallbackSource)
		if err != nil {
			return nil, fmt.Errorf("gbufview: build custom fallback pipeline: %w", err)
		}
	}
	if e.pipeline != nil {
		e.pipeline.Destroy()
	}
	e.pipeline = p
	e.built = stamp
	c.watch(path, e)
	Logger().Debug("gbufview: custom pipeline built", "path", path)
	return p, nil
}

// watch registers path with the watcher once. A path another owner already
// watches is used but not owned.
func (c *PipelineCache) watch(path string, e *customEntry) {
	if e.watched {
		return
	}
	if c.watcher.Watches(path) {
		e.watched = true
		return
	}
	if err := c.watcher.Add(path); err != nil {
		Logger().Warn("gbufview: custom shader not watched", "path", path, "error", err)
		return
	}
	e.watched, e.owned = true, true
}

func (c *PipelineCache) compile(label, body string) (render.Pipeline, error) {
	p, err := c.compiler.Compile(render.ProgramDescriptor{
		Label:    label,
		Source:   BakeShader(c.template, body),
		Bindings: render.DefaultBindings(),
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("compiler returned no pipeline")
	}
	c.builds++
	return p, nil
}

// Invalidate drops the built-in pipeline of mode, or every custom pipeline
// when mode is ModeCustom. The next Get rebuilds.
func (c *PipelineCache) Invalidate(mode Mode) {
	if mode != ModeCustom {
		idx := builtinIndex(mode)
		if p := c.builtin[idx]; p != nil {
			p.Destroy()
			c.builtin[idx] = nil
		}
		return
	}
	for _, e := range c.custom {
		if e.pipeline != nil {
			e.pipeline.Destroy()
			e.pipeline = nil
		}
	}
}

// InvalidateAll drops every pipeline. Custom entries and their watches are
// kept.
func (c *PipelineCache) InvalidateAll() {
	for m := ModeAlbedo; m < ModeCustom; m++ {
		c.Invalidate(m)
	}
	c.Invalidate(ModeCustom)
}

// CustomPaths returns the custom shader paths referenced so far, sorted.
func (c *PipelineCache) CustomPaths() []string {
	paths := make([]string, 0, len(c.custom))
	for p := range c.custom {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of built pipelines.
func (c *PipelineCache) Len() int {
	n := 0
	for _, p := range c.builtin {
		if p != nil {
			n++
		}
	}
	for _, e := range c.custom {
		if e.pipeline != nil {
			n++
		}
	}
	return n
}

// Builds returns how many pipelines the cache has compiled.
func (c *PipelineCache) Builds() int { return c.builds }

// Destroy releases every pipeline and removes the custom files this cache
// added to the watcher.
func (c *PipelineCache) Destroy() {
	c.InvalidateAll()
	for p, e := range c.custom {
		if e.owned {
			_ = c.watcher.Remove(p)
		}
	}
	c.custom = make(map[string]*customEntry)
}
