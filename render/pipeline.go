// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Default shader entry points of a debug program.
const (
	DefaultVertexEntryPoint   = "vs_main"
	DefaultFragmentEntryPoint = "fs_main"
)

// Pipeline is an opaque compiled GPU program.
//
// Pipelines are created by a compiler and owned by whoever asked for them;
// Destroy releases the GPU objects and must be called at most once.
type Pipeline interface {
	// Label returns a debug label, unique per cache key.
	Label() string

	// Source returns the complete shader text the pipeline was built from.
	Source() string

	// Destroy releases the GPU resources held by the pipeline.
	Destroy()
}

// ProgramDescriptor describes a program to compile: shader text plus the
// slot bindings the shader declares.
type ProgramDescriptor struct {
	Label  string
	Source string

	// VertexEntryPoint defaults to DefaultVertexEntryPoint when empty.
	VertexEntryPoint string

	// FragmentEntryPoint defaults to DefaultFragmentEntryPoint when empty.
	FragmentEntryPoint string

	// Bindings lists the name to slot table the program is laid out with.
	Bindings []SlotBinding
}

// EntryPoints returns the vertex and fragment entry points with defaults
// applied.
func (d *ProgramDescriptor) EntryPoints() (vertex, fragment string) {
	vertex, fragment = d.VertexEntryPoint, d.FragmentEntryPoint
	if vertex == "" {
		vertex = DefaultVertexEntryPoint
	}
	if fragment == "" {
		fragment = DefaultFragmentEntryPoint
	}
	return vertex, fragment
}

// DefaultBindings returns a fresh copy of SlotBindings.
func DefaultBindings() []SlotBinding {
	out := make([]SlotBinding, len(SlotBindings))
	copy(out, SlotBindings[:])
	return out
}
