// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gbufview/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// quadVertexCount is the number of vertices of a quad drawn as a triangle
// list.
const quadVertexCount = 6

// quadBufferSize is the byte size of one quad's vertex buffer.
const quadBufferSize = quadVertexCount * quadVertexStride

type quadEntry struct {
	buf   hal.Buffer
	rect  render.Rect
	color render.Color
	valid bool
}

// QuadCache hands out geometry IDs and keeps one vertex buffer per ID,
// re-uploading it only when the rectangle or color changes.
//
// IDs increase monotonically and are never reused. QuadCache is not safe
// for concurrent use.
type QuadCache struct {
	device  hal.Device
	queue   hal.Queue
	nextID  render.GeometryID
	entries map[render.GeometryID]*quadEntry
	uploads int
}

// NewQuadCache creates an empty cache on device and queue.
func NewQuadCache(device hal.Device, queue hal.Queue) *QuadCache {
	return &QuadCache{
		device:  device,
		queue:   queue,
		nextID:  render.InvalidGeometryID,
		entries: make(map[render.GeometryID]*quadEntry),
	}
}

// AllocateID reserves a new geometry ID. The vertex buffer is created on
// first use.
func (c *QuadCache) AllocateID() render.GeometryID {
	c.nextID++
	c.entries[c.nextID] = &quadEntry{}
	return c.nextID
}

// ReleaseID destroys the buffer of id. Unknown IDs are ignored.
func (c *QuadCache) ReleaseID(id render.GeometryID) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	if e.buf != nil && c.device != nil {
		c.device.DestroyBuffer(e.buf)
	}
	delete(c.entries, id)
	slogger().Info("gpu: geometry released", "id", id.String())
}

// Len returns the number of live IDs.
func (c *QuadCache) Len() int { return len(c.entries) }

// Uploads returns how many times vertex data was written to the GPU.
func (c *QuadCache) Uploads() int { return c.uploads }

// Buffer returns the vertex buffer of id filled for rect and color,
// creating or updating it as needed.
func (c *QuadCache) Buffer(id render.GeometryID, rect render.Rect, color render.Color) (hal.Buffer, error) {
	e, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("gpu: unknown geometry %v", id)
	}
	if e.buf == nil {
		buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "quad_" + id.String(),
			Size:  quadBufferSize,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("create quad vertex buffer: %w", err)
		}
		e.buf = buf
	}
	if !e.valid || e.rect != rect || e.color != color {
		c.queue.WriteBuffer(e.buf, 0, QuadVertices(rect, color))
		e.rect, e.color, e.valid = rect, color, true
		c.uploads++
	}
	return e.buf, nil
}

// Destroy releases every buffer and forgets all IDs.
func (c *QuadCache) Destroy() {
	for id := range c.entries {
		c.ReleaseID(id)
	}
}

// QuadVertices returns the interleaved vertex data of a quad covering rect
// in normalized device coordinates. UVs run from (0,0) at the top-left to
// (1,1) at the bottom-right, matching texture row order.
func QuadVertices(rect render.Rect, color render.Color) []byte {
	type vtx struct{ x, y, u, v float32 }
	corners := [quadVertexCount]vtx{
		{rect.MinX, rect.MinY, 0, 1},
		{rect.MaxX, rect.MinY, 1, 1},
		{rect.MaxX, rect.MaxY, 1, 0},
		{rect.MinX, rect.MinY, 0, 1},
		{rect.MaxX, rect.MaxY, 1, 0},
		{rect.MinX, rect.MaxY, 0, 0},
	}

	data := make([]byte, 0, quadBufferSize)
	put := func(f float32) {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	for _, c := range corners {
		put(c.x)
		put(c.y)
		put(c.u)
		put(c.v)
		put(color.R)
		put(color.G)
		put(color.B)
		put(color.A)
	}
	return data
}
