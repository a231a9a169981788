package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Per-instance layout: a column-major model matrix followed by an alpha.
const instanceFloats = 17

// instancedMesh is one box geometry drawn at many transforms.
type instancedMesh struct {
	name      string
	kind      material.Kind
	style     material.Style
	mode      uint32 // gl.TRIANGLES or gl.LINES
	vao       uint32
	vbo       uint32
	ibo       uint32
	vertices  int32
	instances int32
}

func newInstancedMesh(name string, kind material.Kind, style material.Style, size math.Vec3, instances []float32, dynamic bool) *instancedMesh {
	m := &instancedMesh{
		name:      name,
		kind:      kind,
		style:     style,
		instances: int32(len(instances) / instanceFloats),
	}

	// Interleaved position + normal.
	var verts []float32
	if kind == material.Wire {
		m.mode = gl.LINES
		for _, p := range building.BoxEdges(size) {
			verts = append(verts, p.X, p.Y, p.Z, 0, 0, 0)
		}
	} else {
		m.mode = gl.TRIANGLES
		for _, v := range building.BoxTriangles(size) {
			verts = append(verts, v.Position.X, v.Position.Y, v.Position.Z, v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
	}
	m.vertices = int32(len(verts) / 6)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	usage := uint32(gl.STATIC_DRAW)
	if dynamic {
		usage = gl.DYNAMIC_DRAW
	}
	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ARRAY_BUFFER, len(instances)*4, gl.Ptr(instances), usage)
	const stride = instanceFloats * 4
	for col := uint32(0); col < 4; col++ {
		loc := 2 + col
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(col)*4*4))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.VertexAttribPointer(6, 1, gl.FLOAT, false, stride, gl.PtrOffset(16*4))
	gl.EnableVertexAttribArray(6)
	gl.VertexAttribDivisor(6, 1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

// updateInstances rewrites the instance buffer in place.
func (m *instancedMesh) updateInstances(data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.ibo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *instancedMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArraysInstanced(m.mode, 0, m.vertices, m.instances)
	gl.BindVertexArray(0)
}

func (m *instancedMesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ibo)
}

// packInstances flattens transforms into the instance layout with a shared alpha.
func packInstances(transforms []math.Mat4, alpha float32) []float32 {
	out := make([]float32, 0, len(transforms)*instanceFloats)
	for _, m := range transforms {
		out = append(out, m[:]...)
		out = append(out, alpha)
	}
	return out
}

// packGlow writes one instance per glow line into dst, reusing its storage.
func packGlow(dst []float32, lines []building.GlowLine) []float32 {
	dst = dst[:0]
	for _, l := range lines {
		m := math.Translate(0, l.Y, 0)
		dst = append(dst, m[:]...)
		dst = append(dst, l.Opacity)
	}
	return dst
}

// pointMesh is the dust cloud, re-uploaded every frame.
type pointMesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

func newPointMesh(positions []float32) *pointMesh {
	m := &pointMesh{count: int32(len(positions) / 3)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(positions) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STREAM_DRAW)
	}
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *pointMesh) update(positions []float32) {
	if len(positions) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*4, gl.Ptr(positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *pointMesh) draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.POINTS, 0, m.count)
	gl.BindVertexArray(0)
}

func (m *pointMesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
}

// lineMesh is a static set of coloured line segments.
type lineMesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

func newLineMesh(vertices []building.LineVertex) *lineMesh {
	data := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		data = append(data, v.Position.X, v.Position.Y, v.Position.Z, v.Color[0], v.Color[1], v.Color[2])
	}

	m := &lineMesh{count: int32(len(vertices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *lineMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.LINES, 0, m.count)
	gl.BindVertexArray(0)
}

func (m *lineMesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
}

// Upload creates the GPU copies of the blueprint. Building batches and the
// grid are static; glow alphas and dust positions are refreshed every frame.
func (r *Renderer) Upload(bp *building.Blueprint) error {
	for _, b := range bp.Batches {
		r.batches = append(r.batches, newInstancedMesh(
			b.Name, b.Material, material.StyleFor(b.Material), b.Size,
			packInstances(b.Instances, 1), false,
		))
	}

	r.glowData = packGlow(nil, bp.GlowLines)
	r.glow = newInstancedMesh("glow", material.Solid, material.GlowStyle, bp.GlowSize, r.glowData, true)
	r.dust = newPointMesh(bp.Particles.Positions)
	r.grid = newLineMesh(bp.Grid.Vertices)
	r.gridAlpha = building.GridOpacity

	if err := glError("upload"); err != nil {
		return err
	}
	r.log.Debug("scene uploaded",
		zap.Int("batches", len(r.batches)),
		zap.Int("glow_lines", len(bp.GlowLines)),
		zap.Int32("particles", r.dust.count),
		zap.Int32("grid_vertices", r.grid.count),
	)
	return nil
}
