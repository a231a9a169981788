package building

import "github.com/Faultbox/diwan-tower/pkg/math"

// BoxVertex is a position + normal pair.
type BoxVertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// BoxTriangles returns 36 vertices (12 triangles) of an axis-aligned box of
// the given size centred on the origin, counter-clockwise winding.
func BoxTriangles(size math.Vec3) []BoxVertex {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2

	type face struct {
		n       math.Vec3
		corners [4]math.Vec3
	}
	faces := [6]face{
		{math.Vec3{X: 1}, [4]math.Vec3{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{math.Vec3{Z: 1}, [4]math.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}

	out := make([]BoxVertex, 0, 36)
	for _, f := range faces {
		c := f.corners
		for _, idx := range [6]int{0, 1, 2, 0, 2, 3} {
			out = append(out, BoxVertex{Position: c[idx], Normal: f.n})
		}
	}
	return out
}

// BoxEdges returns 24 vertices (12 edges × 2 endpoints) outlining a box of
// the given size centred on the origin.
func BoxEdges(size math.Vec3) []math.Vec3 {
	minX, minY, minZ := -size.X/2, -size.Y/2, -size.Z/2
	maxX, maxY, maxZ := size.X/2, size.Y/2, size.Z/2

	return []math.Vec3{
		// Bottom face
		{minX, minY, minZ}, {maxX, minY, minZ},
		{maxX, minY, minZ}, {maxX, minY, maxZ},
		{maxX, minY, maxZ}, {minX, minY, maxZ},
		{minX, minY, maxZ}, {minX, minY, minZ},
		// Top face
		{minX, maxY, minZ}, {maxX, maxY, minZ},
		{maxX, maxY, minZ}, {maxX, maxY, maxZ},
		{maxX, maxY, maxZ}, {minX, maxY, maxZ},
		{minX, maxY, maxZ}, {minX, maxY, minZ},
		// Verticals
		{minX, minY, minZ}, {minX, maxY, minZ},
		{maxX, minY, minZ}, {maxX, maxY, minZ},
		{maxX, minY, maxZ}, {maxX, maxY, maxZ},
		{minX, minY, maxZ}, {minX, maxY, maxZ},
	}
}

// BoxEdgeVertexCount is len(BoxEdges(...)).
const BoxEdgeVertexCount = 24
