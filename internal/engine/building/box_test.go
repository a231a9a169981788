package building

import (
	"testing"

	"github.com/Faultbox/diwan-tower/pkg/math"
)

func TestBoxTrianglesFaceOutward(t *testing.T) {
	verts := BoxTriangles(math.Vec3{X: 2, Y: 4, Z: 6})
	if len(verts) != 36 {
		t.Fatalf("got %d vertices, want 36", len(verts))
	}
	for i := 0; i < len(verts); i += 3 {
		a, b, c := verts[i].Position, verts[i+1].Position, verts[i+2].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(verts[i].Normal) <= 0 {
			t.Errorf("triangle %d winds against its normal %v", i/3, verts[i].Normal)
		}
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if centroid.Dot(verts[i].Normal) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i/3, verts[i].Normal)
		}
	}
}

func TestBoxEdges(t *testing.T) {
	edges := BoxEdges(math.Vec3{X: 2, Y: 2, Z: 2})
	if len(edges) != BoxEdgeVertexCount {
		t.Fatalf("got %d vertices, want %d", len(edges), BoxEdgeVertexCount)
	}
	for i := 0; i < len(edges); i += 2 {
		if d := edges[i].Distance(edges[i+1]); d != 2 {
			t.Errorf("edge %d length = %v, want 2", i/2, d)
		}
	}
}
