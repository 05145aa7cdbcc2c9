package spade

import "github.com/unixpickle/model3d/model3d"

const minTriangleArea = 1e-12

// ProfileMesh triangulates a profile into a ribbon connecting the left,
// center and right points of consecutive samples.
//
// For a path walked in its own direction, triangle normals point up.
// The end pin is not part of the mesh.
func ProfileMesh(p Profile) *model3d.Mesh {
	mesh := model3d.NewMesh()
	samples := p.Samples()
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		addQuad(mesh, a.Left, a.Center, b.Center, b.Left)
		addQuad(mesh, a.Center, a.Right, b.Right, b.Center)
	}
	return mesh
}

func addQuad(m *model3d.Mesh, p1, p2, p3, p4 model3d.Coord3D) {
	for _, t := range []*model3d.Triangle{{p1, p2, p3}, {p1, p3, p4}} {
		if t.Area() > minTriangleArea {
			m.Add(t)
		}
	}
}
