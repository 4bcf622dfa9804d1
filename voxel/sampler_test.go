package voxel

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"github.com/t0oms/voxelize/scene"
)

type recordingRaycaster struct {
	mu   sync.Mutex
	rays []scene.Ray
}

func (r *recordingRaycaster) Raycast(ray scene.Ray) []scene.Hit {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rays = append(r.rays, ray)
	return nil
}

func unitCube() scene.Object3D {
	return scene.NewObject3D(scene.NewMesh("cube", scene.NewCubeGeometry(1), scene.DefaultMaterial()))
}

func TestSamplerProbeRays(t *testing.T) {
	rec := &recordingRaycaster{}
	occupied := Sampler{Target: rec}.Occupied(mgl64.Vec3{1, 2, 3}, 0.5)
	require.False(t, occupied)
	require.Len(t, rec.rays, 12)

	perAxis := map[int]int{}
	for _, ray := range rec.rays {
		require.Zero(t, ray.Near)
		require.Equal(t, 0.5, ray.Far)

		axis := -1
		for a := 0; a < 3; a++ {
			if ray.Direction[a] == 1 {
				axis = a
			}
		}
		require.NotEqual(t, -1, axis, "direction %v", ray.Direction)
		require.Equal(t, 1.0, ray.Direction.Len())
		perAxis[axis]++

		// rays start on the low face of their axis, at a corner
		center := mgl64.Vec3{1, 2, 3}
		require.Equal(t, center[axis]-0.25, ray.Origin[axis])
		for a := 0; a < 3; a++ {
			if a != axis {
				require.InDelta(t, 0.25, mgl64.Abs(ray.Origin[a]-center[a]), 1e-12)
			}
		}
	}
	require.Equal(t, map[int]int{0: 4, 1: 4, 2: 4}, perAxis)
}

func TestSamplerStopsAtFirstHit(t *testing.T) {
	calls := 0
	target := fnRaycaster(func(scene.Ray) bool {
		calls++
		return true
	})
	require.True(t, Sampler{Target: target}.Occupied(mgl64.Vec3{}, 1))
	require.Equal(t, 1, calls)
}

func TestSamplerUnitCube(t *testing.T) {
	s := Sampler{Target: unitCube()}

	// the cell coinciding with the cube
	require.True(t, s.Occupied(mgl64.Vec3{0, 0, 0}, 1))
	// cells sharing a face, edge or corner with the cube's low faces
	require.True(t, s.Occupied(mgl64.Vec3{1, 0, 0}, 1))
	require.True(t, s.Occupied(mgl64.Vec3{1, 1, 0}, 1))
	// only touches the cube's high corner, whose faces look away
	require.False(t, s.Occupied(mgl64.Vec3{1, 1, 1}, 1))
	// far away
	require.False(t, s.Occupied(mgl64.Vec3{5, 5, 5}, 1))
}

func TestSamplerDeterministic(t *testing.T) {
	sphere := scene.NewObject3D(scene.NewMesh("sphere", scene.NewSphereGeometry(1, 16, 8), scene.DefaultMaterial()))
	s := Sampler{Target: sphere}

	centers := []mgl64.Vec3{{0, 0, 0}, {0.9, 0.1, 0}, {0.5, 0.5, 0.5}, {-1, 0, 0}, {0, -0.95, 0.2}}
	for _, c := range centers {
		first := s.Occupied(c, 0.25)
		for i := 0; i < 5; i++ {
			require.Equal(t, first, s.Occupied(c, 0.25), "center %v", c)
		}
	}
}

func TestSamplerMissesInteriorFeatures(t *testing.T) {
	// a small closed sphere floating inside the cell is never reached by
	// the corner rays
	tiny := scene.NewObject3D(scene.NewMesh("tiny", scene.NewSphereGeometry(0.1, 8, 4), scene.DefaultMaterial()))
	require.False(t, Sampler{Target: tiny}.Occupied(mgl64.Vec3{}, 1))
}

func TestSamplerDisposedTarget(t *testing.T) {
	geom := scene.NewCubeGeometry(1)
	target := scene.NewObject3D(scene.NewMesh("cube", geom, scene.DefaultMaterial()))
	geom.Dispose()
	require.False(t, Sampler{Target: target}.Occupied(mgl64.Vec3{}, 1))
}
