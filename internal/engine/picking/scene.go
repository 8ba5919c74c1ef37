package picking

import (
	"fmt"

	"github.com/Faultbox/followcam/pkg/math"
)

// MaxLayers is the number of distinct collision layers a LayerMask can address.
const MaxLayers = 32

// LayerMask selects a set of collision layers, one bit per layer.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers = ^LayerMask(0)

// Layer returns the mask holding only layer n.
func Layer(n int) LayerMask {
	if n < 0 || n >= MaxLayers {
		return 0
	}
	return 1 << uint(n)
}

// Includes reports whether layer n is selected by the mask.
func (m LayerMask) Includes(n int) bool {
	return m&Layer(n) != 0
}

// Collider is a static box on a single layer.
type Collider struct {
	Name  string
	Box   AABB
	Layer int
}

// Hit describes the nearest ray intersection found by Scene.Raycast.
type Hit struct {
	Point    math.Vec3
	Distance float32
	Collider string
}

// Scene is a flat collection of colliders that answers raycast queries.
// It is read-only during a query and not safe for concurrent mutation.
type Scene struct {
	colliders []Collider
}

// NewScene creates a scene holding the given colliders.
func NewScene(colliders ...Collider) (*Scene, error) {
	s := &Scene{}
	for _, c := range colliders {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts a collider.
func (s *Scene) Add(c Collider) error {
	if c.Layer < 0 || c.Layer >= MaxLayers {
		return fmt.Errorf("collider %q: layer %d out of range [0,%d)", c.Name, c.Layer, MaxLayers)
	}
	s.colliders = append(s.colliders, c)
	return nil
}

// Len returns the number of colliders.
func (s *Scene) Len() int {
	return len(s.colliders)
}

// Raycast returns the nearest hit within maxDistance on a layer selected by mask.
// Colliders that already contain the origin are ignored, as are zero-length
// directions and non-positive distances.
func (s *Scene) Raycast(origin, direction math.Vec3, maxDistance float32, mask LayerMask) (Hit, bool) {
	if s == nil || mask == 0 || maxDistance <= 0 {
		return Hit{}, false
	}
	ray, ok := NewRay(origin, direction)
	if !ok {
		return Hit{}, false
	}

	var best Hit
	found := false
	for _, c := range s.colliders {
		if !mask.Includes(c.Layer) || c.Box.Contains(origin) {
			continue
		}
		t, hit := ray.IntersectAABB(c.Box)
		if !hit || t > maxDistance {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Point: ray.At(t), Distance: t, Collider: c.Name}
			found = true
		}
	}
	return best, found
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
