package rig

import (
	"github.com/Faultbox/followcam/internal/engine/picking"
	"github.com/Faultbox/followcam/pkg/math"
)

// DefaultMargin stretches the no-hit distance just past the natural boom
// length so an unobstructed boom always resolves to the manual zoom floor.
const DefaultMargin = 1.1

// Raycaster answers line-of-sight queries against scene geometry.
// Implementations must be synchronous and free of side effects.
type Raycaster interface {
	Raycast(origin, direction math.Vec3, maxDistance float32, mask picking.LayerMask) (picking.Hit, bool)
}

// RetractionProbe measures how far the boom can extend before geometry on
// the retraction layers blocks the view of the target.
type RetractionProbe struct {
	caster Raycaster

	// Margin scales maxDistance when nothing is hit.
	Margin float32
}

// NewRetractionProbe creates a probe casting through caster.
// A nil caster is allowed and behaves as an empty scene.
func NewRetractionProbe(caster Raycaster) *RetractionProbe {
	return &RetractionProbe{
		caster: caster,
		Margin: DefaultMargin,
	}
}

// Probe casts from target toward the camera's nominal position against the
// layers in mask and returns the unobstructed boom length and whether geometry
// was hit.
//
// A non-positive maxDistance returns 0 without casting. With no hit the
// result is maxDistance * Margin.
func (p *RetractionProbe) Probe(target, cameraNominal math.Vec3, maxDistance float32, mask picking.LayerMask) (float32, bool) {
	if maxDistance <= 0 {
		return 0, false
	}

	direction := cameraNominal.Sub(target).Normalize()
	if p.caster != nil && mask != 0 && direction != (math.Vec3{}) {
		if hit, ok := p.caster.Raycast(target, direction, maxDistance, mask); ok {
			return hit.Point.Sub(target).Length(), true
		}
	}
	return maxDistance * p.Margin, false
}
