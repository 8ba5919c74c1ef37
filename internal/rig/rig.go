package rig

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/followcam/internal/engine/picking"
	"github.com/Faultbox/followcam/pkg/math"
)

// Rig couples an offset model with a retraction probe.
type Rig struct {
	model *FollowModel
	probe *RetractionProbe
	mask  picking.LayerMask
	log   *zap.Logger
}

// New assembles a rig that retracts the boom on the layers in mask. Both
// collaborators are required; a nil logger disables logging.
func New(model *FollowModel, probe *RetractionProbe, mask picking.LayerMask, log *zap.Logger) (*Rig, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var missing []string
	if model == nil {
		missing = append(missing, "follow model")
	}
	if probe == nil {
		missing = append(missing, "retraction probe")
	}
	if len(missing) > 0 {
		err := fmt.Errorf("%w: %v", ErrMissingCollaborator, missing)
		log.Error("cannot assemble camera rig", zap.Strings("missing", missing))
		return nil, err
	}

	return &Rig{model: model, probe: probe, mask: mask, log: log}, nil
}

// Mask returns the layers the boom retracts on.
func (r *Rig) Mask() picking.LayerMask {
	return r.mask
}

// Model returns the rig's offset model.
func (r *Rig) Model() *FollowModel {
	return r.model
}

// Update runs one frame: it probes line of sight toward the camera's natural
// position, retracts the boom to the nearest unobstructed distance and
// returns the resulting pose together with the state for the next frame.
//
// target must already reflect this frame's movement.
func (r *Rig) Update(target math.Vec3, st State) (Pose, State) {
	natural := st.NaturalBoomMagnitude()
	nominalOffset, _ := ComputeOffset(target, st.Offset0, st.ManualZoom, st.Rotation)

	distance, hit := r.probe.Probe(target, target.Add(nominalOffset), natural, r.mask)

	next, err := r.model.Retract(st, distance)
	if err != nil {
		r.log.Debug("boom retraction skipped", zap.Error(err))
	}
	next.Obstructed = hit

	if hit != st.Obstructed {
		r.log.Debug("line of sight changed",
			zap.Bool("obstructed", hit),
			zap.Float32("distance", distance),
			zap.Float32("natural", natural))
	}

	return r.model.Pose(target, next), next
}

// ApplyControls feeds one frame of control deltas into the state.
func (r *Rig) ApplyControls(st State, rotateDelta, verticalDelta float32) State {
	st = r.model.StepVertical(st, verticalDelta)
	return r.model.Turn(st, rotateDelta)
}
