package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/internal/logger"
)

// Controller binds a Path to the camera and the shared material state.
// It is the only writer of either.
type Controller struct {
	path      *Path
	camera    *Camera
	materials *material.State

	stage int
	// OnStage is called when Update crosses into a different stage.
	OnStage func(from, to int, s Stage)
}

// NewController applies the path's starting keyframe to cam and mats.
func NewController(path *Path, cam *Camera, mats *material.State) *Controller {
	c := &Controller{
		path:      path,
		camera:    cam,
		materials: mats,
	}
	c.apply(path.Evaluate(0))
	return c
}

// Update evaluates the path at progress and writes the result. Calling it
// repeatedly with the same progress is harmless.
func (c *Controller) Update(progress float64) Pose {
	pose := c.path.Evaluate(progress)
	c.apply(pose)

	if pose.Stage != c.stage {
		prev := c.stage
		c.stage = pose.Stage
		logger.Named("camera").Debug("stage changed",
			zap.Int("from", prev),
			zap.Int("to", pose.Stage),
			zap.String("name", c.path.Stages[pose.Stage].Name),
			zap.Float32("progress", pose.Progress),
		)
		if c.OnStage != nil {
			c.OnStage(prev, pose.Stage, c.path.Stages[pose.Stage])
		}
	}
	return pose
}

func (c *Controller) apply(p Pose) {
	c.camera.Position = p.Position
	c.camera.Target = p.Target
	c.materials.Set(p.SolidOpacity, p.WireOpacity)
}

// Stage returns the index of the current stage.
func (c *Controller) Stage() int {
	return c.stage
}
