package camera

import (
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Keyframe is a camera pose plus the shared material opacities.
type Keyframe struct {
	Position     math.Vec3 `yaml:"position"`
	Target       math.Vec3 `yaml:"target"`
	SolidOpacity float32   `yaml:"solid_opacity"`
	WireOpacity  float32   `yaml:"wire_opacity"`
}

// Stage is one quarter of the scroll range. It interpolates from the previous
// stage's end keyframe to its own.
type Stage struct {
	Name    string   `yaml:"name"`
	Section string   `yaml:"section"`
	End     Keyframe `yaml:"end"`
	// Ease shapes the camera position and target tracks. Opacity is linear.
	Ease     ease.TweenFunc `yaml:"-"`
	EaseName string         `yaml:"ease"`
}

// easings maps timeline ease names onto their gween curves.
var easings = map[string]ease.TweenFunc{
	"none":         ease.Linear,
	"power1.inOut": ease.InOutQuad,
	"power2.out":   ease.OutCubic,
}

// EaseByName returns the curve registered under name.
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// withEase sets both the curve and its name. Unknown names fall back to linear.
func (s Stage) withEase(name string) Stage {
	fn, ok := EaseByName(name)
	if !ok {
		name, fn = "none", ease.Linear
	}
	s.EaseName, s.Ease = name, fn
	return s
}

// StageCount is the number of stages on the path.
const StageCount = 4

// Path is the fixed four-stage cinematic. It is immutable after construction.
type Path struct {
	Start  Keyframe
	Stages [StageCount]Stage
}

// NewPath lays out the drone path around a tower built from p.
func NewPath(p building.Parameters) *Path {
	f := p.FloorHeight
	s := p.FootprintSize
	h := p.TotalHeight()

	return &Path{
		Start: Keyframe{
			Position:     math.Vec3{X: s * 1.5, Y: h + 20, Z: s * 1.5},
			Target:       math.Vec3{Y: h / 2},
			SolidOpacity: 0,
			WireOpacity:  0.35,
		},
		Stages: [StageCount]Stage{
			Stage{
				Name:    "descend into core",
				Section: "services",
				End: Keyframe{
					Position:     math.Vec3{X: 8, Y: f * 8, Z: 8},
					Target:       math.Vec3{Y: f * 8},
					SolidOpacity: 0.5,
					WireOpacity:  0.1,
				},
			}.withEase("power1.inOut"),
			Stage{
				Name:    "traverse and look up",
				Section: "why-us",
				End: Keyframe{
					Position:     math.Vec3{X: -8, Y: f * 5, Z: -8},
					Target:       math.Vec3{Y: f * 20},
					SolidOpacity: 0.8,
					WireOpacity:  0.1,
				},
			}.withEase("power1.inOut"),
			Stage{
				Name:    "exit",
				Section: "process",
				End: Keyframe{
					Position:     math.Vec3{Y: f * 2, Z: s * 1.5},
					Target:       math.Vec3{Y: f * 10},
					SolidOpacity: 0.8,
					WireOpacity:  0.1,
				},
			}.withEase("power1.inOut"),
			Stage{
				Name:    "final wide shot",
				Section: "contact",
				End: Keyframe{
					Position:     math.Vec3{X: s * 1.8, Y: f * 12, Z: s * 2.2},
					Target:       math.Vec3{Y: f * 10},
					SolidOpacity: 1,
					WireOpacity:  0,
				},
			}.withEase("power2.out"),
		},
	}
}

// Pose is the result of evaluating the path at one progress value.
type Pose struct {
	Keyframe
	Stage    int     // 0..3
	Progress float32 // clamped input
	Local    float32 // progress within the stage, 0..1
}

// StageAt returns the stage index covering progress, after clamping.
func StageAt(progress float64) int {
	i, _ := locate(clampProgress(progress))
	return i
}

func clampProgress(progress float64) float32 {
	return math.Clamp01(float32(progress))
}

// locate splits clamped progress into a stage index and local time.
// Progress 1 belongs to the last stage at local time 1.
func locate(p float32) (int, float32) {
	scaled := p * StageCount
	i := int(scaled)
	if i >= StageCount {
		i = StageCount - 1
	}
	return i, scaled - float32(i)
}

// StartOf returns the keyframe a stage interpolates from.
func (p *Path) StartOf(stage int) Keyframe {
	if stage <= 0 {
		return p.Start
	}
	return p.Stages[stage-1].End
}

// Evaluate maps scroll progress to a pose. It is a pure function of progress:
// values outside [0,1] (and NaN) are clamped, never extrapolated.
func (p *Path) Evaluate(progress float64) Pose {
	prog := clampProgress(progress)
	i, local := locate(prog)

	from := p.StartOf(i)
	stage := p.Stages[i]
	curve := stage.Ease
	if curve == nil {
		curve = ease.Linear
	}
	e := curve(local, 0, 1, 1)

	return Pose{
		Keyframe: Keyframe{
			Position:     from.Position.Lerp(stage.End.Position, e),
			Target:       from.Target.Lerp(stage.End.Target, e),
			SolidOpacity: math.Lerp(from.SolidOpacity, stage.End.SolidOpacity, local),
			WireOpacity:  math.Lerp(from.WireOpacity, stage.End.WireOpacity, local),
		},
		Stage:    i,
		Progress: prog,
		Local:    local,
	}
}
