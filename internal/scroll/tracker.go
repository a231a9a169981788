// Package scroll models the virtual page the camera path is bound to: a stack
// of content sections scrolled by wheel and keyboard, smoothed by a spring and
// published as normalized progress.
package scroll

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/Faultbox/diwan-tower/internal/config"
	"github.com/Faultbox/diwan-tower/internal/logger"
	"github.com/Faultbox/diwan-tower/internal/signal"
)

// DefaultFPS is the spring step rate when none is configured.
const DefaultFPS = 60

// settleEpsilon is the distance in pixels below which the spring snaps to rest.
const settleEpsilon = 0.01

// Tracker owns the raw scroll offset and its smoothed follower.
type Tracker struct {
	sections      []string
	sectionHeight float64
	wheelStep     float64
	viewport      float64

	target   float64 // raw offset the user asked for
	offset   float64 // smoothed offset
	velocity float64
	spring   harmonica.Spring

	progress     *signal.Signal[float64]
	lastProgress float64
	section      int

	// OnSection is called when the section under the viewport centre changes.
	OnSection func(index int, name string)
}

// NewTracker creates a tracker at the top of the page. fps is the rate Step
// will be called at; zero or negative uses DefaultFPS.
func NewTracker(cfg config.ScrollConfig, viewport float64, fps int) *Tracker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	sections := cfg.Sections
	if len(sections) == 0 {
		sections = []string{"page"}
	}
	return &Tracker{
		sections:      sections,
		sectionHeight: cfg.SectionHeight,
		wheelStep:     cfg.WheelStep,
		viewport:      gomath.Max(viewport, 1),
		spring:        harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, cfg.SpringDamping),
		progress:      signal.New[float64](),
	}
}

// Progress is the signal carrying smoothed progress in [0,1].
func (t *Tracker) Progress() *signal.Signal[float64] {
	return t.progress
}

// PageLength returns the total height of the page in pixels.
func (t *Tracker) PageLength() float64 {
	return float64(len(t.sections)) * t.sectionHeight
}

// MaxOffset returns the largest offset that still fills the viewport.
func (t *Tracker) MaxOffset() float64 {
	return gomath.Max(t.PageLength()-t.viewport, 0)
}

// SetViewport updates the visible height. The target is re-clamped so a
// larger window never leaves the page scrolled past its end.
func (t *Tracker) SetViewport(height float64) {
	t.viewport = gomath.Max(height, 1)
	t.ScrollTo(t.target)
}

// ScrollTo sets the raw target offset in pixels.
func (t *Tracker) ScrollTo(px float64) {
	if gomath.IsNaN(px) {
		return
	}
	t.target = gomath.Min(gomath.Max(px, 0), t.MaxOffset())
}

// ScrollBy moves the raw target by delta pixels.
func (t *Tracker) ScrollBy(delta float64) {
	t.ScrollTo(t.target + delta)
}

// Wheel applies mouse wheel notches. Positive notches scroll down the page.
func (t *Tracker) Wheel(notches float64) {
	t.ScrollBy(notches * t.wheelStep)
}

// PageDown scrolls one viewport down.
func (t *Tracker) PageDown() { t.ScrollBy(t.viewport) }

// PageUp scrolls one viewport up.
func (t *Tracker) PageUp() { t.ScrollBy(-t.viewport) }

// Home scrolls to the top of the page.
func (t *Tracker) Home() { t.ScrollTo(0) }

// End scrolls to the bottom of the page.
func (t *Tracker) End() { t.ScrollTo(t.MaxOffset()) }

// JumpToSection scrolls so section i starts at the top of the viewport.
func (t *Tracker) JumpToSection(i int) {
	i = max(0, min(i, len(t.sections)-1))
	t.ScrollTo(float64(i) * t.sectionHeight)
}

// NextSection scrolls to the start of the section after the current one.
func (t *Tracker) NextSection() { t.JumpToSection(t.sectionAt(t.target) + 1) }

// PrevSection scrolls to the start of the section before the current one.
func (t *Tracker) PrevSection() { t.JumpToSection(t.sectionAt(t.target) - 1) }

// Step advances the spring by one frame and publishes progress if it moved.
func (t *Tracker) Step() {
	t.offset, t.velocity = t.spring.Update(t.offset, t.velocity, t.target)
	if gomath.Abs(t.offset-t.target) < settleEpsilon && gomath.Abs(t.velocity) < settleEpsilon {
		t.offset, t.velocity = t.target, 0
	}

	if s := t.sectionAt(t.offset); s != t.section {
		logger.Named("scroll").Debug("section changed",
			zap.Int("from", t.section),
			zap.Int("to", s),
			zap.String("name", t.sections[s]))
		t.section = s
		if t.OnSection != nil {
			t.OnSection(s, t.sections[s])
		}
	}

	if p := t.progressAt(t.offset); p != t.lastProgress {
		t.lastProgress = p
		t.progress.Emit(p)
	}
}

// Settled reports whether the smoothed offset has reached the target.
func (t *Tracker) Settled() bool {
	return t.offset == t.target && t.velocity == 0
}

// Offset returns the smoothed offset in pixels.
func (t *Tracker) Offset() float64 { return t.offset }

// Target returns the raw offset in pixels.
func (t *Tracker) Target() float64 { return t.target }

// Current returns the last published progress.
func (t *Tracker) Current() float64 { return t.lastProgress }

// Section returns the index and name of the section under the viewport centre.
func (t *Tracker) Section() (int, string) {
	return t.section, t.sections[t.section]
}

// Sections returns the section names in page order.
func (t *Tracker) Sections() []string {
	return t.sections
}

func (t *Tracker) progressAt(offset float64) float64 {
	m := t.MaxOffset()
	if m == 0 {
		return 0
	}
	return gomath.Min(gomath.Max(offset/m, 0), 1)
}

func (t *Tracker) sectionAt(offset float64) int {
	if t.sectionHeight <= 0 {
		return 0
	}
	i := int((offset + t.viewport/2) / t.sectionHeight)
	return max(0, min(i, len(t.sections)-1))
}
