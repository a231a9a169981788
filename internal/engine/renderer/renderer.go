// Package renderer is the OpenGL backend for the tower scene: instanced
// building batches, glow lines, the dust cloud, the ground grid and the
// optional bloom post-process.
package renderer

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/diwan-tower/internal/engine/framebuffer"
	"github.com/Faultbox/diwan-tower/internal/engine/lighting"
	"github.com/Faultbox/diwan-tower/internal/engine/scene/shaders"
	"github.com/Faultbox/diwan-tower/internal/engine/shader"
	"github.com/Faultbox/diwan-tower/internal/host"
	"github.com/Faultbox/diwan-tower/internal/logger"
)

// Scene look.
const (
	FogDensity      = 0.008
	Exposure        = 1.0
	DustSize        = 0.3
	DustOpacity     = 0.4
	bloomBlurPasses = 2
)

// Renderer implements host.Backend on an OpenGL 4.1 core context. All methods
// must be called on the thread that owns the context.
type Renderer struct {
	log  *zap.Logger
	rig  *lighting.Rig
	caps host.Capabilities
	vp   host.Viewport

	glReady bool

	buildingProg  *shader.Program
	pointsProg    *shader.Program
	linesProg     *shader.Program
	compositeProg *shader.Program
	brightProg    *shader.Program
	blurProg      *shader.Program

	batches   []*instancedMesh
	glow      *instancedMesh
	glowData  []float32
	dust      *pointMesh
	grid      *lineMesh
	emptyVAO  uint32
	gridAlpha float32

	msaa  *framebuffer.Framebuffer
	scene *framebuffer.Framebuffer

	bloom          bool
	bloomA, bloomB *framebuffer.Framebuffer
	bloomStrength  float32
	bloomThreshold float32
}

// New creates a renderer lit by rig. Nil uses lighting.DefaultRig.
func New(rig *lighting.Rig) *Renderer {
	if rig == nil {
		rig = lighting.DefaultRig()
	}
	return &Renderer{
		log: logger.Named("renderer"),
		rig: rig,
	}
}

// Init loads the GL entry points, compiles the base programs and creates the
// scene render targets.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func (r *Renderer) Init(caps host.Capabilities, vp host.Viewport) error {
	if !r.glReady {
		if err := gl.Init(); err != nil {
			return fmt.Errorf("failed to initialize OpenGL: %w", err)
		}
		r.glReady = true
	}
	r.caps = caps
	r.vp = vp

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.buildingProg, err = shader.Load("building", shaders.InstancedVertexShader, shaders.BuildingFragmentShader); err != nil {
		return err
	}
	if r.pointsProg, err = shader.Load("points", shaders.PointsVertexShader, shaders.PointsFragmentShader); err != nil {
		return err
	}
	if r.linesProg, err = shader.Load("lines", shaders.LinesVertexShader, shaders.LinesFragmentShader); err != nil {
		return err
	}
	if r.compositeProg, err = shader.Load("composite", shaders.FullscreenVertexShader, shaders.CompositeFragmentShader); err != nil {
		return err
	}

	// Core profile requires a bound VAO even for attribute-less draws.
	gl.GenVertexArrays(1, &r.emptyVAO)

	format := framebuffer.LDR
	if caps.Bloom {
		format = framebuffer.HDR
	}
	if r.scene, err = framebuffer.New(int32(vp.RenderWidth), int32(vp.RenderHeight), format, true); err != nil {
		return err
	}
	if caps.Samples > 0 {
		r.msaa, err = framebuffer.NewMultisample(int32(vp.RenderWidth), int32(vp.RenderHeight), format, int32(caps.Samples))
		if err != nil {
			// Antialiasing is not worth failing the mount over.
			r.log.Warn("multisampling unavailable", zap.Error(err))
			r.msaa = nil
		}
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	return glError("init")
}

// EnableBloom compiles the bloom passes and allocates their targets. On
// failure everything it created is released and the base path keeps working.
func (r *Renderer) EnableBloom(strength, threshold float32) (err error) {
	defer func() {
		if err != nil {
			r.releaseBloom()
		}
	}()

	if r.brightProg, err = shader.Load("bright", shaders.FullscreenVertexShader, shaders.BrightFragmentShader); err != nil {
		return err
	}
	if r.blurProg, err = shader.Load("blur", shaders.FullscreenVertexShader, shaders.BlurFragmentShader); err != nil {
		return err
	}

	w, h := bloomSize(r.vp)
	if r.bloomA, err = framebuffer.New(w, h, framebuffer.HDR, false); err != nil {
		return err
	}
	if r.bloomB, err = framebuffer.New(w, h, framebuffer.HDR, false); err != nil {
		return err
	}
	if err = glError("bloom"); err != nil {
		return err
	}

	r.bloom = true
	r.bloomStrength = strength
	r.bloomThreshold = threshold
	r.log.Info("bloom enabled", zap.Float32("strength", strength), zap.Float32("threshold", threshold))
	return nil
}

func bloomSize(vp host.Viewport) (int32, int32) {
	return int32(max(vp.RenderWidth/2, 1)), int32(max(vp.RenderHeight/2, 1))
}

// Resize reallocates render targets for a new viewport.
func (r *Renderer) Resize(vp host.Viewport) error {
	r.vp = vp
	w, h := int32(vp.RenderWidth), int32(vp.RenderHeight)
	if r.scene != nil {
		r.scene.Resize(w, h)
	}
	if r.msaa != nil {
		r.msaa.Resize(w, h)
	}
	if r.bloom {
		bw, bh := bloomSize(vp)
		r.bloomA.Resize(bw, bh)
		r.bloomB.Resize(bw, bh)
	}
	return glError("resize")
}

// Capture reads back the frame just composited to the default framebuffer.
func (r *Renderer) Capture() ([]byte, int, int, error) {
	w, h := r.vp.DrawableWidth, r.vp.DrawableHeight
	if w <= 0 || h <= 0 {
		return nil, 0, 0, errors.New("empty viewport")
	}
	pixels := make([]byte, w*h*4)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if err := glError("capture"); err != nil {
		return nil, 0, 0, err
	}

	framebuffer.FlipRows(pixels, w*4, h)
	return pixels, w, h, nil
}

// Release frees every GL object the renderer created. Safe after a partial
// Init and safe to call more than once.
func (r *Renderer) Release() error {
	if !r.glReady {
		return nil
	}

	for _, m := range r.batches {
		m.destroy()
	}
	r.batches = nil
	if r.glow != nil {
		r.glow.destroy()
		r.glow = nil
	}
	if r.dust != nil {
		r.dust.destroy()
		r.dust = nil
	}
	if r.grid != nil {
		r.grid.destroy()
		r.grid = nil
	}
	if r.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.emptyVAO)
		r.emptyVAO = 0
	}

	r.releaseBloom()
	for _, fb := range []**framebuffer.Framebuffer{&r.scene, &r.msaa} {
		if *fb != nil {
			(*fb).Destroy()
			*fb = nil
		}
	}
	for _, p := range []**shader.Program{&r.buildingProg, &r.pointsProg, &r.linesProg, &r.compositeProg} {
		if *p != nil {
			(*p).Delete()
			*p = nil
		}
	}

	err := glError("release")
	r.log.Debug("renderer released", zap.Error(err))
	return err
}

func (r *Renderer) releaseBloom() {
	r.bloom = false
	for _, fb := range []**framebuffer.Framebuffer{&r.bloomA, &r.bloomB} {
		if *fb != nil {
			(*fb).Destroy()
			*fb = nil
		}
	}
	for _, p := range []**shader.Program{&r.brightProg, &r.blurProg} {
		if *p != nil {
			(*p).Delete()
			*p = nil
		}
	}
}

// glError drains the GL error queue into one error.
func glError(op string) error {
	var err error
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		err = multierr.Append(err, fmt.Errorf("%s: GL error 0x%x", op, code))
	}
	return err
}

// linear converts an sRGB colour to linear space for clear colours.
func linear(c [3]float32) [3]float32 {
	return [3]float32{
		float32(gomath.Pow(float64(c[0]), 2.2)),
		float32(gomath.Pow(float64(c[1]), 2.2)),
		float32(gomath.Pow(float64(c[2]), 2.2)),
	}
}

var _ host.Backend = (*Renderer)(nil)
var _ host.Capturer = (*Renderer)(nil)
