package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/internal/host"
)

// minVisibleOpacity skips batches that would not change a single pixel.
const minVisibleOpacity = 1.0 / 512

// Draw renders one frame into the default framebuffer.
func (r *Renderer) Draw(f *host.Frame) error {
	target := r.scene
	if r.msaa != nil {
		target = r.msaa
	}
	target.Bind()
	bg := linear(material.BackgroundColor)
	target.Clear(bg[0], bg[1], bg[2], 1)

	viewProj := f.Projection.Mul(f.View)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	// Grid first so the tower's transparent faces blend over it.
	r.linesProg.Use()
	r.linesProg.SetMat4("uViewProj", viewProj)
	r.linesProg.SetFloat("uOpacity", r.gridAlpha)
	r.setFog(r.linesProg.SetVec3, r.linesProg.SetFloat, f)
	gl.DepthMask(false)
	r.grid.draw()
	gl.DepthMask(true)

	r.buildingProg.Use()
	r.buildingProg.SetMat4("uViewProj", viewProj)
	r.setLights(f)

	// Solid batches write depth so the wire and glow passes sit on top.
	for _, m := range r.batches {
		if m.kind == material.Solid {
			r.drawBatch(m, f.Materials.Opacity(m.kind))
		}
	}
	gl.DepthMask(false)
	for _, m := range r.batches {
		if m.kind == material.Wire {
			r.drawBatch(m, f.Materials.Opacity(m.kind))
		}
	}

	r.glowData = packGlow(r.glowData, f.Glow)
	r.glow.updateInstances(r.glowData)
	r.drawBatch(r.glow, 1)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	r.dust.update(f.Particles)
	r.pointsProg.Use()
	r.pointsProg.SetMat4("uView", f.View)
	r.pointsProg.SetMat4("uProjection", f.Projection)
	r.pointsProg.SetFloat("uRotation", f.ParticleRotation)
	r.pointsProg.SetFloat("uSize", DustSize)
	r.pointsProg.SetFloat("uScale", float32(r.vp.RenderHeight)/2)
	r.pointsProg.SetVec3("uColor", material.DustStyle.Color)
	r.pointsProg.SetFloat("uOpacity", DustOpacity)
	r.pointsProg.SetVec3("uFogColor", material.BackgroundColor)
	r.pointsProg.SetFloat("uFogDensity", FogDensity)
	r.dust.draw()

	gl.DepthMask(true)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if r.msaa != nil {
		r.msaa.BlitTo(r.scene, 0, 0)
	}
	r.postProcess()

	return glError("draw")
}

func (r *Renderer) drawBatch(m *instancedMesh, opacity float32) {
	if opacity < minVisibleOpacity {
		return
	}
	p := r.buildingProg
	p.SetVec3("uColor", m.style.Color)
	p.SetFloat("uOpacity", opacity)
	p.SetBool("uLit", m.style.Lit)
	p.SetFloat("uRoughness", m.style.Roughness)
	p.SetFloat("uMetalness", m.style.Metalness)
	m.draw()
}

func (r *Renderer) setLights(f *host.Frame) {
	p := r.buildingProg
	p.SetVec3("uAmbient", r.rig.Ambient())
	p.SetVec3("uSunDir", r.rig.SunDirection())
	p.SetVec3("uSunColor", r.rig.Sun())
	p.SetVec3Array("uPointPositions", r.rig.Points.Positions())
	p.SetVec3Array("uPointColors", r.rig.Points.Colors())
	p.SetFloatArray("uPointRanges", r.rig.Points.Ranges())
	p.SetInt("uPointCount", int32(r.rig.Points.Count))
	r.setFog(p.SetVec3, p.SetFloat, f)
}

func (r *Renderer) setFog(vec3 func(string, [3]float32), float func(string, float32), f *host.Frame) {
	vec3("uCameraPos", f.CameraPosition.Array())
	vec3("uFogColor", material.BackgroundColor)
	float("uFogDensity", FogDensity)
}

// postProcess composites the scene target onto the default framebuffer,
// adding bloom when it is enabled.
func (r *Renderer) postProcess() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(r.emptyVAO)

	if r.bloom {
		r.bloomA.Bind()
		r.brightProg.Use()
		bindTexture(0, r.scene.ColorTexture())
		r.brightProg.SetInt("uScene", 0)
		r.brightProg.SetFloat("uThreshold", r.bloomThreshold)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)

		w, h := r.bloomA.Size()
		r.blurProg.Use()
		r.blurProg.SetInt("uImage", 0)
		for i := 0; i < bloomBlurPasses; i++ {
			r.bloomB.Bind()
			bindTexture(0, r.bloomA.ColorTexture())
			r.blurProg.SetVec2("uDirection", 1/float32(w), 0)
			gl.DrawArrays(gl.TRIANGLES, 0, 3)

			r.bloomA.Bind()
			bindTexture(0, r.bloomB.ColorTexture())
			r.blurProg.SetVec2("uDirection", 0, 1/float32(h))
			gl.DrawArrays(gl.TRIANGLES, 0, 3)
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.vp.DrawableWidth), int32(r.vp.DrawableHeight))
	r.compositeProg.Use()
	bindTexture(0, r.scene.ColorTexture())
	r.compositeProg.SetInt("uScene", 0)
	r.compositeProg.SetBool("uBloomEnabled", r.bloom)
	if r.bloom {
		bindTexture(1, r.bloomA.ColorTexture())
		r.compositeProg.SetInt("uBloom", 1)
		r.compositeProg.SetFloat("uBloomStrength", r.bloomStrength)
	}
	r.compositeProg.SetFloat("uExposure", Exposure)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func bindTexture(unit uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}
