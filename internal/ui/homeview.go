package ui

import (
	"hellotriangle/internal/frame"
	"hellotriangle/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle points up and sits in clip space, centred on the origin.
var Triangle = []mgl32.Vec3{
	{0.0, 0.5, 0.0},
	{0.5, -0.5, 0.0},
	{-0.5, -0.5, 0.0},
}

var clearColor = mgl32.Vec4{0.0, 0.0, 0.0, 1.0}

type elemMesh struct {
	vao uint32
	vbo uint32
	vtq int32
}

type HomeView struct {
	elems [1]elemMesh
	pg    uint32
}

func CreateHomeView(pg uint32) *HomeView {
	hv := &HomeView{pg: pg}

	hv.elems[0].vao, hv.elems[0].vbo = render.CreateVAO(Triangle)
	hv.elems[0].vtq = int32(len(Triangle))

	return hv
}

func (hv *HomeView) Draw(viewport frame.Size) {
	render.Clear(clearColor)
	render.Viewport(viewport.W, viewport.H)

	for _, e := range hv.elems {
		render.ElemRender(hv.pg, e.vao, e.vtq)
	}
}

func (hv *HomeView) Close() {
	for _, e := range hv.elems {
		render.DeleteVAO(e.vao, e.vbo)
	}
	render.DeleteProgram(hv.pg)
}
