package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrLoader = errors.New("GL function loader failed")

// Load resolves the GL entry points for the current context and sets the
// depth state every frame relies on. It must run after the context is made
// current and before any other GL call.
func Load() error {
	const op = "render.Load"

	if err := gl.Init(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrLoader, err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return nil
}

// Flatten lays vertices out as consecutive x, y, z floats.
func Flatten(vtc []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vtc)*3)
	for _, v := range vtc {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// CreateVAO uploads vtc into a new static buffer and describes it as
// attribute 0, three tightly packed floats per vertex.
func CreateVAO(vtc []mgl32.Vec3) (vao, vbo uint32) {
	data := Flatten(vtc)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return vao, vbo
}

func Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func Viewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func ElemRender(pg uint32, vao uint32, vtq int32) {
	gl.UseProgram(pg)
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, vtq)
}

func DeleteVAO(vao, vbo uint32) {
	gl.DeleteVertexArrays(1, &vao)
	gl.DeleteBuffers(1, &vbo)
}

func DeleteProgram(pg uint32) {
	gl.DeleteProgram(pg)
}
