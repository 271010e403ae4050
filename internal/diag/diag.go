// Package diag dumps the GL context's implementation limits to the log.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// maxVaryingFloats is GL_MAX_VARYING_FLOATS, which shares its value with
// GL_MAX_VARYING_COMPONENTS and has no name in the core profile bindings.
const maxVaryingFloats = 0x8B4B

type Param struct {
	Name  string
	Enum  uint32
	Value []int32
}

func (p Param) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	for _, v := range p.Value {
		fmt.Fprintf(&sb, " %d", v)
	}
	return sb.String()
}

// Querier reads context parameters.
type Querier interface {
	Integer(pname uint32) int32
	Integer2(pname uint32) [2]int32
	Boolean(pname uint32) bool
}

type named struct {
	name string
	enum uint32
}

var intParams = [...]named{
	{"GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS", gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS},
	{"GL_MAX_CUBE_MAP_TEXTURE_SIZE", gl.MAX_CUBE_MAP_TEXTURE_SIZE},
	{"GL_MAX_DRAW_BUFFERS", gl.MAX_DRAW_BUFFERS},
	{"GL_MAX_FRAGMENT_UNIFORM_COMPONENTS", gl.MAX_FRAGMENT_UNIFORM_COMPONENTS},
	{"GL_MAX_TEXTURE_IMAGE_UNITS", gl.MAX_TEXTURE_IMAGE_UNITS},
	{"GL_MAX_TEXTURE_SIZE", gl.MAX_TEXTURE_SIZE},
	{"GL_MAX_VARYING_FLOATS", maxVaryingFloats},
	{"GL_MAX_VERTEX_ATTRIBS", gl.MAX_VERTEX_ATTRIBS},
	{"GL_MAX_VERTEX_TEXTURE_IMAGE_UNITS", gl.MAX_VERTEX_TEXTURE_IMAGE_UNITS},
	{"GL_MAX_VERTEX_UNIFORM_COMPONENTS", gl.MAX_VERTEX_UNIFORM_COMPONENTS},
}

var (
	viewportParam = named{"GL_MAX_VIEWPORT_DIMS", gl.MAX_VIEWPORT_DIMS}
	stereoParam   = named{"GL_STEREO", gl.STEREO}
)

// Params queries the twelve limits in their fixed order: ten single
// integers, the two-integer viewport maximum, then stereo support as 0 or 1.
func Params(q Querier) []Param {
	params := make([]Param, 0, len(intParams)+2)

	for _, p := range intParams {
		params = append(params, Param{Name: p.name, Enum: p.enum, Value: []int32{q.Integer(p.enum)}})
	}

	dims := q.Integer2(viewportParam.enum)
	params = append(params, Param{Name: viewportParam.name, Enum: viewportParam.enum, Value: dims[:]})

	var stereo int32
	if q.Boolean(stereoParam.enum) {
		stereo = 1
	}
	params = append(params, Param{Name: stereoParam.name, Enum: stereoParam.enum, Value: []int32{stereo}})

	return params
}

// Sink takes one preformatted log line.
type Sink interface {
	Log(msg string) error
}

// LogParams writes params as one "NAME v..." line each, framed by a title
// and a rule. It stops at the first line the sink fails to write.
func LogParams(sink Sink, params []Param) error {
	const op = "diag.LogParams"

	lines := make([]string, 0, len(params)+2)
	lines = append(lines, "GL Context Params:")
	for _, p := range params {
		lines = append(lines, p.String())
	}
	lines = append(lines, "-----------------------------")

	for _, line := range lines {
		if err := sink.Log(line); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// GLQuerier reads parameters from the current GL context.
type GLQuerier struct{}

func (GLQuerier) Integer(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (GLQuerier) Integer2(pname uint32) [2]int32 {
	var v [2]int32
	gl.GetIntegerv(pname, &v[0])
	return v
}

func (GLQuerier) Boolean(pname uint32) bool {
	var v bool
	gl.GetBooleanv(pname, &v)
	return v
}

// Info prints the renderer and version strings of the current context to
// out and records them in the log.
func Info(out io.Writer, log *zap.Logger) {
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))

	fmt.Fprintf(out, "Renderer: %s\n", renderer)
	fmt.Fprintf(out, "OpenGL version supported %s\n", version)

	log.Info("OpenGL initialized",
		zap.String("renderer", renderer),
		zap.String("version", version),
	)
}
