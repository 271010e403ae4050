package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

var (
	ErrShaderCompile = errors.New("shader compile failed")
	ErrProgramLink   = errors.New("program link failed")
)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 vp;

void main()
{
    gl_Position = vec4(vp, 1.0);
}` + "\x00"

const fragmentShaderSource = `
#version 410 core
out vec4 frag_colour;

void main()
{
    frag_colour = vec4(0.5, 0.0, 0.5, 1.0);
}` + "\x00"

// Compiler is the slice of GL that builds a program.
type Compiler interface {
	CreateProgram() uint32
	// Compile returns the shader handle even when compilation fails.
	Compile(shaderType uint32, source string) (uint32, error)
	Attach(pg, shader uint32)
	Link(pg uint32) error
	// Release detaches shader from pg and deletes it.
	Release(pg, shader uint32)
	DeleteProgram(pg uint32)
}

// NewProgram compiles the fixed shader pair and links it. With failFast a
// compile or link failure is returned; otherwise it is logged and the
// program handle is returned as-is, which draws nothing useful.
func NewProgram(c Compiler, failFast bool, log *zap.Logger) (uint32, error) {
	const op = "render.NewProgram"

	pg := c.CreateProgram()

	shaders, err := attachShaders(c, pg)
	if err == nil {
		err = c.Link(pg)
	}
	for _, shader := range shaders {
		c.Release(pg, shader)
	}

	if err != nil {
		if failFast {
			c.DeleteProgram(pg)
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		log.Error("Shader program unusable, continuing", zap.Error(err))
	}

	return pg, nil
}

func attachShaders(c Compiler, pg uint32) ([]uint32, error) {
	shaders := make([]uint32, 0, 2)

	for _, src := range []struct {
		kind   uint32
		source string
	}{
		{gl.VERTEX_SHADER, vertexShaderSource},
		{gl.FRAGMENT_SHADER, fragmentShaderSource},
	} {
		shader, err := c.Compile(src.kind, src.source)
		if shader != 0 {
			c.Attach(pg, shader)
			shaders = append(shaders, shader)
		}
		if err != nil {
			return shaders, err
		}
	}

	return shaders, nil
}

// GLCompiler builds programs in the current GL context.
type GLCompiler struct{}

func (GLCompiler) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GLCompiler) Compile(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cs, free := gl.Strs(source)
	defer free()

	gl.ShaderSource(shader, 1, cs, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)

		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))

		return shader, fmt.Errorf("%w: %s: %s", ErrShaderCompile, shaderName(shaderType), strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

func (GLCompiler) Attach(pg, shader uint32) {
	gl.AttachShader(pg, shader)
}

func (GLCompiler) Link(pg uint32) error {
	gl.LinkProgram(pg)

	var status int32
	gl.GetProgramiv(pg, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(pg, gl.INFO_LOG_LENGTH, &logLen)

		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(pg, logLen, nil, gl.Str(log))

		return fmt.Errorf("%w: %s", ErrProgramLink, strings.TrimRight(log, "\x00"))
	}

	return nil
}

func (GLCompiler) Release(pg, shader uint32) {
	gl.DetachShader(pg, shader)
	gl.DeleteShader(shader)
}

func (GLCompiler) DeleteProgram(pg uint32) {
	DeleteProgram(pg)
}

func shaderName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("shader 0x%x", shaderType)
}
