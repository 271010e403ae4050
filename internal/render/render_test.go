package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFlatten(t *testing.T) {
	got := Flatten([]mgl32.Vec3{
		{0.0, 0.5, 0.0},
		{0.5, -0.5, 0.0},
		{-0.5, -0.5, 0.0},
	})

	assert.Equal(t, []float32{
		0.0, 0.5, 0.0,
		0.5, -0.5, 0.0,
		-0.5, -0.5, 0.0,
	}, got)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}

func TestShaderSources(t *testing.T) {
	for _, src := range []string{vertexShaderSource, fragmentShaderSource} {
		assert.True(t, strings.HasSuffix(src, "\x00"), "GL expects NUL-terminated source")
		assert.Contains(t, src, "#version 410 core")
	}

	assert.Contains(t, vertexShaderSource, "layout (location = 0) in vec3 vp;")
	assert.Contains(t, vertexShaderSource, "gl_Position = vec4(vp, 1.0);")
	assert.Contains(t, fragmentShaderSource, "vec4(0.5, 0.0, 0.5, 1.0)")
}

func TestShaderName(t *testing.T) {
	assert.Equal(t, "vertex", shaderName(gl.VERTEX_SHADER))
	assert.Equal(t, "fragment", shaderName(gl.FRAGMENT_SHADER))
	assert.Equal(t, "shader 0x8dd9", shaderName(gl.GEOMETRY_SHADER))
}

type fakeCompiler struct {
	failCompile uint32
	failLink    bool

	next     uint32
	attached []uint32
	released []uint32
	deleted  []uint32
	linked   bool
}

func (f *fakeCompiler) CreateProgram() uint32 {
	f.next++
	return f.next
}

func (f *fakeCompiler) Compile(shaderType uint32, source string) (uint32, error) {
	f.next++
	if shaderType == f.failCompile {
		return f.next, fmt.Errorf("%w: %s: 0:3: syntax error", ErrShaderCompile, shaderName(shaderType))
	}
	return f.next, nil
}

func (f *fakeCompiler) Attach(pg, shader uint32) { f.attached = append(f.attached, shader) }

func (f *fakeCompiler) Link(pg uint32) error {
	f.linked = true
	if f.failLink {
		return fmt.Errorf("%w: vertex output not read", ErrProgramLink)
	}
	return nil
}

func (f *fakeCompiler) Release(pg, shader uint32) { f.released = append(f.released, shader) }
func (f *fakeCompiler) DeleteProgram(pg uint32) { f.deleted = append(f.deleted, pg) }

func TestNewProgramLinks(t *testing.T) {
	c := &fakeCompiler{}
	core, logs := observer.New(zapcore.DebugLevel)

	pg, err := NewProgram(c, true, zap.New(core))

	require.NoError(t, err)
	assert.Equal(t, uint32(1), pg)
	assert.True(t, c.linked)
	assert.Equal(t, []uint32{2, 3}, c.attached)
	assert.Equal(t, []uint32{2, 3}, c.released)
	assert.Empty(t, c.deleted)
	assert.Zero(t, logs.Len())
}

func TestNewProgramFailFast(t *testing.T) {
	cases := map[string]struct {
		c    *fakeCompiler
		want error
	}{
		"compile": {&fakeCompiler{failCompile: gl.FRAGMENT_SHADER}, ErrShaderCompile},
		"link":    {&fakeCompiler{failLink: true}, ErrProgramLink},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			pg, err := NewProgram(tc.c, true, zap.NewNop())

			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, pg)
			assert.Equal(t, []uint32{1}, tc.c.deleted)
			assert.Equal(t, []uint32{2, 3}, tc.c.released)
		})
	}
}

func TestNewProgramContinuesOnFailure(t *testing.T) {
	c := &fakeCompiler{failCompile: gl.VERTEX_SHADER}
	core, logs := observer.New(zapcore.DebugLevel)

	pg, err := NewProgram(c, false, zap.New(core))

	require.NoError(t, err)
	assert.Equal(t, uint32(1), pg)
	// Compilation stopped at the vertex shader, so nothing was linked.
	assert.False(t, c.linked)
	assert.Equal(t, []uint32{2}, c.released)
	assert.Empty(t, c.deleted)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "Shader program unusable, continuing", entries[0].Message)
}
