package diag

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	calls  []string
	ints   map[uint32]int32
	dims   [2]int32
	stereo bool
}

func (f *fakeQuerier) Integer(pname uint32) int32 {
	f.calls = append(f.calls, "int")
	return f.ints[pname]
}

func (f *fakeQuerier) Integer2(pname uint32) [2]int32 {
	f.calls = append(f.calls, "int2")
	return f.dims
}

func (f *fakeQuerier) Boolean(pname uint32) bool {
	f.calls = append(f.calls, "bool")
	return f.stereo
}

func newFake() *fakeQuerier {
	f := &fakeQuerier{ints: map[uint32]int32{}, dims: [2]int32{16384, 8192}}
	for i, p := range intParams {
		f.ints[p.enum] = int32(100 + i)
	}
	return f
}

func TestParamsOrderAndShape(t *testing.T) {
	f := newFake()
	params := Params(f)

	require.Len(t, params, 12)

	wantNames := []string{
		"GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS",
		"GL_MAX_CUBE_MAP_TEXTURE_SIZE",
		"GL_MAX_DRAW_BUFFERS",
		"GL_MAX_FRAGMENT_UNIFORM_COMPONENTS",
		"GL_MAX_TEXTURE_IMAGE_UNITS",
		"GL_MAX_TEXTURE_SIZE",
		"GL_MAX_VARYING_FLOATS",
		"GL_MAX_VERTEX_ATTRIBS",
		"GL_MAX_VERTEX_TEXTURE_IMAGE_UNITS",
		"GL_MAX_VERTEX_UNIFORM_COMPONENTS",
		"GL_MAX_VIEWPORT_DIMS",
		"GL_STEREO",
	}
	for i, p := range params {
		assert.Equal(t, wantNames[i], p.Name)
	}

	for i, p := range params[:10] {
		assert.Equal(t, []int32{int32(100 + i)}, p.Value)
	}
	assert.Equal(t, []int32{16384, 8192}, params[10].Value)
	assert.Equal(t, uint32(gl.MAX_VIEWPORT_DIMS), params[10].Enum)
	assert.Equal(t, []int32{0}, params[11].Value)

	assert.Equal(t, []string{
		"int", "int", "int", "int", "int", "int", "int", "int", "int", "int",
		"int2", "bool",
	}, f.calls)
}

func TestParamsStereo(t *testing.T) {
	f := newFake()
	f.stereo = true

	params := Params(f)
	assert.Equal(t, "GL_STEREO 1", params[11].String())
}

type fakeSink struct {
	lines  []string
	failAt int
}

func (f *fakeSink) Log(msg string) error {
	if f.failAt > 0 && len(f.lines)+1 == f.failAt {
		return errors.New("log file gone")
	}
	f.lines = append(f.lines, msg)
	return nil
}

func TestLogParams(t *testing.T) {
	sink := &fakeSink{}

	require.NoError(t, LogParams(sink, Params(newFake())))

	require.Len(t, sink.lines, 14)
	assert.Equal(t, "GL Context Params:", sink.lines[0])
	assert.Equal(t, "GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS 100", sink.lines[1])
	assert.Equal(t, "GL_MAX_VERTEX_UNIFORM_COMPONENTS 109", sink.lines[10])
	assert.Equal(t, "GL_MAX_VIEWPORT_DIMS 16384 8192", sink.lines[11])
	assert.Equal(t, "GL_STEREO 0", sink.lines[12])
	assert.Equal(t, "-----------------------------", sink.lines[13])
}

func TestLogParamsSinkFailure(t *testing.T) {
	sink := &fakeSink{failAt: 3}

	err := LogParams(sink, Params(newFake()))
	assert.EqualError(t, err, "diag.LogParams: log file gone")
	assert.Len(t, sink.lines, 2)
}
