package glutil

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// ShaderTypeName returns a readable name for a shader type, or false if shaderType is not one.
func ShaderTypeName(shaderType uint32) (string, bool) {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex", true
	case gl.TESS_CONTROL_SHADER:
		return "tess control", true
	case gl.TESS_EVALUATION_SHADER:
		return "tess evaluation", true
	case gl.GEOMETRY_SHADER:
		return "geometry", true
	case gl.FRAGMENT_SHADER:
		return "fragment", true
	case gl.COMPUTE_SHADER:
		return "compute", true
	}
	return "", false
}

// CompileShader compiles source as a shader of the given type.
// The shader is deleted if compilation fails.
func CompileShader(source string, shaderType uint32) (uint32, error) {
	name, ok := ShaderTypeName(shaderType)
	if !ok {
		return 0, fmt.Errorf("invalid shader type 0x%x", shaderType)
	}

	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %s shader: %v", name, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

// LinkProgram links the shaders into a program and detaches them again.
// The caller still owns the shaders. The program is deleted if linking fails.
func LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(program, shader)
	}

	gl.LinkProgram(program)

	for _, shader := range shaders {
		gl.DetachShader(program, shader)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

// BuildProgram compiles a vertex and fragment shader and links them.
// The shaders are deleted once linked.
func BuildProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := CompileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := CompileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	return LinkProgram(vertexShader, fragmentShader)
}
