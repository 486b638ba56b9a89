package glutil

import (
	"fmt"
	"reflect"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type uniformKind int

const (
	uniformInvalid uniformKind = iota
	uniformVec2f
	uniformVec3f
	uniformVec4f
	uniformVec2d
	uniformVec3d
	uniformVec4d
	uniformMat2f
	uniformMat3f
	uniformMat4f
	uniformInt
	uniformUint
	uniformFloat
	uniformDouble
)

var uniformKinds = map[reflect.Type]uniformKind{
	reflect.TypeOf(mgl32.Vec2{}): uniformVec2f,
	reflect.TypeOf(mgl32.Vec3{}): uniformVec3f,
	reflect.TypeOf(mgl32.Vec4{}): uniformVec4f,
	reflect.TypeOf(mgl64.Vec2{}): uniformVec2d,
	reflect.TypeOf(mgl64.Vec3{}): uniformVec3d,
	reflect.TypeOf(mgl64.Vec4{}): uniformVec4d,
	reflect.TypeOf(mgl32.Mat2{}): uniformMat2f,
	reflect.TypeOf(mgl32.Mat3{}): uniformMat3f,
	reflect.TypeOf(mgl32.Mat4{}): uniformMat4f,
	reflect.TypeOf(int32(0)):     uniformInt,
	reflect.TypeOf(uint32(0)):    uniformUint,
	reflect.TypeOf(float32(0)):   uniformFloat,
	reflect.TypeOf(float64(0)):   uniformDouble,
}

// classifyUniform finds how a field of type t is uploaded.
// An array of a supported type is uploaded as a uniform array of its length.
func classifyUniform(t reflect.Type) (uniformKind, int32) {
	if kind, ok := uniformKinds[t]; ok {
		return kind, 1
	}
	if t.Kind() == reflect.Array && t.Len() > 0 {
		if kind, ok := uniformKinds[t.Elem()]; ok {
			return kind, int32(t.Len())
		}
	}
	return uniformInvalid, 0
}

type boundUniform struct {
	name     string
	index    int
	kind     uniformKind
	count    int32
	location int32
}

// Uniforms uploads the fields of a struct to the uniforms of a program.
type Uniforms struct {
	program uint32
	value   reflect.Value
	fields  []boundUniform
}

// BindUniforms binds the fields of the struct ptr points to to the program's uniforms.
// Fields are matched by their `uniform:"name"` tag; untagged fields are ignored.
// Supported field types are int32, uint32, float32, float64, the mathgl
// vector and matrix types, and arrays of those.
// Uniforms the linker optimised out are bound to location -1, which GL ignores.
func BindUniforms(program uint32, ptr any) (*Uniforms, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("BindUniforms: %T is not a pointer to a struct", ptr)
	}
	v = v.Elem()

	u := &Uniforms{
		program: program,
		value:   v,
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := f.Tag.Lookup("uniform")
		if !ok {
			continue
		}

		kind, count := classifyUniform(f.Type)
		if kind == uniformInvalid {
			return nil, fmt.Errorf("BindUniforms: field %s has unsupported uniform type %v", f.Name, f.Type)
		}

		u.fields = append(u.fields, boundUniform{
			name:  name,
			index: i,
			kind:  kind,
			count: count,
		})
	}

	for i := range u.fields {
		u.fields[i].location = gl.GetUniformLocation(program, gl.Str(u.fields[i].name+"\x00"))
	}

	return u, nil
}

// Upload makes the program current and sends the current field values.
func (u *Uniforms) Upload() {
	gl.UseProgram(u.program)

	for _, f := range u.fields {
		ptr := u.value.Field(f.index).Addr().UnsafePointer()
		loc, count := f.location, f.count

		switch f.kind {
		case uniformVec2f:
			gl.Uniform2fv(loc, count, (*float32)(ptr))
		case uniformVec3f:
			gl.Uniform3fv(loc, count, (*float32)(ptr))
		case uniformVec4f:
			gl.Uniform4fv(loc, count, (*float32)(ptr))
		case uniformVec2d:
			gl.Uniform2dv(loc, count, (*float64)(ptr))
		case uniformVec3d:
			gl.Uniform3dv(loc, count, (*float64)(ptr))
		case uniformVec4d:
			gl.Uniform4dv(loc, count, (*float64)(ptr))
		case uniformMat2f:
			gl.UniformMatrix2fv(loc, count, false, (*float32)(ptr))
		case uniformMat3f:
			gl.UniformMatrix3fv(loc, count, false, (*float32)(ptr))
		case uniformMat4f:
			gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr))
		case uniformInt:
			gl.Uniform1iv(loc, count, (*int32)(ptr))
		case uniformUint:
			gl.Uniform1uiv(loc, count, (*uint32)(ptr))
		case uniformFloat:
			gl.Uniform1fv(loc, count, (*float32)(ptr))
		case uniformDouble:
			gl.Uniform1dv(loc, count, (*float64)(ptr))
		}
	}
}
