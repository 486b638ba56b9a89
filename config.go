package glume

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a width and height in pixels.
type Size struct {
	Width, Height int
}

// GLVersion is a requested OpenGL version.
type GLVersion struct {
	Major, Minor int
}

func (v GLVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Set parses s as "major.minor", allowing a GLVersion to be used as a flag.Value.
func (v *GLVersion) Set(s string) error {
	parsed, err := ParseGLVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseGLVersion parses a version string of the form "4.5".
func ParseGLVersion(s string) (GLVersion, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return GLVersion{}, &ConfigurationError{Field: "GLVersion", Reason: fmt.Sprintf("%q is not of the form major.minor", s)}
	}

	var v GLVersion
	var err error
	if v.Major, err = strconv.Atoi(major); err != nil {
		return GLVersion{}, &ConfigurationError{Field: "GLVersion", Reason: fmt.Sprintf("bad major version %q", major)}
	}
	if v.Minor, err = strconv.Atoi(minor); err != nil {
		return GLVersion{}, &ConfigurationError{Field: "GLVersion", Reason: fmt.Sprintf("bad minor version %q", minor)}
	}
	return v, nil
}

// minor version range of each major version with a core profile.
var coreVersions = map[int]struct{ min, max int }{
	3: {2, 3},
	4: {0, 6},
}

// Supported reports whether v names an OpenGL version with a core profile.
func (v GLVersion) Supported() bool {
	r, ok := coreVersions[v.Major]
	return ok && v.Minor >= r.min && v.Minor <= r.max
}

// WindowConfiguration describes the window and context to build.
type WindowConfiguration struct {
	Title     string
	Size      Size
	GLVersion GLVersion
}

// Validate checks the configuration without touching the platform.
func (c WindowConfiguration) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ConfigurationError{Field: "Title", Reason: "empty"}
	}
	if c.Size.Width <= 0 || c.Size.Height <= 0 {
		return &ConfigurationError{
			Field:  "Size",
			Reason: fmt.Sprintf("%dx%d is not a positive size", c.Size.Width, c.Size.Height),
		}
	}
	if !c.GLVersion.Supported() {
		return &ConfigurationError{
			Field:  "GLVersion",
			Reason: fmt.Sprintf("OpenGL %v has no core profile", c.GLVersion),
		}
	}
	return nil
}

// BuildWindow is shorthand for BuildWindow(c).
func (c WindowConfiguration) BuildWindow() (*Window, error) {
	return BuildWindow(c)
}
