// Command basicwindow opens a window and draws a triangle.
//
// Escape closes the window, F12 saves screenshot.png and space cycles the colour.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glume"
	"github.com/stewi1014/glume/glutil"
	"github.com/stewi1014/glume/internal/dialog"
)

//go:embed shaders/triangle.vert
var vertexShader string

//go:embed shaders/triangle.frag
var fragmentShader string

var tints = []mgl32.Vec3{
	{1, 1, 1},
	{1, 0.4, 0.4},
	{0.4, 1, 0.4},
	{0.4, 0.4, 1},
}

type uniforms struct {
	Camera mgl32.Mat4 `uniform:"camera"`
	Tint   mgl32.Vec3 `uniform:"tint"`
}

func main() {
	cfg := glume.WindowConfiguration{
		Size:      glume.Size{Width: 800, Height: 600},
		GLVersion: glume.GLVersion{Major: 4, Minor: 5},
	}
	flag.StringVar(&cfg.Title, "title", "Hello, world!", "window title")
	flag.IntVar(&cfg.Size.Width, "width", cfg.Size.Width, "window width in pixels")
	flag.IntVar(&cfg.Size.Height, "height", cfg.Size.Height, "window height in pixels")
	flag.Var(&cfg.GLVersion, "gl", "OpenGL core profile version")
	debug := flag.Bool("debug", false, "log debug messages")
	flag.Parse()

	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := run(cfg); err != nil {
		slog.Error("basicwindow failed", "err", err)
		if derr := dialog.ShowError(cfg.Title, err); derr != nil {
			slog.Debug("no error dialog", "err", derr)
		}
		os.Exit(1)
	}
}

func run(cfg glume.WindowConfiguration) error {
	window, err := glume.BuildWindow(cfg)
	if err != nil {
		return err
	}

	// The context is current from here on.
	if v := cfg.GLVersion; v.Major > 4 || v.Major == 4 && v.Minor >= 3 {
		glutil.EnableDebugOutput()
	}

	t, err := newTriangle()
	if err != nil {
		window.Destroy()
		return fmt.Errorf("triangle: %w", err)
	}
	window.OnDestroy(t.release)

	size := window.Size()
	t.resize(size.Width, size.Height)

	frames := 0
	return window.Run(func(c *glume.Control, ev glume.Event) error {
		switch ev := ev.(type) {
		case glume.LoopStarted:
			c.SetTickDuration(time.Second)
			c.RequestRedraw()

		case glume.Resized:
			t.resize(ev.Width, ev.Height)

		case glume.RedrawRequested:
			gl.ClearColor(0.2, 0.2, 0.2, 1.0)
			gl.Clear(gl.COLOR_BUFFER_BIT)
			t.draw()
			frames++

		case glume.Tick:
			c.SetTitle(fmt.Sprintf("%s (%d frames)", cfg.Title, frames))

		case glume.KeyEvent:
			if ev.State != glume.Pressed || ev.Repeat {
				return nil
			}
			switch ev.Key {
			case glume.KeyEscape:
				c.Close()
			case glume.KeySpace:
				t.nextTint()
				c.RequestRedraw()
			case glume.KeyF12:
				size := c.Size()
				if err := glutil.SavePNG("screenshot.png", glutil.ReadFramebuffer(size.Width, size.Height)); err != nil {
					return err
				}
				slog.Info("saved screenshot", "path", "screenshot.png")
			}

		case glume.DroppedFiles:
			slog.Info("files dropped", "paths", ev.Paths)
		}
		return nil
	})
}

type triangle struct {
	program  uint32
	vao, vbo uint32
	tint     int
	uniforms uniforms
	bound    *glutil.Uniforms
}

func newTriangle() (*triangle, error) {
	program, err := glutil.BuildProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}

	t := &triangle{program: program}
	t.uniforms.Camera = mgl32.Ident4()
	t.uniforms.Tint = tints[0]

	t.bound, err = glutil.BindUniforms(program, &t.uniforms)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}

	verticies := []float32{
		-0.75, -0.5,
		0, 0.75,
		0.75, -0.5,
	}

	gl.GenVertexArrays(1, &t.vao)
	gl.BindVertexArray(t.vao)

	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verticies)*4, gl.Ptr(verticies), gl.STATIC_DRAW)

	gl.BindFragDataLocation(program, 0, gl.Str("outputColor\x00"))
	vertexAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vert\x00")))
	gl.EnableVertexAttribArray(vertexAttrib)
	gl.VertexAttribPointerWithOffset(vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)

	return t, nil
}

// resize keeps the triangle's aspect ratio.
func (t *triangle) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if height > width {
		t.uniforms.Camera = mgl32.Scale3D(1, float32(width)/float32(height), 1)
	} else {
		t.uniforms.Camera = mgl32.Scale3D(float32(height)/float32(width), 1, 1)
	}
}

func (t *triangle) nextTint() {
	t.tint = (t.tint + 1) % len(tints)
	t.uniforms.Tint = tints[t.tint]
}

func (t *triangle) draw() {
	t.bound.Upload()
	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (t *triangle) release() {
	gl.DeleteBuffers(1, &t.vbo)
	gl.DeleteVertexArrays(1, &t.vao)
	gl.DeleteProgram(t.program)
}
