// Package glume opens a window with an OpenGL context and delivers its events to a callback.
//
// OpenGL functions from github.com/go-gl/gl/v4.6-core/gl may be called once
// BuildWindow returns, from the main goroutine only:
//
//	window, err := glume.BuildWindow(glume.WindowConfiguration{
//		Title:     "Hello, world!",
//		Size:      glume.Size{Width: 800, Height: 600},
//		GLVersion: glume.GLVersion{Major: 4, Minor: 5},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = window.Run(func(c *glume.Control, ev glume.Event) error {
//		switch ev := ev.(type) {
//		case glume.Resized:
//			gl.Viewport(0, 0, int32(ev.Width), int32(ev.Height))
//		case glume.RedrawRequested:
//			gl.Clear(gl.COLOR_BUFFER_BIT)
//		case glume.KeyEvent:
//			if ev.Key == glume.KeyEscape {
//				c.Close()
//			}
//		}
//		return nil
//	})
package glume
