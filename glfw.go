package glume

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the context it creates are bound to the main thread.
	runtime.LockOSThread()
}

type glfwSurface struct {
	window *glfw.Window
	queue  []Event
	mods   ModifierState
}

// undoStack holds teardown steps for a partially completed setup.
type undoStack []func()

func (u *undoStack) push(f func()) {
	*u = append(*u, f)
}

// unwind runs the steps in reverse order if *err is set.
// It must be deferred before catchPlatformPanic so it sees recovered panics.
func (u *undoStack) unwind(err *error) {
	if *err == nil {
		return
	}
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

func openGLFW(cfg WindowConfiguration) (s surface, err error) {
	var undo undoStack
	defer undo.unwind(&err)
	defer catchPlatformPanic("create window", &err)

	if err := glfw.Init(); err != nil {
		return nil, &PlatformError{Op: "glfw.Init", Err: err}
	}
	undo.push(glfw.Terminate)

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLVersion.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLVersion.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.Size.Width, cfg.Size.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, &PlatformError{Op: "glfw.CreateWindow", Err: err}
	}
	undo.push(window.Destroy)

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, &PlatformError{Op: "gl.Init", Err: err}
	}
	glfw.SwapInterval(1)

	slog.Debug("context current",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	g := &glfwSurface{window: window}
	g.installCallbacks()
	return g, nil
}

func (g *glfwSurface) push(ev Event) {
	g.queue = append(g.queue, ev)
}

func (g *glfwSurface) updateModifiers(mods glfw.ModifierKey) ModifierState {
	m := translateModifiers(mods)
	if m != g.mods {
		g.mods = m
		g.push(ModifiersChanged{Modifiers: m})
	}
	return m
}

func (g *glfwSurface) installCallbacks() {
	w := g.window

	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		g.push(Resized{Width: width, Height: height})
	})
	w.SetRefreshCallback(func(_ *glfw.Window) {
		g.push(RedrawRequested{})
	})
	w.SetCloseCallback(func(w *glfw.Window) {
		// The loop decides whether to close.
		w.SetShouldClose(false)
		g.push(CloseRequested{})
	})
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		g.key(key, action, mods)
	})
	w.SetCharCallback(func(_ *glfw.Window, char rune) {
		g.push(ReceivedCharacter{Char: char})
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		g.mouseButton(button, action, mods)
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		g.push(CursorMoved{X: x, Y: y})
	})
	w.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			g.push(CursorEntered{})
		} else {
			g.push(CursorLeft{})
		}
	})
	w.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		g.push(MouseWheel{DeltaX: dx, DeltaY: dy})
	})
	w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		g.push(Focused{Focused: focused})
	})
	w.SetPosCallback(func(_ *glfw.Window, x, y int) {
		g.push(Moved{X: x, Y: y})
	})
	w.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		g.push(Iconified{Iconified: iconified})
	})
	w.SetDropCallback(func(_ *glfw.Window, names []string) {
		paths := make([]string, len(names))
		copy(paths, names)
		g.push(DroppedFiles{Paths: paths})
	})
}

// key queues a KeyEvent, preceded by ModifiersChanged if mods differ from the last seen.
func (g *glfwSurface) key(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	m := g.updateModifiers(mods)
	ev := KeyEvent{Key: translateKey(key), Modifiers: m}
	switch action {
	case glfw.Press:
		ev.State = Pressed
	case glfw.Repeat:
		ev.State, ev.Repeat = Pressed, true
	case glfw.Release:
		ev.State = Released
	}
	g.push(ev)
}

func (g *glfwSurface) mouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	m := g.updateModifiers(mods)
	state := Pressed
	if action == glfw.Release {
		state = Released
	}
	g.push(MouseButtonEvent{Button: MouseButton(button), State: state, Modifiers: m})
}

func (g *glfwSurface) wait(timeout time.Duration) (err error) {
	defer catchPlatformPanic("wait events", &err)
	if timeout <= 0 {
		glfw.WaitEvents()
	} else {
		glfw.WaitEventsTimeout(timeout.Seconds())
	}
	return nil
}

func (g *glfwSurface) poll() (err error) {
	defer catchPlatformPanic("poll events", &err)
	glfw.PollEvents()
	return nil
}

func (g *glfwSurface) drain() []Event {
	events := g.queue
	g.queue = nil
	return events
}

func (g *glfwSurface) swapBuffers() (err error) {
	defer catchPlatformPanic("swap buffers", &err)
	g.window.SwapBuffers()
	return nil
}

func (g *glfwSurface) setTitle(title string) {
	g.window.SetTitle(title)
}

func (g *glfwSurface) framebufferSize() Size {
	width, height := g.window.GetFramebufferSize()
	return Size{Width: width, Height: height}
}

func (g *glfwSurface) destroy() {
	g.window.Destroy()
	glfw.Terminate()
}

func translateModifiers(mods glfw.ModifierKey) ModifierState {
	return ModifierState{
		Shift:    mods&glfw.ModShift != 0,
		Ctrl:     mods&glfw.ModControl != 0,
		Alt:      mods&glfw.ModAlt != 0,
		Super:    mods&glfw.ModSuper != 0,
		CapsLock: mods&glfw.ModCapsLock != 0,
		NumLock:  mods&glfw.ModNumLock != 0,
	}
}

func translateKey(key glfw.Key) Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return KeyUnknown
}

var glfwKeys = map[glfw.Key]Key{
	glfw.Key0: Key0, glfw.Key1: Key1, glfw.Key2: Key2, glfw.Key3: Key3, glfw.Key4: Key4,
	glfw.Key5: Key5, glfw.Key6: Key6, glfw.Key7: Key7, glfw.Key8: Key8, glfw.Key9: Key9,

	glfw.KeyA: KeyA, glfw.KeyB: KeyB, glfw.KeyC: KeyC, glfw.KeyD: KeyD, glfw.KeyE: KeyE,
	glfw.KeyF: KeyF, glfw.KeyG: KeyG, glfw.KeyH: KeyH, glfw.KeyI: KeyI, glfw.KeyJ: KeyJ,
	glfw.KeyK: KeyK, glfw.KeyL: KeyL, glfw.KeyM: KeyM, glfw.KeyN: KeyN, glfw.KeyO: KeyO,
	glfw.KeyP: KeyP, glfw.KeyQ: KeyQ, glfw.KeyR: KeyR, glfw.KeyS: KeyS, glfw.KeyT: KeyT,
	glfw.KeyU: KeyU, glfw.KeyV: KeyV, glfw.KeyW: KeyW, glfw.KeyX: KeyX, glfw.KeyY: KeyY,
	glfw.KeyZ: KeyZ,

	glfw.KeySpace:        KeySpace,
	glfw.KeyApostrophe:   KeyApostrophe,
	glfw.KeyComma:        KeyComma,
	glfw.KeyMinus:        KeyMinus,
	glfw.KeyPeriod:       KeyPeriod,
	glfw.KeySlash:        KeySlash,
	glfw.KeySemicolon:    KeySemicolon,
	glfw.KeyEqual:        KeyEquals,
	glfw.KeyLeftBracket:  KeyLBracket,
	glfw.KeyBackslash:    KeyBackslash,
	glfw.KeyRightBracket: KeyRBracket,
	glfw.KeyGraveAccent:  KeyGrave,

	glfw.KeyEscape:      KeyEscape,
	glfw.KeyEnter:       KeyReturn,
	glfw.KeyTab:         KeyTab,
	glfw.KeyBackspace:   KeyBackspace,
	glfw.KeyInsert:      KeyInsert,
	glfw.KeyDelete:      KeyDelete,
	glfw.KeyRight:       KeyRight,
	glfw.KeyLeft:        KeyLeft,
	glfw.KeyDown:        KeyDown,
	glfw.KeyUp:          KeyUp,
	glfw.KeyPageUp:      KeyPageUp,
	glfw.KeyPageDown:    KeyPageDown,
	glfw.KeyHome:        KeyHome,
	glfw.KeyEnd:         KeyEnd,
	glfw.KeyCapsLock:    KeyCapsLock,
	glfw.KeyScrollLock:  KeyScrollLock,
	glfw.KeyNumLock:     KeyNumLock,
	glfw.KeyPrintScreen: KeyPrintScreen,
	glfw.KeyPause:       KeyPause,

	glfw.KeyF1: KeyF1, glfw.KeyF2: KeyF2, glfw.KeyF3: KeyF3, glfw.KeyF4: KeyF4, glfw.KeyF5: KeyF5,
	glfw.KeyF6: KeyF6, glfw.KeyF7: KeyF7, glfw.KeyF8: KeyF8, glfw.KeyF9: KeyF9, glfw.KeyF10: KeyF10,
	glfw.KeyF11: KeyF11, glfw.KeyF12: KeyF12, glfw.KeyF13: KeyF13, glfw.KeyF14: KeyF14, glfw.KeyF15: KeyF15,
	glfw.KeyF16: KeyF16, glfw.KeyF17: KeyF17, glfw.KeyF18: KeyF18, glfw.KeyF19: KeyF19, glfw.KeyF20: KeyF20,
	glfw.KeyF21: KeyF21, glfw.KeyF22: KeyF22, glfw.KeyF23: KeyF23, glfw.KeyF24: KeyF24, glfw.KeyF25: KeyF25,

	glfw.KeyKP0: KeyNumpad0, glfw.KeyKP1: KeyNumpad1, glfw.KeyKP2: KeyNumpad2, glfw.KeyKP3: KeyNumpad3,
	glfw.KeyKP4: KeyNumpad4, glfw.KeyKP5: KeyNumpad5, glfw.KeyKP6: KeyNumpad6, glfw.KeyKP7: KeyNumpad7,
	glfw.KeyKP8: KeyNumpad8, glfw.KeyKP9: KeyNumpad9,
	glfw.KeyKPDecimal:  KeyNumpadDecimal,
	glfw.KeyKPDivide:   KeyNumpadDivide,
	glfw.KeyKPMultiply: KeyNumpadMultiply,
	glfw.KeyKPSubtract: KeyNumpadSubtract,
	glfw.KeyKPAdd:      KeyNumpadAdd,
	glfw.KeyKPEnter:    KeyNumpadEnter,
	glfw.KeyKPEqual:    KeyNumpadEquals,

	glfw.KeyLeftShift:    KeyLShift,
	glfw.KeyLeftControl:  KeyLControl,
	glfw.KeyLeftAlt:      KeyLAlt,
	glfw.KeyLeftSuper:    KeyLSuper,
	glfw.KeyRightShift:   KeyRShift,
	glfw.KeyRightControl: KeyRControl,
	glfw.KeyRightAlt:     KeyRAlt,
	glfw.KeyRightSuper:   KeyRSuper,
	glfw.KeyMenu:         KeyMenu,
}
