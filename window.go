package glume

import (
	"errors"
	"log/slog"
	"time"
)

// surface is the native window and context the run loop drives.
// All methods are called on the thread that built the window.
type surface interface {
	// wait blocks until at least one native event is queued or timeout elapses.
	// A non-positive timeout waits indefinitely.
	wait(timeout time.Duration) error
	// poll queues pending native events without blocking.
	poll() error
	// drain returns and clears the translated events queued so far.
	drain() []Event
	swapBuffers() error
	setTitle(title string)
	framebufferSize() Size
	destroy()
}

// openSurface creates the native window and makes its context current.
// Tests replace it.
var openSurface = openGLFW

// live is the window that has not yet been destroyed, if any.
// GLFW is initialised and terminated with it, so only one may exist at a time.
var live *Window

type windowState int

const (
	stateReady windowState = iota
	stateRunning
	stateClosed
)

// Handler is called once per event, on the thread that called Run.
// Returning an error stops the loop and Run returns the error.
type Handler func(c *Control, ev Event) error

// Window is a native window with a current OpenGL context.
type Window struct {
	config  WindowConfiguration
	surface surface
	state   windowState

	closing       bool
	keepOpen      bool
	redrawPending bool

	// as of the last delivered ModifiersChanged
	modifiers ModifierState

	tickDuration time.Duration
	nextTick     time.Time
	now          func() time.Time

	onDestroy []func()
}

// BuildWindow creates the window and its context. OpenGL functions may be
// called once it returns without error, and only from the calling goroutine.
func BuildWindow(cfg WindowConfiguration) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if live != nil {
		return nil, ErrWindowExists
	}

	s, err := openSurface(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("window created",
		"title", cfg.Title,
		"width", cfg.Size.Width,
		"height", cfg.Size.Height,
		"gl", cfg.GLVersion.String(),
	)

	live = &Window{
		config:  cfg,
		surface: s,
		now:     time.Now,
	}
	return live, nil
}

// Size returns the current framebuffer size, or zero once the window is destroyed.
func (w *Window) Size() Size {
	if w.state == stateClosed {
		return Size{}
	}
	return w.surface.framebufferSize()
}

// OnDestroy registers f to run before the context is destroyed.
// Functions run in reverse order of registration with the context still current,
// which is where GL objects such as shaders and buffers should be deleted.
func (w *Window) OnDestroy(f func()) {
	w.onDestroy = append(w.onDestroy, f)
}

// Run delivers events to h until the window closes.
// It returns nil when the window was closed, the handler's error if it returned one,
// or a *PlatformError if the windowing system failed.
// The window and its context are destroyed before Run returns.
func (w *Window) Run(h Handler) error {
	if w.state != stateReady {
		return ErrWindowClosed
	}
	w.state = stateRunning
	defer w.Destroy()

	err := w.loop(h)

	var perr *PlatformError
	if errors.As(err, &perr) {
		slog.Error("platform failure", "op", perr.Op, "err", perr.Err)
	}
	return err
}

func (w *Window) loop(h Handler) error {
	if err := w.dispatch(h, LoopStarted{}); err != nil || w.closing {
		return err
	}

	for {
		var err error
		if w.redrawPending {
			err = w.surface.poll()
		} else {
			err = w.surface.wait(w.untilTick())
		}
		if err != nil {
			return err
		}

		for _, ev := range w.surface.drain() {
			if err := w.deliver(h, ev); err != nil || w.closing {
				return err
			}
		}

		if err := w.tick(h); err != nil || w.closing {
			return err
		}

		if w.redrawPending {
			w.redrawPending = false
			if err := w.dispatch(h, RedrawRequested{}); err != nil || w.closing {
				return err
			}
			if err := w.surface.swapBuffers(); err != nil {
				return err
			}
		}
	}
}

// deliver applies the loop's own handling of ev around the handler call.
func (w *Window) deliver(h Handler, ev Event) error {
	switch ev := ev.(type) {
	case Resized:
		if ev.Width > 0 && ev.Height > 0 {
			w.redrawPending = true
		}
		return w.dispatch(h, ev)

	case RedrawRequested:
		// Refreshes from the platform are merged with redraw requests.
		w.redrawPending = true
		return nil

	case ModifiersChanged:
		w.modifiers = ev.Modifiers
		return w.dispatch(h, ev)

	case CloseRequested:
		w.keepOpen = false
		if err := w.dispatch(h, ev); err != nil {
			return err
		}
		if !w.keepOpen {
			w.closing = true
		}
		return nil
	}

	return w.dispatch(h, ev)
}

func (w *Window) dispatch(h Handler, ev Event) error {
	c := &Control{w: w}
	defer c.release()
	return h(c, ev)
}

// untilTick is how long the loop may block before the next tick is due.
func (w *Window) untilTick() time.Duration {
	if w.tickDuration <= 0 {
		return 0
	}
	d := w.nextTick.Sub(w.now())
	if d <= 0 {
		// Non-positive means forever to wait, so wake as soon as possible.
		return time.Nanosecond
	}
	return d
}

func (w *Window) tick(h Handler) error {
	if w.tickDuration <= 0 {
		return nil
	}

	now := w.now()
	if now.Before(w.nextTick) {
		return nil
	}
	ticks := int(now.Sub(w.nextTick)/w.tickDuration) + 1
	w.nextTick = w.nextTick.Add(time.Duration(ticks) * w.tickDuration)

	return w.dispatch(h, Tick{
		TicksPassed: ticks,
		Time:        w.nextTick.Add(-w.tickDuration),
	})
}

func (w *Window) setTickDuration(d time.Duration) {
	w.tickDuration = d
	w.nextTick = w.now().Add(d)
}

// Destroy runs the OnDestroy functions and destroys the window and context
// without running the loop. Run calls it before returning.
// Calling it more than once has no effect.
func (w *Window) Destroy() {
	if w.state == stateClosed {
		return
	}
	w.state = stateClosed

	for i := len(w.onDestroy) - 1; i >= 0; i-- {
		w.onDestroy[i]()
	}
	w.onDestroy = nil

	w.surface.destroy()
	if live == w {
		live = nil
	}
	slog.Info("window destroyed", "title", w.config.Title)
}
