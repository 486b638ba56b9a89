package glume

import "time"

// Control is handed to each handler call and is only valid during that call.
// Methods called after the handler returns have no effect.
type Control struct {
	w *Window
}

func (c *Control) release() {
	c.w = nil
}

// RequestRedraw schedules a RedrawRequested event after the pending events are delivered.
func (c *Control) RequestRedraw() {
	if c.w == nil {
		return
	}
	c.w.redrawPending = true
}

// Close stops the loop once the handler returns. No further events are delivered.
func (c *Control) Close() {
	if c.w == nil {
		return
	}
	c.w.closing = true
}

// KeepOpen cancels the default handling of CloseRequested.
// It has no effect on other events or after Close.
func (c *Control) KeepOpen() {
	if c.w == nil {
		return
	}
	c.w.keepOpen = true
}

func (c *Control) SetTitle(title string) {
	if c.w == nil {
		return
	}
	c.w.surface.setTitle(title)
}

// SetTickDuration delivers a Tick event every d, starting d from now.
// Zero disables ticks.
func (c *Control) SetTickDuration(d time.Duration) {
	if c.w == nil {
		return
	}
	c.w.setTickDuration(d)
}

// Modifiers returns the modifier keys held as of the last delivered ModifiersChanged.
func (c *Control) Modifiers() ModifierState {
	if c.w == nil {
		return ModifierState{}
	}
	return c.w.modifiers
}

// Size returns the current framebuffer size.
func (c *Control) Size() Size {
	if c.w == nil {
		return Size{}
	}
	return c.w.surface.framebufferSize()
}
