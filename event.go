package glume

import (
	"fmt"
	"time"
)

// Event is one of the event types declared in this file.
type Event interface {
	event()
}

// KeyState is whether a key or button went down or up.
type KeyState int

const (
	Pressed KeyState = iota
	Released
)

func (s KeyState) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	}
	return fmt.Sprintf("KeyState(%d)", int(s))
}

// ModifierState is the set of modifier keys held when an event was produced.
type ModifierState struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	Super    bool
	CapsLock bool
	NumLock  bool
}

// MouseButton numbers mouse buttons from zero, starting with the left button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// LoopStarted is delivered once, before any other event.
type LoopStarted struct{}

// Resized carries the new framebuffer size in pixels.
type Resized struct {
	Width, Height int
}

// RedrawRequested asks the handler to draw a frame. Buffers are swapped after it returns.
type RedrawRequested struct{}

type KeyEvent struct {
	Key       Key
	State     KeyState
	Repeat    bool
	Modifiers ModifierState
}

// CloseRequested is delivered when the user asks to close the window.
// The window closes after the handler returns unless it calls Control.KeepOpen.
type CloseRequested struct{}

// Tick is delivered when at least one tick period has elapsed.
type Tick struct {
	TicksPassed int
	Time        time.Time
}

type MouseButtonEvent struct {
	Button    MouseButton
	State     KeyState
	Modifiers ModifierState
}

// CursorMoved is in screen coordinates relative to the top-left of the window.
type CursorMoved struct {
	X, Y float64
}

type CursorEntered struct{}

type CursorLeft struct{}

type MouseWheel struct {
	DeltaX, DeltaY float64
}

type Focused struct {
	Focused bool
}

type Moved struct {
	X, Y int
}

type DroppedFiles struct {
	Paths []string
}

type ReceivedCharacter struct {
	Char rune
}

type ModifiersChanged struct {
	Modifiers ModifierState
}

type Iconified struct {
	Iconified bool
}

func (LoopStarted) event()       {}
func (Resized) event()           {}
func (RedrawRequested) event()   {}
func (KeyEvent) event()          {}
func (CloseRequested) event()    {}
func (Tick) event()              {}
func (MouseButtonEvent) event()  {}
func (CursorMoved) event()       {}
func (CursorEntered) event()     {}
func (CursorLeft) event()        {}
func (MouseWheel) event()        {}
func (Focused) event()           {}
func (Moved) event()             {}
func (DroppedFiles) event()      {}
func (ReceivedCharacter) event() {}
func (ModifiersChanged) event()  {}
func (Iconified) event()         {}
