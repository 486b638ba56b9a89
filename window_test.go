package glume

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// fakeSurface hands out one batch of events per wait or poll.
// Once the batches run out, waiting requests a close.
type fakeSurface struct {
	batches [][]Event
	queue   []Event

	waits     []time.Duration
	polls     int
	swaps     int
	title     string
	size      Size
	destroyed bool

	waitErr error
	// onDestroy observes the order of destruction.
	onDestroy func()
}

func (f *fakeSurface) next() {
	if len(f.batches) == 0 {
		f.queue = append(f.queue, CloseRequested{})
		return
	}
	f.queue = append(f.queue, f.batches[0]...)
	f.batches = f.batches[1:]
}

func (f *fakeSurface) wait(timeout time.Duration) error {
	f.waits = append(f.waits, timeout)
	if f.waitErr != nil {
		return f.waitErr
	}
	f.next()
	return nil
}

func (f *fakeSurface) poll() error {
	f.polls++
	if len(f.batches) > 0 {
		f.next()
	}
	return nil
}

func (f *fakeSurface) drain() []Event {
	q := f.queue
	f.queue = nil
	return q
}

func (f *fakeSurface) swapBuffers() error    { f.swaps++; return nil }
func (f *fakeSurface) setTitle(title string) { f.title = title }
func (f *fakeSurface) framebufferSize() Size { return f.size }

func (f *fakeSurface) destroy() {
	f.destroyed = true
	if f.onDestroy != nil {
		f.onDestroy()
	}
}

var validConfig = WindowConfiguration{
	Title:     "test",
	Size:      Size{Width: 800, Height: 600},
	GLVersion: GLVersion{Major: 4, Minor: 5},
}

func withSurface(t *testing.T, s *fakeSurface) *int {
	t.Helper()
	opened := 0
	prev := openSurface
	openSurface = func(WindowConfiguration) (surface, error) {
		opened++
		return s, nil
	}
	t.Cleanup(func() {
		openSurface = prev
		live = nil
	})
	return &opened
}

func buildFake(t *testing.T, batches ...[]Event) (*Window, *fakeSurface) {
	t.Helper()
	s := &fakeSurface{batches: batches, size: Size{Width: 800, Height: 600}}
	withSurface(t, s)
	w, err := BuildWindow(validConfig)
	if err != nil {
		t.Fatalf("BuildWindow failed: %v", err)
	}
	return w, s
}

// record returns a handler that appends every event it sees to events.
func record(events *[]Event, then func(c *Control, ev Event) error) Handler {
	return func(c *Control, ev Event) error {
		*events = append(*events, ev)
		if then != nil {
			return then(c, ev)
		}
		return nil
	}
}

func TestBuildWindowInvalidConfigAllocatesNothing(t *testing.T) {
	s := &fakeSurface{}
	opened := withSurface(t, s)

	for _, cfg := range []WindowConfiguration{
		{Title: "", Size: Size{800, 600}, GLVersion: GLVersion{4, 5}},
		{Title: "x", Size: Size{0, 600}, GLVersion: GLVersion{4, 5}},
		{Title: "x", Size: Size{800, 0}, GLVersion: GLVersion{4, 5}},
		{Title: "x", Size: Size{800, 600}, GLVersion: GLVersion{2, 1}},
	} {
		w, err := BuildWindow(cfg)
		if w != nil {
			t.Errorf("BuildWindow(%+v) returned a window", cfg)
		}
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Errorf("BuildWindow(%+v) = %v; want *ConfigurationError", cfg, err)
		}
	}

	if *opened != 0 {
		t.Fatalf("surface opened %v times for invalid configurations", *opened)
	}
}

func TestBuildWindowPlatformError(t *testing.T) {
	prev := openSurface
	defer func() { openSurface = prev }()
	want := &PlatformError{Op: "glfw.Init", Err: errors.New("no display")}
	openSurface = func(WindowConfiguration) (surface, error) { return nil, want }

	_, err := BuildWindow(validConfig)
	if err != want {
		t.Fatalf("have %v, want %v", err, want)
	}
}

func TestRunDeliversInOrder(t *testing.T) {
	batch := []Event{
		KeyEvent{Key: KeyA, State: Pressed},
		KeyEvent{Key: KeyA, State: Released},
		CursorMoved{X: 1, Y: 2},
	}
	w, s := buildFake(t, batch)

	var events []Event
	if err := w.Run(record(&events, nil)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := append([]Event{LoopStarted{}}, batch...)
	want = append(want, CloseRequested{})
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("have %v, want %v", events, want)
	}
	if !s.destroyed {
		t.Fatal("surface not destroyed after Run")
	}
}

func TestResizeBeforeRedraw(t *testing.T) {
	w, s := buildFake(t,
		[]Event{Resized{Width: 1024, Height: 768}, CursorMoved{}},
		[]Event{Resized{Width: 640, Height: 480}},
	)

	var events []Event
	if err := w.Run(record(&events, nil)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Event{
		LoopStarted{},
		Resized{Width: 1024, Height: 768},
		CursorMoved{},
		RedrawRequested{},
		Resized{Width: 640, Height: 480},
		RedrawRequested{},
		CloseRequested{},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("have %v, want %v", events, want)
	}
	if have, want := s.swaps, 2; have != want {
		t.Fatalf("swapped %v times; want %v", have, want)
	}
}

func TestZeroSizeResizeDoesNotRedraw(t *testing.T) {
	w, s := buildFake(t, []Event{Resized{Width: 0, Height: 0}})

	var events []Event
	if err := w.Run(record(&events, nil)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, ev := range events {
		if _, ok := ev.(RedrawRequested); ok {
			t.Fatal("RedrawRequested delivered for a zero size")
		}
	}
	if s.swaps != 0 {
		t.Fatalf("swapped %v times", s.swaps)
	}
}

func TestRequestRedrawMergesRefreshes(t *testing.T) {
	w, s := buildFake(t, []Event{RedrawRequested{}, RedrawRequested{}})

	var events []Event
	err := w.Run(record(&events, func(c *Control, ev Event) error {
		if _, ok := ev.(LoopStarted); ok {
			c.RequestRedraw()
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	redraws := 0
	for _, ev := range events {
		if _, ok := ev.(RedrawRequested); ok {
			redraws++
		}
	}
	if redraws != 1 {
		t.Fatalf("have %v redraws, want 1 (%v)", redraws, events)
	}
	if s.polls == 0 {
		t.Fatal("loop blocked with a redraw pending")
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	w, _ := buildFake(t, []Event{
		KeyEvent{Key: KeyEscape, State: Pressed},
		KeyEvent{Key: KeyEscape, State: Released},
		Resized{Width: 10, Height: 10},
	})

	var events []Event
	err := w.Run(record(&events, func(c *Control, ev Event) error {
		if k, ok := ev.(KeyEvent); ok && k.Key == KeyEscape {
			c.Close()
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("Run returned %v after Close", err)
	}

	want := []Event{LoopStarted{}, KeyEvent{Key: KeyEscape, State: Pressed}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("have %v, want %v", events, want)
	}
}

func TestCloseDuringRedrawSkipsSwap(t *testing.T) {
	w, s := buildFake(t, []Event{Resized{Width: 10, Height: 10}})

	err := w.Run(func(c *Control, ev Event) error {
		if _, ok := ev.(RedrawRequested); ok {
			c.Close()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.swaps != 0 {
		t.Fatalf("swapped %v times after Close", s.swaps)
	}
}

func TestCloseOnLoopStarted(t *testing.T) {
	w, s := buildFake(t, []Event{CursorEntered{}})

	var events []Event
	err := w.Run(record(&events, func(c *Control, ev Event) error {
		c.Close()
		return nil
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(events, []Event{LoopStarted{}}) {
		t.Fatalf("have %v", events)
	}
	if len(s.waits) != 0 {
		t.Fatal("loop waited for events after Close")
	}
}

func TestHandlerErrorStopsLoop(t *testing.T) {
	w, s := buildFake(t, []Event{
		KeyEvent{Key: KeyA},
		KeyEvent{Key: KeyB},
		KeyEvent{Key: KeyC},
	})

	boom := errors.New("boom")
	var events []Event
	err := w.Run(record(&events, func(c *Control, ev Event) error {
		if k, ok := ev.(KeyEvent); ok && k.Key == KeyB {
			return boom
		}
		return nil
	}))
	if err != boom {
		t.Fatalf("Run returned %v; want %v", err, boom)
	}

	want := []Event{LoopStarted{}, KeyEvent{Key: KeyA}, KeyEvent{Key: KeyB}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("have %v, want %v", events, want)
	}
	if !s.destroyed {
		t.Fatal("surface not destroyed after handler error")
	}
}

func TestCloseRequestedDefaultAndKeepOpen(t *testing.T) {
	w, _ := buildFake(t,
		[]Event{CloseRequested{}},
		[]Event{KeyEvent{Key: KeyQ}},
	)

	var events []Event
	closeRequests := 0
	err := w.Run(record(&events, func(c *Control, ev Event) error {
		if _, ok := ev.(CloseRequested); ok {
			closeRequests++
			if closeRequests == 1 {
				c.KeepOpen()
			}
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Event{LoopStarted{}, CloseRequested{}, KeyEvent{Key: KeyQ}, CloseRequested{}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("have %v, want %v", events, want)
	}
}

func TestPlatformErrorEndsRun(t *testing.T) {
	w, s := buildFake(t)
	s.waitErr = &PlatformError{Op: "wait events", Err: errors.New("lost display")}

	err := w.Run(func(*Control, Event) error { return nil })
	var perr *PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("Run returned %v; want *PlatformError", err)
	}
	if !s.destroyed {
		t.Fatal("surface not destroyed after platform error")
	}
}

func TestRunTwice(t *testing.T) {
	w, _ := buildFake(t)
	if err := w.Run(func(*Control, Event) error { return nil }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := w.Run(func(*Control, Event) error { return nil }); err != ErrWindowClosed {
		t.Fatalf("second Run returned %v; want %v", err, ErrWindowClosed)
	}
}

func TestOnDestroyRunsBeforeContextDestroyed(t *testing.T) {
	w, s := buildFake(t)

	var order []string
	w.OnDestroy(func() { order = append(order, "buffers") })
	w.OnDestroy(func() { order = append(order, "shaders") })
	s.onDestroy = func() { order = append(order, "context") }

	if err := w.Run(func(*Control, Event) error { return nil }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"shaders", "buffers", "context"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("have %v, want %v", order, want)
	}
}

func TestControlInertAfterCallback(t *testing.T) {
	w, s := buildFake(t, []Event{CursorEntered{}})

	var kept *Control
	err := w.Run(func(c *Control, ev Event) error {
		if _, ok := ev.(LoopStarted); ok {
			kept = c
			return nil
		}
		kept.Close()
		kept.SetTitle("stale")
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.title == "stale" {
		t.Fatal("stale Control changed the title")
	}
	if kept.Size() != (Size{}) {
		t.Fatal("stale Control reported a size")
	}
}

func TestControlAccessors(t *testing.T) {
	w, s := buildFake(t, []Event{ModifiersChanged{Modifiers: ModifierState{Shift: true}}, CursorEntered{}})

	err := w.Run(func(c *Control, ev Event) error {
		switch ev.(type) {
		case LoopStarted:
			c.SetTitle("renamed")
			if have, want := c.Size(), (Size{Width: 800, Height: 600}); have != want {
				t.Errorf("Size() = %v; want %v", have, want)
			}
			if c.Modifiers().Shift {
				t.Error("Modifiers() reported shift before any ModifiersChanged")
			}
		case CursorEntered:
			if !c.Modifiers().Shift {
				t.Error("Modifiers() lost shift")
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.title != "renamed" {
		t.Fatalf("title = %q", s.title)
	}
}

func TestTicks(t *testing.T) {
	w, s := buildFake(t, []Event{CursorEntered{}}, []Event{CursorLeft{}})

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := start
	w.now = func() time.Time { return clock }

	var ticks []Tick
	err := w.Run(func(c *Control, ev Event) error {
		switch ev := ev.(type) {
		case LoopStarted:
			c.SetTickDuration(time.Second)
		case CursorEntered:
			clock = start.Add(3500 * time.Millisecond)
		case Tick:
			ticks = append(ticks, ev)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ticks) != 1 {
		t.Fatalf("have %v ticks, want 1", len(ticks))
	}
	if have, want := ticks[0].TicksPassed, 3; have != want {
		t.Fatalf("TicksPassed = %v; want %v", have, want)
	}
	if have, want := ticks[0].Time, start.Add(3*time.Second); !have.Equal(want) {
		t.Fatalf("Time = %v; want %v", have, want)
	}
	if have, want := s.waits[0], time.Second; have != want {
		t.Fatalf("first wait %v; want %v", have, want)
	}
	if have, want := s.waits[1], 500*time.Millisecond; have != want {
		t.Fatalf("wait after tick %v; want %v", have, want)
	}
}

func TestNoTicksWaitsIndefinitely(t *testing.T) {
	w, s := buildFake(t, []Event{CursorEntered{}})
	if err := w.Run(func(*Control, Event) error { return nil }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, d := range s.waits {
		if d != 0 {
			t.Fatalf("wait %v had timeout %v", i, d)
		}
	}
}

func TestDestroyWithoutRun(t *testing.T) {
	w, s := buildFake(t)

	released := 0
	w.OnDestroy(func() { released++ })
	w.Destroy()
	w.Destroy()

	if released != 1 {
		t.Fatalf("OnDestroy ran %v times", released)
	}
	if !s.destroyed {
		t.Fatal("surface not destroyed")
	}
	if err := w.Run(func(*Control, Event) error { return nil }); err != ErrWindowClosed {
		t.Fatalf("Run after Destroy returned %v; want %v", err, ErrWindowClosed)
	}
}

func TestContinuousRedraw(t *testing.T) {
	w, s := buildFake(t)

	frames := 0
	err := w.Run(func(c *Control, ev Event) error {
		switch ev.(type) {
		case LoopStarted:
			c.RequestRedraw()
		case RedrawRequested:
			frames++
			if frames < 3 {
				c.RequestRedraw()
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 3 || s.swaps != 3 {
		t.Fatalf("have %v frames and %v swaps, want 3 of each", frames, s.swaps)
	}
}

func TestModifiersFollowDelivery(t *testing.T) {
	shift := ModifierState{Shift: true}
	w, _ := buildFake(t, []Event{
		ModifiersChanged{Modifiers: shift},
		KeyEvent{Key: KeyA, State: Pressed, Modifiers: shift},
		ModifiersChanged{},
		KeyEvent{Key: KeyA, State: Released},
	})

	var held []ModifierState
	err := w.Run(func(c *Control, ev Event) error {
		if _, ok := ev.(KeyEvent); ok {
			held = append(held, c.Modifiers())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []ModifierState{shift, {}}
	if !reflect.DeepEqual(held, want) {
		t.Fatalf("have %v, want %v", held, want)
	}
}

func TestSizeAfterDestroy(t *testing.T) {
	w, s := buildFake(t)
	if err := w.Run(func(*Control, Event) error { return nil }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if have, want := w.Size(), (Size{}); have != want {
		t.Fatalf("Size() after Run = %v; want %v", have, want)
	}

	w, s = buildFake(t)
	if have, want := w.Size(), s.size; have != want {
		t.Fatalf("Size() = %v; want %v", have, want)
	}
	w.Destroy()
	if have, want := w.Size(), (Size{}); have != want {
		t.Fatalf("Size() after Destroy = %v; want %v", have, want)
	}
}

func TestOneLiveWindow(t *testing.T) {
	s := &fakeSurface{size: Size{Width: 800, Height: 600}}
	opened := withSurface(t, s)

	first, err := BuildWindow(validConfig)
	if err != nil {
		t.Fatalf("BuildWindow: %v", err)
	}
	second, err := BuildWindow(validConfig)
	if err != ErrWindowExists {
		t.Fatalf("second BuildWindow returned %v; want %v", err, ErrWindowExists)
	}
	if second != nil {
		t.Fatal("second BuildWindow returned a window")
	}
	if *opened != 1 {
		t.Fatalf("have %v surfaces opened, want 1", *opened)
	}

	first.Destroy()
	third, err := BuildWindow(validConfig)
	if err != nil {
		t.Fatalf("BuildWindow after Destroy: %v", err)
	}
	third.Destroy()
	if *opened != 2 {
		t.Fatalf("have %v surfaces opened, want 2", *opened)
	}
}

func TestTickAfterLongStall(t *testing.T) {
	w, _ := buildFake(t, []Event{CursorEntered{}}, []Event{CursorLeft{}})

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := start
	w.now = func() time.Time { return clock }

	var ticks []Tick
	err := w.Run(func(c *Control, ev Event) error {
		switch ev := ev.(type) {
		case LoopStarted:
			c.SetTickDuration(time.Nanosecond)
		case CursorEntered:
			clock = start.Add(time.Hour)
		case Tick:
			ticks = append(ticks, ev)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ticks) != 1 {
		t.Fatalf("have %v ticks, want 1", len(ticks))
	}
	if have, want := ticks[0].TicksPassed, int(time.Hour); have != want {
		t.Fatalf("TicksPassed = %v; want %v", have, want)
	}
	if have, want := ticks[0].Time, start.Add(time.Hour); !have.Equal(want) {
		t.Fatalf("Time = %v; want %v", have, want)
	}
}
