package interaction

import "sync"

// Listener receives window-level pointer events for the lifetime of one
// gesture.
type Listener struct {
	Move func(PointerEvent)
	Up   func(PointerEvent)
}

// Window is the global listener registry a gesture subscribes to when it
// begins. Events delivered here reach the gesture even after the pointer
// has left the rendering surface. A Window is not safe for concurrent use.
type Window struct {
	nextID    int
	listeners map[int]Listener
	order     []int
}

// NewWindow returns an empty registry.
func NewWindow() *Window {
	return &Window{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns the function that removes it. The
// returned function is safe to call more than once.
func (w *Window) Subscribe(l Listener) (unsubscribe func()) {
	id := w.nextID
	w.nextID++
	w.listeners[id] = l
	w.order = append(w.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { w.remove(id) })
	}
}

func (w *Window) remove(id int) {
	delete(w.listeners, id)
	for i, v := range w.order {
		if v == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the listeners in subscription order so a handler may
// unsubscribe while being dispatched.
func (w *Window) snapshot() []Listener {
	out := make([]Listener, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.listeners[id])
	}
	return out
}

// DispatchMove delivers a pointer move to every listener.
func (w *Window) DispatchMove(ev PointerEvent) {
	for _, l := range w.snapshot() {
		if l.Move != nil {
			l.Move(ev)
		}
	}
}

// DispatchUp delivers a pointer release to every listener.
func (w *Window) DispatchUp(ev PointerEvent) {
	for _, l := range w.snapshot() {
		if l.Up != nil {
			l.Up(ev)
		}
	}
}

// Len is the number of registered listeners.
func (w *Window) Len() int {
	return len(w.listeners)
}
