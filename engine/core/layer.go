package core

// Layer is a slice of app behaviour with its own update/render/event hooks.
// Layers render bottom-up and receive events top-down.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // return true if handled; propagation stops
}

type LayerStack struct{ list []Layer }

func (ls *LayerStack) Len() int { return len(ls.list) }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }

func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list[i] = nil
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

// ForEachReverse walks top-down and stops as soon as f returns true.
// It reports whether any layer stopped the walk.
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) bool {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if f(ls.list[i]) {
			return true
		}
	}
	return false
}

// PushLayer attaches l and places it on top of the stack.
func (e *Engine) PushLayer(l Layer) {
	e.Layers.Push(l)
	l.OnAttach(e)
}

// PopLayer detaches the top layer.
func (e *Engine) PopLayer() {
	if l, ok := e.Layers.Pop(); ok {
		l.OnDetach(e)
	}
}

// Dispatch feeds ev to the input tracker, then to layers top-down, and finally
// to the app if no layer consumed it.
func (e *Engine) Dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	if e.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, ev) }) {
		return
	}
	app.OnEvent(e, ev)
}

// Step runs one fixed update for the app and every layer.
func (e *Engine) Step(app App, dt float64) {
	app.OnUpdate(e, dt)
	e.Layers.ForEach(func(l Layer) { l.OnUpdate(e, dt) })
}

// Draw renders the layers bottom-up, then lets the app observe the frame.
func (e *Engine) Draw(app App, alpha float64) {
	e.Layers.ForEach(func(l Layer) { l.OnRender(e, alpha) })
	app.OnRender(e, alpha)
}

// Shutdown detaches every layer, top first, then notifies the app.
func (e *Engine) Shutdown(app App) {
	for e.Layers.Len() > 0 {
		e.PopLayer()
	}
	app.OnShutdown(e)
}
