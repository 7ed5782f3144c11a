package contact

import "sync"

// FormEvent is an Event over a fixed set of field values, for surfaces that
// have no native form element (the CLI and the HTML handler).
type FormEvent struct {
	mu        sync.Mutex
	fields    map[string]string
	prevented bool
	reset     bool
	onReset   func()
}

// NewFormEvent wraps fields. onReset, when non-nil, runs on a successful submit.
func NewFormEvent(fields map[string]string, onReset func()) *FormEvent {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &FormEvent{fields: copied, onReset: onReset}
}

func (e *FormEvent) PreventDefault() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prevented = true
}

func (e *FormEvent) Fields() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Reset clears every field value and runs the reset callback
func (e *FormEvent) Reset() {
	e.mu.Lock()
	for k := range e.fields {
		e.fields[k] = ""
	}
	e.reset = true
	onReset := e.onReset
	e.mu.Unlock()

	if onReset != nil {
		onReset()
	}
}

// Prevented reports whether PreventDefault was called
func (e *FormEvent) Prevented() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevented
}

// WasReset reports whether the form was cleared
func (e *FormEvent) WasReset() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reset
}
