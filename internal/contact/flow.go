package contact

import (
	"context"
	"net/http"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/balkashynov/landing/internal/logger"
)

// State is where the flow is in its request/response cycle
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a form submit as seen by the flow. The view supplies it.
type Event interface {
	// PreventDefault stops the surface's own submit handling
	PreventDefault()
	// Fields returns every named field of the form
	Fields() map[string]string
	// Reset clears the form's fields
	Reset()
}

// Notifier shows one transient message to the user
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Config is everything the flow needs from the outside, fixed at construction
type Config struct {
	Endpoint       string
	AccessKey      string
	SuccessMessage string
}

// Flow runs contact form submissions: one relay request per Submit call, with
// the outcome mapped onto a Notifier. Concurrent Submit calls are not merged.
type Flow struct {
	cfg      Config
	sender   Sender
	notifier Notifier
	log      *logger.Logger

	mu       sync.Mutex
	state    State
	inFlight int
	observer func(State)
}

// FlowOption customizes a Flow
type FlowOption func(*Flow)

// WithSender replaces the relay client
func WithSender(s Sender) FlowOption {
	return func(f *Flow) { f.sender = s }
}

// WithHTTPClient sets the HTTP client used by the default relay client
func WithHTTPClient(c *http.Client) FlowOption {
	return func(f *Flow) { f.sender = NewClient(f.cfg.Endpoint, c) }
}

// WithLogger sets the flow's logger
func WithLogger(l *logger.Logger) FlowOption {
	return func(f *Flow) { f.log = l }
}

// WithStateObserver registers fn to be called on every state change
func WithStateObserver(fn func(State)) FlowOption {
	return func(f *Flow) { f.observer = fn }
}

// NewFlow builds a flow around cfg. Without WithSender the flow posts to
// cfg.Endpoint using a Client.
func NewFlow(cfg Config, notifier Notifier, opts ...FlowOption) *Flow {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.SuccessMessage == "" {
		cfg.SuccessMessage = DefaultSuccessMessage
	}

	f := &Flow{
		cfg:      cfg,
		notifier: notifier,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.sender == nil {
		f.sender = NewClient(cfg.Endpoint, nil)
	}
	if f.notifier == nil {
		f.notifier = discardNotifier{}
	}

	return f
}

// State returns the current state. While any submission is outstanding the
// state is StateInFlight; afterwards it reflects the last one to finish.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit handles one submit event. PreventDefault runs before anything else.
// The returned error is nil on success, a *RejectedError when the relay said
// no, a *TransportError when it could not be reached, or wraps
// ErrMalformedResponse when its answer could not be decoded.
func (f *Flow) Submit(ctx context.Context, ev Event) error {
	ev.PreventDefault()

	payload := make(map[string]string)
	for k, v := range ev.Fields() {
		payload[k] = v
	}
	// The credential always comes from configuration, even if the form had one
	payload[FieldAccessKey] = f.cfg.AccessKey

	log := f.log.WithFields(map[string]any{
		"submission": ulid.Make().String(),
		"endpoint":   f.cfg.Endpoint,
		"fields":     len(payload),
	})

	f.begin()
	log.Debug("submitting contact form")

	result, err := f.sender.Send(ctx, payload)
	if err != nil {
		f.finish(StateFailed)
		log.Error(err, "contact submission failed")
		f.notifier.Error(err.Error())
		return err
	}

	if !result.Success {
		f.finish(StateFailed)
		log.With("relay_message", result.Message).Warn("relay rejected contact submission")
		f.notifier.Error(result.Message)
		return &RejectedError{Message: result.Message}
	}

	f.finish(StateSucceeded)
	log.Info("contact submission accepted")
	f.notifier.Success(f.cfg.SuccessMessage)
	ev.Reset()
	return nil
}

func (f *Flow) begin() {
	f.mu.Lock()
	f.inFlight++
	f.state = StateInFlight
	observer := f.observer
	f.mu.Unlock()

	if observer != nil {
		observer(StateInFlight)
	}
}

func (f *Flow) finish(outcome State) {
	f.mu.Lock()
	f.inFlight--
	if f.inFlight == 0 {
		f.state = outcome
	}
	state := f.state
	observer := f.observer
	f.mu.Unlock()

	if observer != nil {
		observer(state)
	}
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}
