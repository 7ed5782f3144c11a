package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the order of side effects across event, sender and notifier
type recorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *recorder) add(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

type recordingEvent struct {
	rec    *recorder
	fields map[string]string
	resets int
}

func (e *recordingEvent) PreventDefault()           { e.rec.add("prevent") }
func (e *recordingEvent) Fields() map[string]string { return e.fields }
func (e *recordingEvent) Reset() {
	e.rec.add("reset")
	e.resets++
}

type recordingNotifier struct {
	mu        sync.Mutex
	rec       *recorder
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.rec.add("success")
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.rec.add("error")
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type fakeSender struct {
	rec    *recorder
	result Result
	err    error
	got    []map[string]string
}

func (s *fakeSender) Send(_ context.Context, fields map[string]string) (Result, error) {
	s.rec.add("send")
	s.got = append(s.got, fields)
	return s.result, s.err
}

func filledForm(rec *recorder) *recordingEvent {
	return &recordingEvent{
		rec: rec,
		fields: map[string]string{
			FieldName:    "Ada",
			FieldEmail:   "ada@example.com",
			FieldMessage: "We need a website",
		},
	}
}

func TestFlowSubmit_SuccessNotifiesAndResets(t *testing.T) {
	var requests int32
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			got = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				got[k] = v[0]
			}
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	rec := &recorder{}
	notifier := &recordingNotifier{rec: rec}
	ev := filledForm(rec)
	flow := NewFlow(Config{Endpoint: server.URL, AccessKey: "test-key"}, notifier,
		WithHTTPClient(server.Client()))

	err := flow.Submit(context.Background(), ev)

	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests))
	assert.Equal(t, "Ada", got[FieldName])
	assert.Equal(t, "ada@example.com", got[FieldEmail])
	assert.Equal(t, "We need a website", got[FieldMessage])
	assert.Equal(t, "test-key", got[FieldAccessKey])
	assert.Equal(t, []string{DefaultSuccessMessage}, notifier.successes)
	assert.Empty(t, notifier.errors)
	assert.Equal(t, 1, ev.resets)
	assert.Equal(t, StateSucceeded, flow.State())
}

func TestFlowSubmit_RejectionShowsRelayMessage(t *testing.T) {
	rec := &recorder{}
	notifier := &recordingNotifier{rec: rec}
	sender := &fakeSender{rec: rec, result: Result{Success: false, Message: "Invalid key"}}
	ev := filledForm(rec)
	flow := NewFlow(Config{AccessKey: "bad"}, notifier, WithSender(sender))

	err := flow.Submit(context.Background(), ev)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Invalid key", rejected.Message)
	assert.Equal(t, []string{"Invalid key"}, notifier.errors)
	assert.Empty(t, notifier.successes)
	assert.Zero(t, ev.resets)
	assert.Equal(t, StateFailed, flow.State())
}

func TestFlowSubmit_NetworkFaultShowsFaultMessage(t *testing.T) {
	rec := &recorder{}
	notifier := &recordingNotifier{rec: rec}
	ev := filledForm(rec)
	flow := NewFlow(Config{Endpoint: "http://relay.invalid/submit", AccessKey: "k"}, notifier,
		WithHTTPClient(&http.Client{Transport: failingTransport{err: errors.New("Network Error")}}))

	err := flow.Submit(context.Background(), ev)

	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, []string{"Network Error"}, notifier.errors)
	assert.Zero(t, ev.resets)
	assert.Equal(t, StateFailed, flow.State())
}

func TestFlowSubmit_MalformedResponseIsDistinct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	rec := &recorder{}
	notifier := &recordingNotifier{rec: rec}
	ev := filledForm(rec)
	flow := NewFlow(Config{Endpoint: server.URL}, notifier, WithHTTPClient(server.Client()))

	err := flow.Submit(context.Background(), ev)

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrTransport)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "malformed relay response")
	assert.Zero(t, ev.resets)
}

func TestFlowSubmit_PreventDefaultRunsFirst(t *testing.T) {
	outcomes := map[string]*fakeSender{
		"success":   {result: Result{Success: true}},
		"rejection": {result: Result{Message: "nope"}},
		"fault":     {err: errors.New("Network Error")},
	}

	for name, sender := range outcomes {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{}
			sender.rec = rec
			flow := NewFlow(Config{}, &recordingNotifier{rec: rec}, WithSender(sender))

			_ = flow.Submit(context.Background(), filledForm(rec))

			steps := rec.all()
			require.NotEmpty(t, steps)
			assert.Equal(t, "prevent", steps[0])
			assert.Equal(t, "send", steps[1])
		})
	}
}

func TestFlowSubmit_CredentialCannotBeOverriddenByForm(t *testing.T) {
	rec := &recorder{}
	sender := &fakeSender{rec: rec, result: Result{Success: true}}
	ev := filledForm(rec)
	ev.fields[FieldAccessKey] = "user-supplied"
	flow := NewFlow(Config{AccessKey: "configured"}, nil, WithSender(sender))

	require.NoError(t, flow.Submit(context.Background(), ev))
	require.Len(t, sender.got, 1)
	assert.Equal(t, "configured", sender.got[0][FieldAccessKey])
}

func TestFlowSubmit_EmptyCredentialIsStillSent(t *testing.T) {
	rec := &recorder{}
	sender := &fakeSender{rec: rec, result: Result{Success: true}}
	flow := NewFlow(Config{}, nil, WithSender(sender))

	require.NoError(t, flow.Submit(context.Background(), filledForm(rec)))
	value, present := sender.got[0][FieldAccessKey]
	assert.True(t, present)
	assert.Empty(t, value)
}

func TestFlowSubmit_DoubleSubmitSendsTwoRequests(t *testing.T) {
	var requests int32
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	rec := &recorder{}
	var observed []State
	var observedMu sync.Mutex
	flow := NewFlow(Config{Endpoint: server.URL, AccessKey: "k"}, &recordingNotifier{rec: rec},
		WithHTTPClient(server.Client()),
		WithStateObserver(func(s State) {
			observedMu.Lock()
			observed = append(observed, s)
			observedMu.Unlock()
		}))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = flow.Submit(context.Background(), filledForm(rec))
		}()
	}

	// Both requests reach the relay before either is answered
	for i := 0; i < 2; i++ {
		select {
		case <-arrived:
		case <-time.After(5 * time.Second):
			t.Fatal("second submission never reached the relay")
		}
	}
	assert.Equal(t, StateInFlight, flow.State())

	close(release)
	wg.Wait()

	assert.EqualValues(t, 2, atomic.LoadInt32(&requests))
	assert.Equal(t, StateSucceeded, flow.State())

	observedMu.Lock()
	defer observedMu.Unlock()
	require.Len(t, observed, 4)
	assert.Equal(t, StateInFlight, observed[0])
	assert.Contains(t, observed, StateSucceeded)
}

func TestFlowState_StartsIdle(t *testing.T) {
	flow := NewFlow(Config{}, nil)
	assert.Equal(t, StateIdle, flow.State())
	assert.Equal(t, "idle", flow.State().String())
	assert.Equal(t, "in-flight", StateInFlight.String())
}

func TestFormEvent_ResetClearsFields(t *testing.T) {
	called := false
	ev := NewFormEvent(map[string]string{FieldName: "Ada"}, func() { called = true })

	ev.PreventDefault()
	ev.Reset()

	assert.True(t, ev.Prevented())
	assert.True(t, ev.WasReset())
	assert.True(t, called)
	assert.Equal(t, "", ev.Fields()[FieldName])
}
