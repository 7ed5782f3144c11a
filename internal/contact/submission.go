// Package contact sends the landing page's contact form to the form-relay
// service and turns the relay's answer into a user notification.
package contact

import (
	"errors"
	"fmt"
	"net/url"
)

// DefaultEndpoint is the relay the form posts to
const DefaultEndpoint = "https://api.web3forms.com/submit"

// DefaultSuccessMessage is shown after the relay accepts a submission
const DefaultSuccessMessage = "Thank you for your submission"

// Form field names sent to the relay
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldMessage   = "message"
	FieldAccessKey = "access_key"
)

// Submission is one outgoing contact request. AccessKey comes from
// configuration, never from the user.
type Submission struct {
	Name      string
	Email     string
	Message   string
	AccessKey string
}

// Fields returns the submission as relay form fields
func (s Submission) Fields() map[string]string {
	return map[string]string{
		FieldName:      s.Name,
		FieldEmail:     s.Email,
		FieldMessage:   s.Message,
		FieldAccessKey: s.AccessKey,
	}
}

// Result is the relay's decoded answer
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrMalformedResponse means the relay answered with something other than a
// JSON object carrying a boolean "success".
var ErrMalformedResponse = errors.New("malformed relay response")

// ErrTransport matches every *TransportError via errors.Is
var ErrTransport = errors.New("relay transport failure")

// TransportError wraps a failure to reach the relay or read its answer.
// Its text is the underlying fault's own message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// RejectedError is returned when the relay answers success=false
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "submission rejected"
	}
	return e.Message
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
