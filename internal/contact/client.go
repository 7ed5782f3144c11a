package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
)

// maxResponseBytes caps how much of the relay's answer is read
const maxResponseBytes = 1 << 20

// Sender delivers form fields to the relay and returns its decoded answer
type Sender interface {
	Send(ctx context.Context, fields map[string]string) (Result, error)
}

// Client posts multipart form data to the relay endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a relay client. A nil httpClient uses a plain
// http.Client with no timeout of its own.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Endpoint returns the URL submissions are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send issues exactly one POST. Relay rejections come back as a Result with
// Success=false and a nil error; only transport and decode faults are errors.
func (c *Client) Send(ctx context.Context, fields map[string]string) (Result, error) {
	body, contentType, err := encodeFields(fields)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, &TransportError{Err: err}
	}

	// The relay reports rejections with 4xx and a normal body, so the status
	// code is not checked before decoding.
	return DecodeResult(raw)
}

// encodeFields writes fields as multipart/form-data in key order
func encodeFields(fields map[string]string) (*bytes.Buffer, string, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, k := range keys {
		if err := writer.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}

// DecodeResult parses a relay answer. The body must be a JSON object with a
// boolean "success"; "message" is optional but must be a string when present.
func DecodeResult(raw []byte) (Result, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Result{}, malformed("%v", err)
	}
	if envelope == nil {
		return Result{}, malformed("body is null")
	}

	successRaw, ok := envelope["success"]
	if !ok || string(successRaw) == "null" {
		return Result{}, malformed(`missing "success"`)
	}

	var result Result
	if err := json.Unmarshal(successRaw, &result.Success); err != nil {
		return Result{}, malformed(`"success" is not a boolean`)
	}

	if messageRaw, ok := envelope["message"]; ok && string(messageRaw) != "null" {
		if err := json.Unmarshal(messageRaw, &result.Message); err != nil {
			return Result{}, malformed(`"message" is not a string`)
		}
	}

	return result, nil
}
