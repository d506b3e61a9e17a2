// Package webhook is the outbound client for the focus-group processing
// endpoint: one POST per submit, no retries, no relay chains.
package webhook

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/CreativVentures-hub/focus-group-ai/log"
	"github.com/CreativVentures-hub/focus-group-ai/model"
)

// response bodies above this size are cut off; generated reports are small
const maxResponseBytes = 10 << 20

type ResultKind string

const (
	// KindAck means the request was acknowledged; the results arrive by email.
	KindAck ResultKind = "ack"
	// KindFile means the response carried a generated report for download.
	KindFile ResultKind = "file"
)

type Result struct {
	Kind             ResultKind `json:"kind"`
	Message          string     `json:"message,omitempty"`
	SessionCode      string     `json:"session_code,omitempty"`
	ParticipantCount int        `json:"participant_count,omitempty"`

	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Content     []byte `json:"content,omitempty"`
}

// ServerError is a non-2xx answer from the endpoint. Misconfigured marks an
// HTML body, the symptom of a wrong URL or a platform error page.
type ServerError struct {
	Status        int
	Message       string
	Misconfigured bool
}

func (e *ServerError) Error() string {
	if e.Misconfigured {
		return "the webhook endpoint returned an error page; check the configured URL"
	}
	return e.Message
}

type Client struct {
	url           string
	http          *http.Client
	timeout       time.Duration
	fireAndForget bool
}

func NewClient(url string, timeout time.Duration, fireAndForget bool) *Client {
	return &Client{
		url:           url,
		http:          &http.Client{Timeout: timeout},
		timeout:       timeout,
		fireAndForget: fireAndForget,
	}
}

// Submit performs the single outbound request for a validated payload.
// In fire-and-forget mode the request is dispatched in the background and an
// immediate ack is returned; delivery failures are only logged. This trades
// lost-failure visibility for not blocking the user on a slow AI pipeline.
func (c *Client) Submit(ctx context.Context, p model.Payload) (*Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "webhook.marshal")
	}

	if c.fireAndForget {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
			defer cancel()

			_, err := c.post(ctx, body)
			if err != nil {
				log.Errorf("webhook.fire_and_forget: %s", err)
			}
		}()
		return &Result{Kind: KindAck, Message: "accepted"}, nil
	}

	return c.post(ctx, body)
}

func (c *Client) post(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "webhook.new_request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "webhook.request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "webhook.read_response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverError(resp.StatusCode, raw)
	}
	return decodeSuccess(resp, raw)
}

// decodeSuccess branches on headers before touching the body, so a binary
// report never goes through the JSON decoder.
func decodeSuccess(resp *http.Response, raw []byte) (*Result, error) {
	if filename, ok := attachmentFilename(resp.Header.Get("Content-Disposition")); ok {
		return &Result{
			Kind:        KindFile,
			Filename:    filename,
			ContentType: resp.Header.Get("Content-Type"),
			Content:     raw,
		}, nil
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		ack := struct {
			Status           string `json:"status"`
			Message          string `json:"message"`
			SessionCode      string `json:"session_code"`
			ParticipantCount int    `json:"participant_count"`
			Base64Content    string `json:"base64Content"`
			Filename         string `json:"filename"`
		}{}
		err := json.Unmarshal(raw, &ack)
		if err != nil {
			// an unreadable 2xx body is a transport problem, not a user error
			return nil, errors.Wrap(err, "webhook.parse_response")
		}

		if ack.Base64Content != "" && ack.Filename != "" {
			content, err := base64.StdEncoding.DecodeString(ack.Base64Content)
			if err != nil {
				return nil, errors.Wrap(err, "webhook.decode_file")
			}
			return &Result{
				Kind:     KindFile,
				Filename: ack.Filename,
				Content:  content,
			}, nil
		}

		if ack.Status == "error" {
			return nil, &ServerError{Status: resp.StatusCode, Message: ack.Message}
		}
		return &Result{
			Kind:             KindAck,
			Message:          ack.Message,
			SessionCode:      ack.SessionCode,
			ParticipantCount: ack.ParticipantCount,
		}, nil
	}

	// any other 2xx body is itself the success signal
	return &Result{Kind: KindAck, Message: strings.TrimSpace(string(raw))}, nil
}

func serverError(status int, raw []byte) error {
	body := strings.TrimSpace(string(raw))

	if looksLikeHTML(body) {
		return &ServerError{Status: status, Misconfigured: true}
	}

	if len(raw) > 0 {
		failure := struct {
			Message string `json:"message"`
		}{}
		if err := json.Unmarshal(raw, &failure); err == nil && failure.Message != "" {
			return &ServerError{Status: status, Message: failure.Message}
		}
		if body != "" {
			return &ServerError{Status: status, Message: body}
		}
	}
	return &ServerError{Status: status, Message: http.StatusText(status)}
}

func attachmentFilename(disposition string) (string, bool) {
	if disposition == "" {
		return "", false
	}
	mediaType, params, err := mime.ParseMediaType(disposition)
	if err != nil || mediaType != "attachment" {
		return "", false
	}
	return params["filename"], true
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func looksLikeHTML(body string) bool {
	head := strings.ToLower(body)
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
