package webhook

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativVentures-hub/focus-group-ai/model"
)

func testPayload() model.Payload {
	return model.Payload{
		SessionType:          "market_research",
		SessionName:          "Q3 Soda Study",
		NumberOfParticipants: 10,
		UserEmail:            "researcher@example.com",
		Categories:           []string{"food_beverage"},
		Gender:               []string{"any"},
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		Source:               model.Source,
	}
}

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second, false)
}

func TestSubmitAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Focus group queued","session_code":"FG-123","participant_count":10}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, KindAck, result.Kind)
	assert.Equal(t, "Focus group queued", result.Message)
	assert.Equal(t, "FG-123", result.SessionCode)
	assert.Equal(t, 10, result.ParticipantCount)
}

func TestSubmitPlainTextAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("OK\n"))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, KindAck, result.Kind)
	assert.Equal(t, "OK", result.Message)
}

func TestSubmitBase64File(t *testing.T) {
	report := []byte("%PDF-1.4 report body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base64Content":"` + base64.StdEncoding.EncodeToString(report) + `","filename":"report.pdf"}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, KindFile, result.Kind)
	assert.Equal(t, "report.pdf", result.Filename)
	assert.Equal(t, report, result.Content)
}

func TestSubmitRawAttachment(t *testing.T) {
	report := []byte("%PDF-1.4 report body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		w.Write(report)
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, KindFile, result.Kind)
	assert.Equal(t, "report.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, report, result.Content)
}

func TestSubmitServerError(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		contentType   string
		body          string
		message       string
		misconfigured bool
	}{
		{
			name:        "json error body",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{"message":"workflow is paused"}`,
			message:     "workflow is paused",
		},
		{
			name:        "text error body",
			status:      http.StatusBadRequest,
			contentType: "text/plain",
			body:        "bad payload",
			message:     "bad payload",
		},
		{
			name:        "empty body falls back to status text",
			status:      http.StatusServiceUnavailable,
			contentType: "text/plain",
			body:        "",
			message:     "Service Unavailable",
		},
		{
			name:          "html page means a misconfigured endpoint",
			status:        http.StatusNotFound,
			contentType:   "text/html",
			body:          "<!DOCTYPE html><html><body>Not Found</body></html>",
			misconfigured: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
			require.Error(t, err)

			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, tt.status, serverErr.Status)
			assert.Equal(t, tt.misconfigured, serverErr.Misconfigured)
			if tt.message != "" {
				assert.Equal(t, tt.message, serverErr.Message)
			}
		})
	}
}

func TestSubmitUndecodableJSONIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{truncated"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
	require.Error(t, err)

	var serverErr *ServerError
	assert.False(t, errors.As(err, &serverErr), "a broken 2xx body is not a server-reported error")
}

func TestSubmitNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := newTestClient(srv.URL).Submit(context.Background(), testPayload())
	require.Error(t, err)
}

func TestSubmitCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := newTestClient(srv.URL).Submit(ctx, testPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitFireAndForget(t *testing.T) {
	received := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(received)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, true)
	result, err := client.Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, KindAck, result.Kind)

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("background request never reached the endpoint")
	}
}
