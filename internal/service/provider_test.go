package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const replyText = "胆力：7点（落ち着いている）\n好奇心：8点（質問が多い）"

type captured struct {
	path   string
	auth   string
	apiKey string
	body   string
}

func fakeServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.apiKey = r.Header.Get("x-goog-api-key")
		got.body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

const chatReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-2024-08-06",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "胆力：7点（落ち着いている）\n好奇心：8点（質問が多い）"}
  }]
}`

const emptyChatReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": []
}`

func testRequest() Request {
	return Request{APIKey: "sk-test", Prompt: "評価してください"}
}

func TestOpenAIService_Evaluate(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		req       Request
		wantErr   error
		wantText  string
		wantModel string
	}{
		{
			name:      "ok",
			status:    http.StatusOK,
			body:      chatReply,
			req:       testRequest(),
			wantText:  replyText,
			wantModel: "gpt-4o-2024-08-06",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			req:     testRequest(),
			wantErr: errs.ErrAuthentication,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"Rate limit reached","type":"requests"}}`,
			req:     testRequest(),
			wantErr: errs.ErrRateLimited,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"message":"boom"}}`,
			req:     testRequest(),
			wantErr: errs.ErrTransport,
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    emptyChatReply,
			req:     testRequest(),
			wantErr: errs.ErrEmptyResponse,
		},
		{
			name:    "missing key",
			status:  http.StatusOK,
			body:    chatReply,
			req:     Request{Prompt: "x"},
			wantErr: errs.ErrMissingInput,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, got := fakeServer(t, tc.status, tc.body)
			svc := &OpenAIService{Model: "gpt-4o", BaseURL: srv.URL + "/v1", Timeout: 5 * time.Second, Temperature: -1}

			completion, err := svc.Evaluate(context.Background(), tc.req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.NotContains(t, err.Error(), "sk-test")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, completion.Text)
			assert.Equal(t, tc.wantModel, completion.Model)
			assert.Equal(t, "/v1/chat/completions", got.path)
			assert.Equal(t, "Bearer sk-test", got.auth)
			assert.Equal(t, "gpt-4o", gjson.Get(got.body, "model").String())
			assert.Equal(t, "user", gjson.Get(got.body, "messages.0.role").String())
			assert.False(t, gjson.Get(got.body, "temperature").Exists())
			assert.False(t, gjson.Get(got.body, "response_format").Exists())
		})
	}
}

func TestOpenAIService_Structured(t *testing.T) {
	srv, got := fakeServer(t, http.StatusOK, chatReply)
	svc := &OpenAIService{Model: "gpt-4o", BaseURL: srv.URL, Timeout: 5 * time.Second, Temperature: 0.2}

	req := testRequest()
	req.Structured = true
	req.Model = "gpt-4o-mini"
	completion, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, completion.Structured)
	assert.Equal(t, "gpt-4o-mini", gjson.Get(got.body, "model").String())
	assert.InDelta(t, 0.2, gjson.Get(got.body, "temperature").Float(), 1e-9)
	assert.Equal(t, "json_schema", gjson.Get(got.body, "response_format.type").String())
	assert.Equal(t, "interview_scores", gjson.Get(got.body, "response_format.json_schema.name").String())
	assert.True(t, gjson.Get(got.body, "response_format.json_schema.schema.properties.scores").Exists())
}

func TestOpenAIService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	svc := &OpenAIService{Model: "gpt-4o", BaseURL: base, Timeout: time.Second, Temperature: -1}
	_, err := svc.Evaluate(context.Background(), testRequest())
	assert.ErrorIs(t, err, errs.ErrTransport)
}

func TestOpenRouterService_Evaluate(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantText string
	}{
		{name: "ok", status: http.StatusOK, body: chatReply, wantText: replyText},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"code":401,"message":"No auth credentials found"}}`, wantErr: errs.ErrAuthentication},
		{name: "forbidden", status: http.StatusForbidden, body: `{"error":{"code":403,"message":"moderation"}}`, wantErr: errs.ErrAuthentication},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"code":429,"message":"slow down"}}`, wantErr: errs.ErrRateLimited},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"bad model"}}`, wantErr: errs.ErrRemote},
		{name: "bad gateway", status: http.StatusBadGateway, body: `upstream down`, wantErr: errs.ErrTransport},
		{name: "error in 200", status: http.StatusOK, body: `{"error":{"code":502,"message":"provider returned error"}}`, wantErr: errs.ErrTransport},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`, wantErr: errs.ErrEmptyResponse},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, got := fakeServer(t, tc.status, tc.body)
			svc := &OpenRouterService{Model: "openai/gpt-4o", BaseURL: srv.URL + "/api/v1/", Timeout: 5 * time.Second, Temperature: -1}

			completion, err := svc.Evaluate(context.Background(), testRequest())
			assert.Equal(t, "/api/v1/chat/completions", got.path)
			assert.Equal(t, "Bearer sk-test", got.auth)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.NotContains(t, err.Error(), "sk-test")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, completion.Text)
			assert.Equal(t, "gpt-4o-2024-08-06", completion.Model)
			assert.Equal(t, "openai/gpt-4o", gjson.Get(got.body, "model").String())
			assert.Equal(t, "評価してください", gjson.Get(got.body, "messages.0.content").String())
		})
	}
}

func TestOpenRouterService_Structured(t *testing.T) {
	srv, got := fakeServer(t, http.StatusOK, chatReply)
	svc := &OpenRouterService{Model: "openai/gpt-4o", BaseURL: srv.URL, Timeout: 5 * time.Second, Temperature: 0}

	req := testRequest()
	req.Structured = true
	completion, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, completion.Structured)
	assert.True(t, gjson.Get(got.body, "temperature").Exists())
	assert.Equal(t, "json_schema", gjson.Get(got.body, "response_format.type").String())
	assert.True(t, gjson.Get(got.body, "response_format.json_schema.strict").Bool())
}

func TestCompatibleService_Evaluate(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, body: chatReply},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantErr: errs.ErrAuthentication},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `not json`, wantErr: errs.ErrRateLimited},
		{name: "not found", status: http.StatusNotFound, body: `{"error":{"message":"no such model"}}`, wantErr: errs.ErrRemote},
		{name: "no choices", status: http.StatusOK, body: emptyChatReply, wantErr: errs.ErrEmptyResponse},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, got := fakeServer(t, tc.status, tc.body)
			svc := &CompatibleService{Model: "local-model", BaseURL: srv.URL + "/v1", Timeout: 5 * time.Second, Temperature: -1}

			req := testRequest()
			req.Structured = true
			completion, err := svc.Evaluate(context.Background(), req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, replyText, completion.Text)
			assert.Equal(t, "local-model", completion.Model)
			assert.False(t, completion.Structured)
			assert.Equal(t, "Bearer sk-test", got.auth)
			assert.Equal(t, "local-model", gjson.Get(got.body, "model").String())
		})
	}
}

const geminiReply = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "胆力：7点（落ち着いている）\n好奇心：8点（質問が多い）"}]},
    "finishReason": "STOP"
  }],
  "modelVersion": "gemini-2.5-flash-001"
}`

func TestGeminiService_Evaluate(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, body: geminiReply},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`, wantErr: errs.ErrAuthentication},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`, wantErr: errs.ErrRateLimited},
		{name: "unavailable", status: http.StatusServiceUnavailable, body: `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`, wantErr: errs.ErrTransport},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: errs.ErrEmptyResponse},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, got := fakeServer(t, tc.status, tc.body)
			svc := &GeminiService{Model: "gemini-2.5-flash", BaseURL: srv.URL, Timeout: 5 * time.Second, Temperature: -1}

			req := testRequest()
			req.Structured = true
			completion, err := svc.Evaluate(context.Background(), req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, replyText, completion.Text)
			assert.Equal(t, "gemini-2.5-flash-001", completion.Model)
			assert.Equal(t, "sk-test", got.apiKey)
			assert.Contains(t, got.path, "models/gemini-2.5-flash:generateContent")
			assert.Equal(t, "application/json", gjson.Get(got.body, "generationConfig.responseMimeType").String())
		})
	}
}

func TestClassifyCompatibleError(t *testing.T) {
	err := classifyCompatibleError(assert.AnError)
	assert.ErrorIs(t, err, errs.ErrTransport)

	err = classifyCompatibleError(context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, errs.ErrTransport)
}
