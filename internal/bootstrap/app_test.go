package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobprep-backend/internal/llm"
	"jobprep-backend/internal/shared/config"
	"jobprep-backend/internal/shared/telemetry"
)

// scriptedClient answers by matching the opening words of the system prompt.
type scriptedClient struct{}

func (scriptedClient) Complete(_ context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	switch {
	case strings.HasPrefix(req.System, "You are an interviewer"):
		return llm.ChatResponse{Text: "Score: 4\nClear structure."}, nil
	case strings.HasPrefix(req.System, "You train corporate interviewers"):
		return llm.ChatResponse{Text: "1. Tell me about a conflict.\n2. Describe a deadline you missed."}, nil
	case strings.Contains(req.System, `Compare the "Original"`):
		return llm.ChatResponse{Text: "1) Tightened wording."}, nil
	default:
		return llm.ChatResponse{Text: "Polished letter."}, nil
	}
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		Env:             "dev",
		LLMProvider:     config.ProviderOpenAI,
		LLMModel:        "gpt-3.5-turbo",
		LLMMaxTokens:    512,
		LLMTemperature:  0.7,
		LLMTimeout:      time.Second,
		ExportStoreType: config.StoreLocal,
		ExportDir:       t.TempDir(),
	}
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestBuildWithClientMemoryFallback(t *testing.T) {
	defer telemetry.SetOutput(&bytes.Buffer{})()

	app, err := BuildWithClient(context.Background(), testConfig(t), scriptedClient{})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.ExportService)
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	defer telemetry.SetOutput(&bytes.Buffer{})()
	cfg := testConfig(t)
	cfg.Env = "production"

	_, err := BuildWithClient(context.Background(), cfg, scriptedClient{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "claude"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}

func TestEndToEndFlow(t *testing.T) {
	defer telemetry.SetOutput(&bytes.Buffer{})()
	app, err := BuildWithClient(context.Background(), testConfig(t), scriptedClient{})
	require.NoError(t, err)
	r := app.Router

	resp := call(t, r, http.MethodPost, "/resumes", `{"user_id":1,"text":"I build APIs."}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = call(t, r, http.MethodPost, "/api/v1/resumes/1/feedback", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"edited_text":"Polished letter.","feedback":"1) Tightened wording."}`, resp.Body.String())

	resp = call(t, r, http.MethodPost, "/interviews/questions", `{"user_id":1,"company":"Acme","role":"SRE"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = call(t, r, http.MethodGet, "/interviews/questions?user_id=1", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var questions []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &questions))
	require.Len(t, questions, 2)

	resp = call(t, r, http.MethodPost, "/interviews/answers", `{"question_id":1,"answer_text":"I listened first."}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = call(t, r, http.MethodPost, "/interviews/evaluate/1", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"score":4,"feedback":"Clear structure."}`, resp.Body.String())

	resp = call(t, r, http.MethodGet, "/dashboard/1", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"user_id":1,"user_name":"User1","total_resumes":1,"reviewed_resumes":1,"total_questions":2,"total_answers":1,"total_evaluated_answers":1}`, resp.Body.String())

	resp = call(t, r, http.MethodGet, "/exporter/1/pdf", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	resp = call(t, r, http.MethodGet, "/exporter/download/pdf/report_user_1.pdf", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
}
