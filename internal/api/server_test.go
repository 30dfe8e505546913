package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authapi "github.com/Rohang10/saas-copilot/internal/api/auth"
	"github.com/Rohang10/saas-copilot/internal/api/middleware"
	ragapi "github.com/Rohang10/saas-copilot/internal/api/rag"
	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/safety"
	ragusecase "github.com/Rohang10/saas-copilot/internal/usecase/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminKey = "admin-key"

type fakeRAG struct {
	asked      []entity.AskRequest
	ingestErr  error
	readyErr   error
	indexed    int
	ingestRuns int
}

func (f *fakeRAG) Ingest(ctx context.Context) (*entity.IngestResult, error) {
	f.ingestRuns++
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return &entity.IngestResult{Status: entity.IngestStatusIngested, Chunks: 3}, nil
}

func (f *fakeRAG) Ask(ctx context.Context, req entity.AskRequest) *entity.AnswerResponse {
	f.asked = append(f.asked, req)
	return &entity.AnswerResponse{
		Answer:     "I do not have enough information to answer this question.",
		Sources:    []entity.Source{},
		Status:     entity.StatusNotReady,
		Confidence: entity.ConfidenceLow,
		TraceID:    "trace-1",
	}
}

func (f *fakeRAG) Readiness(ctx context.Context) (*entity.ReadyResponse, error) {
	if f.readyErr != nil {
		return nil, f.readyErr
	}
	status := entity.ReadinessNotReady
	if f.indexed > 0 {
		status = entity.ReadinessReady
	}
	return &entity.ReadyResponse{Status: status, DocumentsIndexed: f.indexed}, nil
}

func (f *fakeRAG) Evaluation() *entity.EvaluationResponse {
	return &entity.EvaluationResponse{Status: "not_implemented", MinSimilarity: 0.15}
}

type fakeAuth struct{}

func (fakeAuth) Signup(ctx context.Context, req entity.SignupRequest) (*entity.AuthResponse, error) {
	if req.Email == "taken@example.com" {
		return nil, entity.ErrEmailTaken
	}
	return &entity.AuthResponse{
		AccessToken: "token",
		TokenType:   entity.TokenTypeBearer,
		User:        entity.UserDTO{ID: "user-1", Name: req.Name, Email: req.Email},
	}, nil
}

func (fakeAuth) Login(ctx context.Context, req entity.LoginRequest) (*entity.TokenResponse, error) {
	if req.Password != "secret1" {
		return nil, entity.ErrInvalidCredentials
	}
	return &entity.TokenResponse{AccessToken: "token", TokenType: entity.TokenTypeBearer}, nil
}

func (fakeAuth) Authenticate(ctx context.Context, token string) (string, error) {
	if token != "token" {
		return "", entity.ErrInvalidToken
	}
	return "user-1", nil
}

func (fakeAuth) Me(ctx context.Context, userID string) (*entity.UserDTO, error) {
	return &entity.UserDTO{ID: userID, Name: "Ada", Email: "ada@example.com"}, nil
}

func newTestRouter(rag *fakeRAG) http.Handler {
	return SetupRouter(
		authapi.NewHandler(fakeAuth{}),
		ragapi.NewHandler(rag, testAdminKey),
		config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		zap.NewNop(),
	)
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{}), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.TraceIDHeader))
}

func TestReady(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{indexed: 4}), http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","documents_indexed":4}`, rec.Body.String())

	rec = do(t, newTestRouter(&fakeRAG{readyErr: entity.ErrVectorStore}), http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAsk_QueryParameters(t *testing.T) {
	rag := &fakeRAG{}

	rec := do(t, newTestRouter(rag), http.MethodPost, "/rag/ask?question=How+do+refunds+work%3F&top_k=3", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rag.asked, 1)
	assert.Equal(t, entity.AskRequest{Question: "How do refunds work?", TopK: 3}, rag.asked[0])

	resp := decode[entity.AnswerResponse](t, rec)
	assert.Equal(t, entity.StatusNotReady, resp.Status)
	assert.NotNil(t, resp.Sources)
}

func TestAsk_JSONBody(t *testing.T) {
	rag := &fakeRAG{}

	rec := do(t, newTestRouter(rag), http.MethodPost, "/rag/ask", `{"question":"How do refunds work?","top_k":2}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rag.asked, 1)
	assert.Equal(t, entity.AskRequest{Question: "How do refunds work?", TopK: 2}, rag.asked[0])
}

func TestAsk_MalformedInputStillAnswers(t *testing.T) {
	rag := &fakeRAG{}
	router := newTestRouter(rag)

	rec := do(t, router, http.MethodPost, "/rag/ask?top_k=many", `{not json`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/rag/ask", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, rag.asked, 2)
	assert.Equal(t, entity.AskRequest{}, rag.asked[0])
	assert.Equal(t, entity.AskRequest{}, rag.asked[1])
}

func TestIngest(t *testing.T) {
	t.Run("forbidden without key", func(t *testing.T) {
		rag := &fakeRAG{}
		rec := do(t, newTestRouter(rag), http.MethodPost, "/rag/ingest", "", map[string]string{middleware.AdminKeyHeader: "wrong"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, rag.ingestRuns)
	})

	t.Run("ingested", func(t *testing.T) {
		rec := do(t, newTestRouter(&fakeRAG{}), http.MethodPost, "/rag/ingest", "", map[string]string{middleware.AdminKeyHeader: testAdminKey})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ingested","chunks":3}`, rec.Body.String())
	})

	t.Run("no documents", func(t *testing.T) {
		rag := &fakeRAG{ingestErr: entity.ErrNoDocumentsFound}
		rec := do(t, newTestRouter(rag), http.MethodPost, "/rag/ingest", "", map[string]string{middleware.AdminKeyHeader: testAdminKey})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode[entity.IngestErrorResponse](t, rec)
		assert.Equal(t, entity.IngestStatusError, body.Status)
		assert.Equal(t, "No documents found to ingest", body.Message)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		rag := &fakeRAG{ingestErr: errors.New("store down")}
		rec := do(t, newTestRouter(rag), http.MethodPost, "/rag/ingest", "", map[string]string{middleware.AdminKeyHeader: testAdminKey})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "store down")
	})
}

func TestEvaluate(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{}), http.MethodPost, "/rag/evaluate", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.15, decode[entity.EvaluationResponse](t, rec).MinSimilarity)
}

func TestAuthRoutes(t *testing.T) {
	router := newTestRouter(&fakeRAG{})

	rec := do(t, router, http.MethodPost, "/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", decode[entity.AuthResponse](t, rec).User.ID)

	rec = do(t, router, http.MethodPost, "/auth/signup", `{"name":"Ada","email":"taken@example.com","password":"secret1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decode[entity.ErrorResponse](t, rec).Message)

	rec = do(t, router, http.MethodPost, "/auth/signup", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode[entity.ErrorResponse](t, rec).Message)

	rec = do(t, router, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"secret1"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token", decode[entity.TokenResponse](t, rec).AccessToken)

	rec = do(t, router, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/auth/me", "", map[string]string{"Authorization": "Bearer token"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@example.com", decode[entity.UserDTO](t, rec).Email)
}

func TestPreflight(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{}), http.MethodOptions, "/rag/ask", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerSpec(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{}), http.MethodGet, "/docs/swagger.yaml", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/rag/ask")
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{}), http.MethodGet, "/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, entity.ErrorResponse{Error: "Not Found", Message: "Not found"}, decode[entity.ErrorResponse](t, rec))
}

func TestDocsRedirect(t *testing.T) {
	rec := do(t, newTestRouter(&fakeRAG{}), http.MethodGet, "/docs", "", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/docs/index.html", rec.Header().Get("Location"))
}

type emptyStore struct{}

func (emptyStore) Add(ctx context.Context, chunks []entity.Chunk) error { return nil }

func (emptyStore) Count(ctx context.Context) (int, error) { return 0, nil }

func (emptyStore) Query(ctx context.Context, embedding []float32, topK int) (entity.RetrievalResult, error) {
	return nil, nil
}

func TestAsk_FreshTraceIDPerCall(t *testing.T) {
	uc := ragusecase.NewUsecase(nil, nil, nil, emptyStore{}, nil, safety.NewGuard(), config.RAGConfig{}, zap.NewNop())
	router := SetupRouter(
		authapi.NewHandler(fakeAuth{}),
		ragapi.NewHandler(uc, testAdminKey),
		config.CORSConfig{},
		zap.NewNop(),
	)

	headers := map[string]string{middleware.TraceIDHeader: "fixed"}
	var ids []string
	for range 2 {
		rec := do(t, router, http.MethodPost, "/rag/ask?question=How+do+refunds+work", "", headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fixed", rec.Header().Get(middleware.TraceIDHeader))

		body := decode[entity.AnswerResponse](t, rec)
		assert.Equal(t, entity.StatusNotReady, body.Status)
		assert.NotEqual(t, "fixed", body.TraceID)
		ids = append(ids, body.TraceID)
	}

	assert.NotEqual(t, ids[0], ids[1])
}
