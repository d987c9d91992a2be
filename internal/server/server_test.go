// ABOUTME: End-to-end handler tests over in-memory storage and a stub completer
// ABOUTME: Exercises the chat flow, CRUD surfaces, auth, and admin pass-throughs
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wingmanhq/wingman-backend/internal/core"
	"github.com/wingmanhq/wingman-backend/internal/llm"
	"github.com/wingmanhq/wingman-backend/internal/models"
	"github.com/wingmanhq/wingman-backend/internal/storage"
)

// stubCompleter echoes a canned reply and records the last Generate call.
type stubCompleter struct {
	fail        bool
	lastMessage string
	lastContext string
	pulled      []string
	deleted     []string
}

func (c *stubCompleter) Generate(ctx context.Context, message, userContext, model string) llm.CompletionResult {
	c.lastMessage = message
	c.lastContext = userContext
	if c.fail {
		return llm.CompletionResult{
			Success:          false,
			Error:            "ollama not running",
			FallbackResponse: "fallback reply",
		}
	}
	return llm.CompletionResult{
		Success:        true,
		Response:       "stub reply",
		ModelUsed:      "llama3.2:1b",
		ProcessingTime: 0.1,
		ContextUsed:    userContext != "",
	}
}

func (c *stubCompleter) Status(ctx context.Context) llm.ServerStatus {
	return llm.ServerStatus{Status: "running", Available: true}
}

func (c *stubCompleter) PullModel(ctx context.Context, name string) error {
	c.pulled = append(c.pulled, name)
	return nil
}

func (c *stubCompleter) DeleteModel(ctx context.Context, name string) error {
	c.deleted = append(c.deleted, name)
	return nil
}

func newTestServer(t *testing.T) (http.Handler, *storage.Storage, *stubCompleter) {
	t.Helper()
	store, err := storage.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	completer := &stubCompleter{}
	builder := core.NewBuilder(store, nil, 10, 3)
	return NewServer(store, builder, completer, "test"), store, completer
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestStatus(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /status = %d, want 200", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["database"] != "ok" {
		t.Errorf("database = %q, want ok", body["database"])
	}
}

func TestChatFlow(t *testing.T) {
	handler, store, completer := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/chat/", sendChatRequest{
		UserID:  "u1",
		Message: "what tasks do I have today?",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/chat/ = %d: %s", rec.Code, rec.Body.String())
	}

	var resp sendChatResponse
	decodeBody(t, rec, &resp)
	if resp.Response != "stub reply" {
		t.Errorf("response = %q, want stub reply", resp.Response)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if completer.lastMessage != "what tasks do I have today?" {
		t.Errorf("completer got message %q", completer.lastMessage)
	}
	if !strings.Contains(completer.lastContext, "User u1") {
		t.Errorf("completer got context without header:\n%s", completer.lastContext)
	}

	// Both sides of the exchange must be persisted, in order.
	msgs, err := store.ChatHistory("u1")
	if err != nil {
		t.Fatalf("ChatHistory() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("history has %d messages, want 2", len(msgs))
	}
	if msgs[0].IsAI || msgs[0].Text != "what tasks do I have today?" {
		t.Errorf("first message = %+v, want the user's", msgs[0])
	}
	if !msgs[1].IsAI || msgs[1].Text != "stub reply" {
		t.Errorf("second message = %+v, want the AI reply", msgs[1])
	}
}

func TestChatFlow_FallbackPersisted(t *testing.T) {
	handler, store, completer := newTestServer(t)
	completer.fail = true

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/chat/", sendChatRequest{
		UserID:  "u1",
		Message: "hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/chat/ = %d, want 200 even on completion failure", rec.Code)
	}

	var resp sendChatResponse
	decodeBody(t, rec, &resp)
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Response != "fallback reply" {
		t.Errorf("response = %q, want the fallback", resp.Response)
	}

	msgs, _ := store.ChatHistory("u1")
	if len(msgs) != 2 || msgs[1].Text != "fallback reply" {
		t.Errorf("fallback reply not persisted: %+v", msgs)
	}
}

func TestChat_Validation(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/chat/", sendChatRequest{Message: "no user"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing user_id = %d, want 400", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/chat/", sendChatRequest{UserID: "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing message = %d, want 400", rec.Code)
	}
}

func TestChatHistoryEndpoint(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/chat/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/chat/u1 = %d, want 200", rec.Code)
	}

	var msgs []models.Message
	decodeBody(t, rec, &msgs)
	if msgs == nil {
		t.Error("empty history should decode as [], not null")
	}
}

func TestTaskCRUD(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/tasks", createTaskRequest{
		UserID: "u1", Title: "Ship release", Date: "2025-06-01", Time: "09:00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Task
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created task has no id")
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/tasks?user_id=u1&date=2025-06-01", nil)
	var listed []models.Task
	decodeBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].Title != "Ship release" {
		t.Fatalf("list = %+v, want the created task", listed)
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/v1/tasks/"+created.ID, updateTaskRequest{
		UserID: "u1", Title: "Ship release", Date: "2025-06-01", Completed: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.Task
	decodeBody(t, rec, &updated)
	if !updated.Completed {
		t.Error("update did not set completed")
	}

	rec = doJSON(t, handler, http.MethodDelete,
		fmt.Sprintf("/api/v1/tasks/%s?user_id=u1", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodDelete,
		fmt.Sprintf("/api/v1/tasks/%s?user_id=u1", created.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", rec.Code)
	}
}

func TestTask_CrossUserDeleteRejected(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/tasks", createTaskRequest{
		UserID: "u1", Title: "Private", Date: "2025-06-01",
	})
	var created models.Task
	decodeBody(t, rec, &created)

	rec = doJSON(t, handler, http.MethodDelete,
		fmt.Sprintf("/api/v1/tasks/%s?user_id=intruder", created.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete = %d, want 404", rec.Code)
	}
}

func TestCalendarCRUD(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/calendar", eventRequest{
		UserID: "u1", Title: "Standup", Date: "2025-06-01", Time: "10:00", Type: "meeting",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Event
	decodeBody(t, rec, &created)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/calendar?user_id=u1&date=2025-06-01", nil)
	var listed []models.Event
	decodeBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].Type != "meeting" {
		t.Fatalf("list = %+v, want the created event", listed)
	}

	rec = doJSON(t, handler, http.MethodDelete,
		fmt.Sprintf("/api/v1/calendar/%s?user_id=u1", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete = %d, want 200", rec.Code)
	}
}

func TestDiaryCRUD(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/diary", diaryRequest{
		UserID: "u1", Date: "2025-06-01", Content: "Good day", Mood: "happy",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/diary?user_id=u1&date=2025-06-01", nil)
	var listed []models.DiaryEntry
	decodeBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].Mood != "happy" {
		t.Fatalf("list = %+v, want the created entry", listed)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/diary", diaryRequest{
		UserID: "u1", Date: "2025-06-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty content = %d, want 400", rec.Code)
	}
}

func TestUserRegisterAndLogin(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/user/register", registerRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
		Name:     "Ada",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", rec.Code, rec.Body.String())
	}
	var user models.User
	decodeBody(t, rec, &user)
	if user.Username != "ada" {
		t.Errorf("username = %q, want defaulted local-part", user.Username)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password material")
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/user/login", loginRequest{
		Username: "ada", Password: "correct horse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/user/login", loginRequest{
		Username: "ada", Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/user/register", registerRequest{
		Email: "ada@example.com", Password: "another pass",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register = %d, want 400", rec.Code)
	}
}

func TestUserUpdateName(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/user/register", registerRequest{
		Email: "grace@example.com", Password: "long enough",
	})
	var user models.User
	decodeBody(t, rec, &user)

	rec = doJSON(t, handler, http.MethodPut, "/api/v1/user/"+user.ID, updateUserRequest{Name: "Grace"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.User
	decodeBody(t, rec, &updated)
	if updated.Name != "Grace" {
		t.Errorf("name = %q, want Grace", updated.Name)
	}
}

func TestLLMAdmin(t *testing.T) {
	handler, _, completer := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/llm/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("llm status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/llm/models", nil)
	var catalog []llm.ModelInfo
	decodeBody(t, rec, &catalog)
	if len(catalog) == 0 {
		t.Error("model catalog is empty")
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/llm/models/pull", modelOpRequest{Name: "llama3.2:3b"})
	if rec.Code != http.StatusOK {
		t.Fatalf("pull = %d: %s", rec.Code, rec.Body.String())
	}
	if len(completer.pulled) != 1 || completer.pulled[0] != "llama3.2:3b" {
		t.Errorf("pulled = %v, want [llama3.2:3b]", completer.pulled)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/llm/models/llama3.2:1b", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", rec.Code, rec.Body.String())
	}
	if len(completer.deleted) != 1 || completer.deleted[0] != "llama3.2:1b" {
		t.Errorf("deleted = %v, want [llama3.2:1b]", completer.deleted)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
