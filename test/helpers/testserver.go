package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gym_backend/internal/app"
	"gym_backend/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const TestJWTSecret = "test-secret"

// TestServer - полное приложение поверх транзакции тестовой БД
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.Application
}

// NewTestServer поднимает приложение на откатываемой транзакции.
// Все запросы выполняются последовательно, поэтому одна транзакция безопасна.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tx := WithTx(t, OpenTestDB(t))

	cfg := config.Defaults()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = TestJWTSecret
	cfg.Web.CookieSecret = TestJWTSecret
	cfg.Jobs.Enabled = false
	cfg.Storage.BasePath = t.TempDir()

	application, err := app.SetupRouter(cfg, tx)
	if err != nil {
		t.Fatalf("Не удалось собрать приложение: %v", err)
	}

	ts := &TestServer{
		Server: httptest.NewServer(application.Router),
		DB:     tx,
		App:    application,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
}

// Token выпускает JWT напрямую, минуя /api/auth/login
func (ts *TestServer) Token(t *testing.T, role string, gymID uint) string {
	t.Helper()

	token, err := ts.App.Tokens.Generate(1, role, gymID, "Tester")
	if err != nil {
		t.Fatalf("Не удалось выпустить токен: %v", err)
	}
	return token
}

// SendRequest отправляет JSON-запрос и возвращает ответ с прочитанным телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в v
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()

	if err := json.Unmarshal([]byte(body), v); err != nil {
		t.Fatalf("Ошибка разбора ответа %q: %v", body, err)
	}
}
