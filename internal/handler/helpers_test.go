package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/testutil"
	"github.com/yourusername/quiz-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

// newTestServer собирает полный набор маршрутов поверх временной SQLite базы
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	userRepo := postgres.NewUserRepo(db)
	sessionRepo, err := postgres.NewSessionRepo(db)
	require.NoError(t, err)
	subjectRepo := postgres.NewSubjectRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	optionRepo := postgres.NewQuestionOptionRepo(db)

	authService, err := service.NewAuthService(userRepo, sessionRepo, hasher, time.Hour)
	require.NoError(t, err)

	routes := &Routes{
		Auth:           NewAuthHandler(authService, CookieConfig{Name: "session_id"}),
		Users:          NewUserHandler(service.NewUserService(userRepo, sessionRepo, hasher)),
		Subjects:       NewSubjectHandler(service.NewSubjectService(subjectRepo)),
		Question:       NewQuestionHandler(service.NewQuestionService(questionRepo, subjectRepo, optionRepo)),
		Options:        NewOptionHandler(service.NewOptionService(optionRepo, questionRepo)),
		Status:         NewStatusHandler(db, nil),
		AuthMiddleware: middleware.NewAuthMiddleware(authService, "session_id"),
	}

	router := gin.New()
	routes.Register(router)
	return &testServer{router: router, db: db}
}

// do выполняет запрос; token передается через cookie session_id
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login регистрирует пользователя и возвращает токен его сессии
func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": "Tester", "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/session", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return parseJSONResponse(t, w)["sessionId"].(string)
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// parseJSONList парсит JSON массив из ответа
func parseJSONList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be a JSON array: %s", w.Body.String())
	return resp
}
