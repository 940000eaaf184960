package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/finance-tracker/internal/config"
	"github.com/finance-tracker/internal/handler"
	"github.com/finance-tracker/internal/middleware"
	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/repository"
	"github.com/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	Count   int             `json:"count"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "finance.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}))

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	authService := service.NewAuthService(userRepo, config.JWTConfig{Secret: "test-secret", ExpireHours: 168})
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo)

	router := gin.New()
	api := router.Group("")

	authMiddleware := middleware.AuthMiddleware(authService)
	// nil Redis client: the limiter passes everything through
	rateLimiter := middleware.RateLimitMiddleware(nil, 0)

	handler.NewAuthHandler(authService).RegisterRoutes(api, authMiddleware, rateLimiter)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api, authMiddleware)
	handler.NewTransactionHandler(transactionService).RegisterRoutes(api, authMiddleware)

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func registerUser(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	w, env := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func TestRegisterLoginAndSummaryFlow(t *testing.T) {
	router, _ := newTestServer(t)

	token := registerUser(t, router, "Alice", "alice@example.com")

	// Login works with the same credentials
	w, env := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, env.Token)
	token = env.Token

	// Create an income category
	w, env = doJSON(t, router, http.MethodPost, "/categories", token, gin.H{
		"name": "Salary",
		"type": "income",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))

	// Record a paycheck
	w, _ = doJSON(t, router, http.MethodPost, "/transactions", token, gin.H{
		"amount":   1500,
		"type":     "income",
		"category": category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Summary shows the single income
	w, env = doJSON(t, router, http.MethodGet, "/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary repository.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1500.00, summary.Income)
	assert.Equal(t, 0.00, summary.Expense)
	assert.Equal(t, 1500.00, summary.Balance)
	assert.EqualValues(t, 1, summary.TotalTransactions)
}

func TestTransactionTypeMismatchIs404(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	_, env := doJSON(t, router, http.MethodPost, "/categories", token, gin.H{
		"name": "Salary",
		"type": "income",
	})
	var category models.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))

	w, env := doJSON(t, router, http.MethodPost, "/transactions", token, gin.H{
		"amount":   50,
		"type":     "expense",
		"category": category.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestOwnershipBoundary(t *testing.T) {
	router, _ := newTestServer(t)
	aliceToken := registerUser(t, router, "Alice", "alice@example.com")
	bobToken := registerUser(t, router, "Bob", "bob@example.com")

	// Both users can own a "Food" expense category
	w, env := doJSON(t, router, http.MethodPost, "/categories", aliceToken, gin.H{"name": "Food", "type": "expense"})
	require.Equal(t, http.StatusCreated, w.Code)
	var aliceFood models.Category
	require.NoError(t, json.Unmarshal(env.Data, &aliceFood))

	w, _ = doJSON(t, router, http.MethodPost, "/categories", bobToken, gin.H{"name": "Food", "type": "expense"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Bob cannot read, update, or delete Alice's category
	path := "/categories/" + itoa(aliceFood.ID)
	w, _ = doJSON(t, router, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, router, http.MethodPut, path, bobToken, gin.H{"name": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, router, http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Bob cannot touch Alice's transactions either
	w, env = doJSON(t, router, http.MethodPost, "/transactions", aliceToken, gin.H{
		"amount":   12.50,
		"type":     "expense",
		"category": aliceFood.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var txn models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &txn))

	w, _ = doJSON(t, router, http.MethodDelete, "/transactions/"+itoa(txn.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestServer(t)

	for _, path := range []string{"/me", "/categories", "/transactions", "/transactions/summary"} {
		w, env := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.False(t, env.Success, path)
	}

	w, _ := doJSON(t, router, http.MethodGet, "/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminGateOnUserListing(t *testing.T) {
	router, db := newTestServer(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w, _ := doJSON(t, router, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote and retry
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@example.com").
		Update("role", models.RoleAdmin).Error)

	w, env := doJSON(t, router, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Count)
	assert.EqualValues(t, 1, env.Total)
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, 1, env.Pages)
}

func TestPaginationEnvelope(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	for _, name := range []string{"A", "B", "C"} {
		w, _ := doJSON(t, router, http.MethodPost, "/categories", token, gin.H{"name": name, "type": "expense"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doJSON(t, router, http.MethodGet, "/categories?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Count)
	assert.EqualValues(t, 3, env.Total)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 2, env.Pages)
}

func TestProfileUpdate(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w, env := doJSON(t, router, http.MethodPut, "/me", token, gin.H{"currency": "EUR"})
	require.Equal(t, http.StatusOK, w.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "EUR", user.Currency)

	// Nothing recognized to update
	w, _ = doJSON(t, router, http.MethodPut, "/me", token, gin.H{"email": "new@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Logout is a stateless acknowledgment; the token still verifies after
	w, _ = doJSON(t, router, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidIDFormat(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w, _ := doJSON(t, router, http.MethodPut, "/transactions/not-a-number", token, gin.H{"amount": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/categories/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
