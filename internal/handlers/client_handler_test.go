package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ordensapp/ordens-api/internal/auth"
	"github.com/ordensapp/ordens-api/internal/middleware"
)

func setupClientAPI(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	h := NewClientHandler(gdb, nil)

	r := gin.New()
	secured := r.Group("/api")
	secured.Use(middleware.AuthMiddleware(tokens))
	secured.POST("/me/clients", h.Create)
	secured.GET("/me/clients", h.List)
	secured.GET("/me/clients/:id", h.Get)
	secured.PATCH("/me/clients/:id", h.Update)
	secured.DELETE("/me/clients/:id", h.Delete)

	token, err := tokens.Issue("alice")
	require.NoError(t, err)

	return r, mock, token
}

func expectCurrentUser(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE username = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(1, "alice"))
}

func TestClientCreate_NormalizesEmail(t *testing.T) {
	r, mock, token := setupClientAPI(t)

	expectCurrentUser(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	w := apiRequest(t, r, http.MethodPost, "/api/me/clients", token, gin.H{
		"nome":     "Bob",
		"telefone": "11999990000",
		"email":    "Bob@Example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "bob@example.com")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientUpdate_LookupAndWriteShareTransaction(t *testing.T) {
	r, mock, token := setupClientAPI(t)

	expectCurrentUser(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "clients" WHERE id = .* AND user_id = .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nome", "telefone", "email"}).
			AddRow(10, 1, "Bob", "11999990000", "bob@example.com"))
	mock.ExpectExec(`UPDATE "clients" SET .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := apiRequest(t, r, http.MethodPatch, "/api/me/clients/10", token, gin.H{
		"nome": "Robert",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Robert")
	assert.Contains(t, w.Body.String(), "bob@example.com")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientUpdate_NotOwnedLooksAbsent(t *testing.T) {
	r, mock, token := setupClientAPI(t)

	expectCurrentUser(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "clients" WHERE id = .* AND user_id = .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nome"}))
	mock.ExpectRollback()

	w := apiRequest(t, r, http.MethodPatch, "/api/me/clients/10", token, gin.H{
		"nome": "Robert",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "resource_not_found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientDelete_CascadesOrdensInOneTransaction(t *testing.T) {
	r, mock, token := setupClientAPI(t)

	expectCurrentUser(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "clients" WHERE id = .* AND user_id = .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nome"}).
			AddRow(10, 1, "Bob"))
	mock.ExpectExec(`DELETE FROM "ordens" WHERE client_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "clients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := apiRequest(t, r, http.MethodDelete, "/api/me/clients/10", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientDelete_RedeleteNotFoundRollsBack(t *testing.T) {
	r, mock, token := setupClientAPI(t)

	// segunda remoção do mesmo cliente: o lookup travado não encontra a
	// linha e a transação desfaz sem tocar em ordens
	expectCurrentUser(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "clients" WHERE id = .* AND user_id = .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nome"}))
	mock.ExpectRollback()

	w := apiRequest(t, r, http.MethodDelete, "/api/me/clients/10", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "resource_not_found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientGet_NotOwnedLooksAbsent(t *testing.T) {
	r, mock, token := setupClientAPI(t)

	expectCurrentUser(mock)
	mock.ExpectQuery(`SELECT .* FROM "clients" WHERE id = .* AND user_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nome"}))

	w := apiRequest(t, r, http.MethodGet, "/api/me/clients/10", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "resource_not_found")
}
