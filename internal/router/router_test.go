package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"licencewatch/internal/handler"
	"licencewatch/internal/router"
	"licencewatch/mocks"
)

func TestSetup_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := new(mocks.MockLicenceStore)
	store.On("ListRecent", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	r := router.Setup(
		handler.NewHealthHandler(nil),
		nil, // harvest handler not exercised here
		handler.NewExportHandler(store),
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/licences/export", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
