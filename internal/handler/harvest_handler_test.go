package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"licencewatch/internal/domain"
	"licencewatch/internal/handler"
	"licencewatch/internal/reconcile"
	"licencewatch/internal/service"
	"licencewatch/mocks"
)

// newIdleService builds a harvest service whose collaborators fail fast, so
// background runs kicked off by Trigger finish immediately.
func newIdleService() *service.HarvestService {
	source := new(mocks.MockDocumentSource)
	source.On("LatestBulletinURL", mock.Anything, mock.Anything).
		Return("", errors.New("listing unreachable")).Maybe()
	notifier := new(mocks.MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return service.NewHarvestService(
		source,
		new(mocks.MockBulletinArchive),
		new(mocks.MockTableExtractor),
		reconcile.NewEngine(new(mocks.MockLicenceStore)),
		notifier,
	)
}

func postHarvest(t *testing.T, h *handler.HarvestHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, target, http.NoBody)
	require.NoError(t, err)
	c.Request = req
	h.Trigger(c)
	return w
}

func TestTrigger_AllVariants(t *testing.T) {
	h := handler.NewHarvestHandler(newIdleService())

	w := postHarvest(t, h, "/api/v1/harvest")
	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestTrigger_SingleVariant(t *testing.T) {
	h := handler.NewHarvestHandler(newIdleService())

	w := postHarvest(t, h, "/api/v1/harvest?variant=PI")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTrigger_InvalidVariant(t *testing.T) {
	h := handler.NewHarvestHandler(newIdleService())

	w := postHarvest(t, h, "/api/v1/harvest?variant=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_VARIANT", resp.Error.Code)
}

func TestLatestRuns_EmptyBeforeFirstRun(t *testing.T) {
	h := handler.NewHarvestHandler(newIdleService())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/api/v1/runs/latest", http.NoBody)
	require.NoError(t, err)
	c.Request = req
	h.LatestRuns(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                                   `json:"success"`
		Data    map[domain.Variant]*domain.BatchReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}
