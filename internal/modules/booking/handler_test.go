package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"farmassist/internal/domain"
)

func newTestRouter(svc *Service, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(&r.RouterGroup)
	return r
}

func TestHandler_CreateBooking_ValidationDetails(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(svc, 1)

	body, _ := json.Marshal(map[string]any{
		"item_id":     7,
		"item_type":   "Manure",
		"provider_id": 2,
		// quantity missing
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "quantity")
}

func TestHandler_Accept_Conflict(t *testing.T) {
	svc, m := newTestService()
	r := newTestRouter(svc, 2)

	b := &domain.Booking{ID: 50, ItemType: domain.ItemManure, ItemID: 7, RequesterID: 1, ProviderID: 2, Status: domain.BookingRejected}
	m.bookings.On("GetByID", mock.Anything, int64(50)).Return(b, nil)
	m.bookings.On("UpdateStatusIfPending", mock.Anything, int64(50), domain.BookingAccepted).Return(false, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/50/accept", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "BOOKING_CONFLICT")
}

func TestHandler_ListByUser_SelfOnly(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(svc, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings/user/2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestHandler_Cancel_NotFound(t *testing.T) {
	svc, m := newTestService()
	r := newTestRouter(svc, 1)

	m.bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/bookings/404", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
