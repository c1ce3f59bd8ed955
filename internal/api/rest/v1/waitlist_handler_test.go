//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
)

func TestWaitlistHandler_Signup_Created(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	entry := &waitlist.Entry{
		ID:        "11111111-1111-4111-8111-111111111111",
		Email:     "ana@example.com",
		CreatedAt: time.Now(),
	}

	requestBody := `{"email": "ana@example.com", "source": "instagram"}`

	mockWaitlistService.
		On("Signup", mock.Anything, "ana@example.com", "", "instagram").
		Return(entry, 42, true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/waitlist", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Signup(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"position":42`)
	assert.Contains(t, w.Body.String(), `"already_joined":false`)
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_Signup_AlreadyJoined(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	entry := &waitlist.Entry{
		ID:        "11111111-1111-4111-8111-111111111111",
		Email:     "ana@example.com",
		CreatedAt: time.Now(),
	}

	requestBody := `{"email": "ana@example.com"}`

	mockWaitlistService.
		On("Signup", mock.Anything, "ana@example.com", "", "").
		Return(entry, 7, false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/waitlist", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Signup(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"position":7`)
	assert.Contains(t, w.Body.String(), `"already_joined":true`)
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_Signup_InvalidEmail(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	requestBody := `{"email": "not-an-email"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/waitlist", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	mockWaitlistService.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWaitlistHandler_Signup_MalformedBody(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/waitlist", bytes.NewBufferString(`{"email": `))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWaitlistHandler_Signup_ServiceError(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	mockWaitlistService.
		On("Signup", mock.Anything, "ana@example.com", "", "").
		Return(nil, 0, false, errors.New("database unavailable"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/waitlist", bytes.NewBufferString(`{"email": "ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_Position_Success(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	entry := &waitlist.Entry{
		ID:        "11111111-1111-4111-8111-111111111111",
		Email:     "ana@example.com",
		CreatedAt: time.Now(),
	}

	mockWaitlistService.
		On("Position", mock.Anything, "ana@example.com").
		Return(entry, 3, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/waitlist/position?email=ana@example.com", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Position(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"position":3`)
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_Position_MissingEmail(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/waitlist/position", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Position(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWaitlistHandler_Position_NotFound(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	mockWaitlistService.
		On("Position", mock.Anything, "ghost@example.com").
		Return(nil, 0, waitlist.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/waitlist/position?email=ghost@example.com", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Position(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_List_Success(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	entry := &waitlist.Entry{
		ID:        "11111111-1111-4111-8111-111111111111",
		Email:     "ana@example.com",
		Source:    "instagram",
		CreatedAt: time.Now(),
	}

	mockWaitlistService.
		On("List", mock.Anything, mock.Anything).
		Return([]*waitlist.Entry{entry}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/waitlist?limit=10", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_List_ValidationError(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/waitlist?sortOrder=invalid", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWaitlistHandler_Remove_Success(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	mockWaitlistService.
		On("Remove", mock.Anything, "ana@example.com").
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/waitlist?email=ana@example.com", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockWaitlistService.AssertExpectations(t)
}

func TestWaitlistHandler_Remove_NotFound(t *testing.T) {
	mockWaitlistService := new(MockWaitlistService)

	handler := NewWaitlistHandler(mockWaitlistService)

	mockWaitlistService.
		On("Remove", mock.Anything, "ghost@example.com").
		Return(waitlist.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/waitlist?email=ghost@example.com", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Remove(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockWaitlistService.AssertExpectations(t)
}
