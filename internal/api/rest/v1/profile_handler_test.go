//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
)

func testProfile(userID string) *profiles.Profile {
	now := time.Now()
	return &profiles.Profile{
		UserID:    userID,
		Username:  "ana_paints",
		FullName:  "Ana Martinez",
		Bio:       "Muralist from Valparaiso",
		Tier:      billing.TierFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProfileHandler_GetOwn_Success(t *testing.T) {
	mockProfileService := new(MockProfileService)

	handler := NewProfileHandler(mockProfileService)

	mockProfileService.
		On("GetOwn", mock.Anything, testUserID).
		Return(testProfile(testUserID), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/profiles/me", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(ContextUserIDKey, testUserID)

	handler.GetOwn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana_paints")
	assert.Contains(t, w.Body.String(), `"tier":"free"`)
	mockProfileService.AssertExpectations(t)
}

func TestProfileHandler_UpdateOwn_Success(t *testing.T) {
	mockProfileService := new(MockProfileService)

	handler := NewProfileHandler(mockProfileService)

	updated := testProfile(testUserID)
	updated.Bio = "Muralist and sculptor"

	requestBody := `{"bio": "Muralist and sculptor"}`

	mockProfileService.
		On("UpdateOwn", mock.Anything, testUserID, mock.MatchedBy(func(update *profiles.Update) bool {
			return update.Bio != nil && *update.Bio == "Muralist and sculptor" && update.Username == nil
		})).
		Return(updated, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/profiles/me", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(ContextUserIDKey, testUserID)

	handler.UpdateOwn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Muralist and sculptor")
	mockProfileService.AssertExpectations(t)
}

func TestProfileHandler_UpdateOwn_UsernameTaken(t *testing.T) {
	mockProfileService := new(MockProfileService)

	handler := NewProfileHandler(mockProfileService)

	requestBody := `{"username": "taken_name"}`

	mockProfileService.
		On("UpdateOwn", mock.Anything, testUserID, mock.Anything).
		Return(nil, profiles.ErrUsernameTaken)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/profiles/me", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(ContextUserIDKey, testUserID)

	handler.UpdateOwn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already taken")
	mockProfileService.AssertExpectations(t)
}

func TestProfileHandler_UpdateOwn_InvalidUsername(t *testing.T) {
	mockProfileService := new(MockProfileService)

	handler := NewProfileHandler(mockProfileService)

	requestBody := `{"username": "Has Spaces!"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/profiles/me", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(ContextUserIDKey, testUserID)

	handler.UpdateOwn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockProfileService.AssertNotCalled(t, "UpdateOwn", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_GetByUserID_Success(t *testing.T) {
	mockProfileService := new(MockProfileService)

	handler := NewProfileHandler(mockProfileService)

	otherUserID := "33333333-3333-4333-8333-333333333333"

	mockProfileService.
		On("Get", mock.Anything, otherUserID).
		Return(testProfile(otherUserID), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/profiles/"+otherUserID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "user_id", Value: otherUserID}}
	c.Set(ContextUserIDKey, testUserID)

	handler.GetByUserID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), otherUserID)
	mockProfileService.AssertExpectations(t)
}

func TestProfileHandler_GetByUserID_NotFound(t *testing.T) {
	mockProfileService := new(MockProfileService)

	handler := NewProfileHandler(mockProfileService)

	otherUserID := "33333333-3333-4333-8333-333333333333"

	mockProfileService.
		On("Get", mock.Anything, otherUserID).
		Return(nil, profiles.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/profiles/"+otherUserID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "user_id", Value: otherUserID}}
	c.Set(ContextUserIDKey, testUserID)

	handler.GetByUserID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockProfileService.AssertExpectations(t)
}
