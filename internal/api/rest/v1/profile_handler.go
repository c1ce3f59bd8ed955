package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
)

// ProfileHandler defines the interface for handling profile operations
type ProfileHandler interface {
	GetOwn(ctx *gin.Context)
	UpdateOwn(ctx *gin.Context)
	GetByUserID(ctx *gin.Context)
}

// profileHandler struct holds the services
type profileHandler struct {
	profileService profiles.Service
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService profiles.Service) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
	}
}

// GetOwn handles the GET request for the caller's profile
// @Summary Retrieve the authenticated user's profile
// @Description Fetch the caller's profile. A default free-tier profile is created on first access.
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /profiles/me [get]
func (handler *profileHandler) GetOwn(ctx *gin.Context) {
	profile, err := handler.profileService.GetOwn(ctx, CurrentUserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error retrieving profile: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// UpdateOwn handles the PUT request to update the caller's profile
// @Summary Update the authenticated user's profile
// @Description Apply a partial update to the caller's profile. Only the fields present in the request body are changed.
// @Tags Profile
// @Accept json
// @Produce json
// @Param requestBody body ProfileUpdateRequest true "Profile Update Data"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /profiles/me [put]
func (handler *profileHandler) UpdateOwn(ctx *gin.Context) {

	var request ProfileUpdateRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid profile data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(400, errorResponse)
		return
	}

	update := &profiles.Update{
		Username:  request.Username,
		FullName:  request.FullName,
		AvatarURL: request.AvatarURL,
		Website:   request.Website,
		Bio:       request.Bio,
	}

	profile, err := handler.profileService.UpdateOwn(ctx, CurrentUserID(ctx), update)
	if err != nil {
		if errors.Is(err, profiles.ErrUsernameTaken) {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("username %s is already taken", *request.Username)
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error updating profile: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// GetByUserID handles the GET request to retrieve a profile by user ID
// @Summary Retrieve a member profile by user ID
// @Description Fetch another member's public profile by user ID.
// @Tags Profile
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{user_id} [get]
func (handler *profileHandler) GetByUserID(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	profile, err := handler.profileService.Get(ctx, userID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("profile for user %s not found", userID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

func newProfileResponse(profile *profiles.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    profile.UserID,
		Username:  profile.Username,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Website:   profile.Website,
		Bio:       profile.Bio,
		Tier:      string(profile.Tier),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
