package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
)

// WaitlistHandler defines the interface for handling waitlist operations
type WaitlistHandler interface {
	Signup(ctx *gin.Context)
	Position(ctx *gin.Context)
	List(ctx *gin.Context)
	Remove(ctx *gin.Context)
}

// waitlistHandler struct holds the services
type waitlistHandler struct {
	waitlistService waitlist.Service
}

// NewWaitlistHandler creates a new WaitlistHandler
func NewWaitlistHandler(waitlistService waitlist.Service) WaitlistHandler {
	return &waitlistHandler{
		waitlistService: waitlistService,
	}
}

// Signup handles the POST request to join the waitlist
// @Summary Join the waitlist
// @Description Record a waitlist signup for an email address. Signing up again with the same email returns the existing position instead of creating a duplicate.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param requestBody body WaitlistSignupRequest true "Waitlist Signup Data"
// @Success 201 {object} WaitlistSignupResponse
// @Success 200 {object} WaitlistSignupResponse
// @Failure 400 {object} ErrorResponse
// @Router /waitlist [post]
func (handler *waitlistHandler) Signup(ctx *gin.Context) {

	var request WaitlistSignupRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid signup data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(400, errorResponse)
		return
	}

	entry, position, created, err := handler.waitlistService.Signup(ctx, request.Email, request.Name, request.Source)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error joining waitlist: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	signupResponse := WaitlistSignupResponse{
		Email:         entry.Email,
		Position:      position,
		AlreadyJoined: !created,
		CreatedAt:     entry.CreatedAt,
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	ctx.JSON(status, signupResponse)
}

// Position handles the GET request to look up a waitlist position by email
// @Summary Look up a waitlist position
// @Description Fetch the current 1-based waitlist position for an email address.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} WaitlistSignupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /waitlist/position [get]
func (handler *waitlistHandler) Position(ctx *gin.Context) {
	email := ctx.Query("email")
	if len(email) == 0 {
		var errorResponse ErrorResponse
		errorResponse.Message = "email query parameter is required"
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	entry, position, err := handler.waitlistService.Position(ctx, email)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("no waitlist entry for %s", email)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	positionResponse := WaitlistSignupResponse{
		Email:         entry.Email,
		Position:      position,
		AlreadyJoined: true,
		CreatedAt:     entry.CreatedAt,
	}

	ctx.JSON(http.StatusOK, positionResponse)
}

// List handles the GET request to list waitlist entries with optional query parameters
// @Summary List waitlist entries based on query parameters
// @Description Fetch waitlist entries filtered by email or source, with pagination and sorting options. Requires the service role.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param email query string false "Email address"
// @Param source query string false "Signup source"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} WaitlistEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /waitlist [get]
func (handler *waitlistHandler) List(ctx *gin.Context) {
	query := waitlist.NewEntryQuery()

	if email := ctx.Query("email"); len(email) > 0 {
		query.Email = email
	}

	if source := ctx.Query("source"); len(source) > 0 {
		query.Source = source
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		if parsed, err := strconv.Atoi(limit); err == nil {
			query.Limit = parsed
		}
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		if parsed, err := strconv.Atoi(offset); err == nil {
			query.Offset = parsed
		}
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(400, errorResponse)
		return
	}

	entries, err := handler.waitlistService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	var listResponse = []WaitlistEntryResponse{}
	for _, entry := range entries {
		entryResponse := WaitlistEntryResponse{
			ID:        entry.ID,
			Email:     entry.Email,
			Name:      entry.Name,
			Source:    entry.Source,
			CreatedAt: entry.CreatedAt,
		}
		listResponse = append(listResponse, entryResponse)
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// Remove handles the DELETE request to remove a waitlist entry by email
// @Summary Remove a waitlist entry
// @Description Delete the waitlist entry for an email address. Later entries move up one position. Requires the service role.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /waitlist [delete]
func (handler *waitlistHandler) Remove(ctx *gin.Context) {
	email := ctx.Query("email")
	if len(email) == 0 {
		var errorResponse ErrorResponse
		errorResponse.Message = "email query parameter is required"
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := handler.waitlistService.Remove(ctx, email); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("no waitlist entry for %s", email)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("waitlist entry for %s removed", email)
	ctx.JSON(http.StatusOK, infoResponse)
}
