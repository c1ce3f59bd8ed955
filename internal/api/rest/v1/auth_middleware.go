package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Hempp/street-art-gallery/internal/pkg/config"
)

// Context keys populated by JWTAuthMiddleware for downstream handlers.
const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
	ContextEmailKey  = "email"
)

// accessClaims captures the claims minted by the identity provider. The
// subject carries the user id and role carries either the authenticated
// or the service role.
type accessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware verifies the Authorization bearer token and stores the
// authenticated user id and role on the request context. Requests without a
// valid token are rejected with 401.
func JWTAuthMiddleware(settings *config.AuthSettings) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := bearerToken(ctx.GetHeader("Authorization"))
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = err.Error()
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse)
			return
		}

		options := []jwt.ParserOption{
			jwt.WithValidMethods([]string{"HS256"}),
		}
		if settings.Issuer != "" {
			options = append(options, jwt.WithIssuer(settings.Issuer))
		}
		if settings.Audience != "" {
			options = append(options, jwt.WithAudience(settings.Audience))
		}

		var claims accessClaims
		_, err = jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(settings.JWTSecret), nil
		}, options...)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = describeTokenError(err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse)
			return
		}

		userID := strings.TrimSpace(claims.Subject)
		if userID == "" {
			var errorResponse ErrorResponse
			errorResponse.Message = "token is missing a subject claim"
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse)
			return
		}

		role := claims.Role
		if role == "" {
			role = config.RoleAuthenticated
		}

		ctx.Set(ContextUserIDKey, userID)
		ctx.Set(ContextRoleKey, role)
		ctx.Set(ContextEmailKey, claims.Email)
		ctx.Next()
	}
}

// RequireServiceRole restricts a route to tokens carrying the service role.
// It must run after JWTAuthMiddleware.
func RequireServiceRole() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextRoleKey) != config.RoleServiceRole {
			var errorResponse ErrorResponse
			errorResponse.Message = "service role required"
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse)
			return
		}
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user id stored by JWTAuthMiddleware.
func CurrentUserID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserIDKey)
}

// CurrentRole returns the role stored by JWTAuthMiddleware.
func CurrentRole(ctx *gin.Context) string {
	return ctx.GetString(ContextRoleKey)
}

// CurrentUserEmail returns the email claim stored by JWTAuthMiddleware.
// It is empty when the token carries no email.
func CurrentUserEmail(ctx *gin.Context) string {
	return ctx.GetString(ContextEmailKey)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("Authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func describeTokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token is expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "token signature is invalid"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "token could not be verified"
	default:
		return "invalid token"
	}
}
