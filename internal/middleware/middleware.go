package middleware

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blogiq/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey     = "user_id"
	sessionCookie = "__session"
)

// Authenticator verifies identity provider session tokens. Tokens are RS256
// when a public key is configured and HS256 otherwise.
type Authenticator struct {
	publicKey *rsa.PublicKey
	secret    []byte
}

func NewAuthenticator(cfg config.AuthConfig) (*Authenticator, error) {
	if cfg.JWTPublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.JWTPublicKey))
		if err != nil {
			return nil, fmt.Errorf("invalid JWT public key: %w", err)
		}
		return &Authenticator{publicKey: key}, nil
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("either CLERK_JWT_KEY or JWT_SECRET_KEY must be set")
	}
	return &Authenticator{secret: []byte(cfg.JWTSecret)}, nil
}

// AuthMiddleware rejects requests without a valid session token.
func (a *Authenticator) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, message, detail := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": message,
				"error":   detail,
			})
			c.Abort()
			return
		}

		userID, err := a.verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and lets
// anonymous requests through.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, _, _ := extractToken(c); tokenString != "" {
			if userID, err := a.verify(tokenString); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated principal, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func extractToken(c *gin.Context) (token, message, detail string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		// Check if the Authorization header has the correct format (Bearer {token})
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", "Invalid authorization header format", "Use format: Bearer {token}"
		}
		return parts[1], "", ""
	}

	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie, "", ""
	}
	return "", "Authorization header is required", "Missing authorization token"
}

func (a *Authenticator) verify(tokenString string) (string, error) {
	methods := []string{jwt.SigningMethodHS256.Alg()}
	if a.publicKey != nil {
		methods = []string{jwt.SigningMethodRS256.Alg()}
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if a.publicKey != nil {
			return a.publicKey, nil
		}
		return a.secret, nil
	}, jwt.WithValidMethods(methods), jwt.WithLeeway(5*time.Second))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}
