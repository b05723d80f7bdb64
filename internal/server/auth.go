package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 12 * time.Hour

type loginRequest struct {
	Password string `json:"password"`
}

type claims struct {
	jwt.RegisteredClaims
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Password != s.cfg.DashboardPassword {
		unauthorized(c, "wrong password")
		return
	}

	token, err := s.createToken()
	if err != nil {
		serverError(c, "failed to create token")
		return
	}
	success(c, gin.H{"token": token})
}

func (s *Server) createToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "grower",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// authRequired validates the Bearer token on every protected route.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Next()
	}
}
