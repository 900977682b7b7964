package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Fede-Barberis/Finance-Manager/config"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type JwtService struct {
	secret      []byte
	expiration  time.Duration
	UserService *user.Service
}

func NewJwtService(cfg config.JWTConfig, userSvc *user.Service) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret vacío")
	}
	return &JwtService{
		secret:      []byte(cfg.Secret),
		expiration:  cfg.Expiration,
		UserService: userSvc,
	}, nil
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (s *JwtService) GenerateToken(u *user.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: u.Id.String(),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JwtService) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.NewAuthError("TOKEN_EXPIRED", "Token expirado. Inicia sesión nuevamente")
		}
		return nil, appErrors.NewAuthError("TOKEN_INVALID", "Token inválido").WithError(err)
	}
	if !token.Valid {
		return nil, appErrors.NewAuthError("TOKEN_INVALID", "Token inválido")
	}
	return claims, nil
}

// AuthMiddleware exige un Bearer token válido y deja la identidad del
// usuario en el contexto de gin como "user_id".
func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "TOKEN_REQUIRED", "Token de acceso requerido")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "TOKEN_MALFORMED", "Formato de token inválido. Debe ser: Bearer <token>")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == "" {
			abortUnauthorized(c, "TOKEN_REQUIRED", "Token no proporcionado")
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenStr)
		if err != nil {
			appErr := appErrors.FromError(err)
			c.JSON(appErr.StatusCode, gin.H{
				"error":   appErr.Code,
				"message": appErr.Message,
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":   code,
		"message": message,
	})
	c.Abort()
}
