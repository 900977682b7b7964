package fx

import (
	"time"

	"github.com/Fede-Barberis/Finance-Manager/internal/domain/auth"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	"github.com/Fede-Barberis/Finance-Manager/internal/middleware"
	"github.com/Fede-Barberis/Finance-Manager/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule provee handlers y rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	jwtSvc *middleware.JwtService,
	authSvc *auth.Service,
	goalSvc *goal.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService: userSvc,
		JwtService:  jwtSvc,
		AuthService: authSvc,
		GoalService: goalSvc,
	}
}

func newAuthRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
