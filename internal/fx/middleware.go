package fx

import (
	"github.com/Fede-Barberis/Finance-Manager/config"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	"github.com/Fede-Barberis/Finance-Manager/internal/middleware"

	"go.uber.org/fx"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
	),
)

func newJwtService(cfg *config.Config, userSvc *user.Service) (*middleware.JwtService, error) {
	return middleware.NewJwtService(cfg.JWT, userSvc)
}
