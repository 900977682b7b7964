package main

import (
	appfx "github.com/Fede-Barberis/Finance-Manager/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
