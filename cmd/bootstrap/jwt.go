package bootstrap

import (
	"hotelier/internal/pkg/config"
	"hotelier/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTParser,
	),
)

func NewJWTParser(cfg config.Config) *jwt.Parser {
	return jwt.NewParser(cfg.JWT.Secret)
}
