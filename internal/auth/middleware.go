package auth

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	tokenLocalsKey     = "user"
	principalLocalsKey = "admin"
)

// Middleware rejects requests without a valid "Authorization: Bearer" token.
// Every failure answers 401 with the same body.
func (i *Issuer) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    i.secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		Claims:        &Claims{},
		ContextKey:    tokenLocalsKey,
		TokenLookup:   "header:" + fiber.HeaderAuthorization,
		AuthScheme:    "Bearer",
		SuccessHandler: func(c *fiber.Ctx) error {
			tok, ok := c.Locals(tokenLocalsKey).(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			claims, ok := tok.Claims.(*Claims)
			if !ok {
				return unauthorized(c)
			}
			c.Locals(principalLocalsKey, claims.principal())
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// PrincipalFromCtx returns the admin authenticated by Middleware.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(principalLocalsKey).(Principal)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
}
