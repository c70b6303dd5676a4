package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// LocalIdentity clave de c.Locals con la *auth.Identity del token.
const LocalIdentity = "identity"

// Authenticator verifica un header Authorization. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*auth.Identity, error)
}

// AuthMiddleware valida el Bearer token (firma, expiración y revocación) y deja la identidad en c.Locals.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fail(c, domain.ErrUnauthorized, MsgInternal)
		}
		id, err := authn.Authenticate(c.UserContext(), header)
		if err != nil {
			return fail(c, err, "Ocurrió un error al verificar el token")
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// RequireRole deja pasar solo a identidades cuyo rol está en roles. Va después de AuthMiddleware.
func RequireRole(roles ...int64) fiber.Handler {
	allowed := make(map[int64]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return fail(c, domain.ErrUnauthorized, MsgInternal)
		}
		if len(allowed) > 0 && !allowed[id.RolID] {
			return fail(c, domain.ErrForbidden, MsgInternal)
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad autenticada o nil si la ruta no pasó por AuthMiddleware.
func GetIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(LocalIdentity).(*auth.Identity)
	return id
}
