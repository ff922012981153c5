package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be present and parse to a known role (presence proves the
//     middleware ran).
//   - entity_id may be empty: a freshly registered account without a profile
//     gets a token without entity claims, and entity-scoped operations must
//     then fail authorization downstream, not here.
func ctxActor(c echo.Context) (role domain.Role, entityID string, err error) {
	roleStr, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	entityID, _ = c.Get("entity_id").(string)
	return role, entityID, nil
}
