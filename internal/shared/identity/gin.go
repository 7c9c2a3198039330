package identity

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/food-order-api/internal/shared/errors"
)

// HeaderMemberEmail is set by the authenticating gateway in front of the API.
const HeaderMemberEmail = "X-Member-Email"

const contextKey = "identity.principal"

// RequirePrincipal rejects requests that reach the handler without an identity.
func RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := NewPrincipal(c.GetHeader(HeaderMemberEmail))
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
			c.Abort()
			return
		}
		c.Set(contextKey, principal)
		c.Next()
	}
}

// FromGin returns the principal stored by RequirePrincipal.
func FromGin(c *gin.Context) (Principal, bool) {
	value, ok := c.Get(contextKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok && !principal.IsAnonymous()
}
