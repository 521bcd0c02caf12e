package helpers

import "github.com/gin-gonic/gin"

// Identity is the authenticated caller as resolved by the identity
// middleware. Authentication proper is delegated to the front proxy / auth
// provider; this server only needs a stable user id to enforce ownership.
type Identity struct {
	UserID string `json:"user_id"`
}

func (id *Identity) IsOwner(userID string) bool {
	return id.UserID == userID
}

// CurrentIdentity pulls the caller identity the middleware stored on the
// request context.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}
