package util

import "github.com/gin-gonic/gin"

// Identity is who the current request acts as. The zero value is anonymous.
type Identity struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	Username        string `json:"username"`
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(username string) Identity {
	return Identity{IsAuthenticated: true, Username: username}
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ContextIdentity, id)
}

// GetIdentity returns the identity resolved by the identity middleware, or
// an anonymous one when none was set.
func GetIdentity(c *gin.Context) Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return Anonymous()
	}
	id, ok := v.(Identity)
	if !ok {
		return Anonymous()
	}
	return id
}
