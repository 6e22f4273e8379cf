package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

// SessionMiddleware lifts a bearer token into the request context. Requests
// without a token pass through untouched: an unauthenticated request is a
// valid state, and downstream fetches short-circuit to empty results. A
// token that is present but invalid is rejected.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")
		if auth == "" {
			c.Next()
			return
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		token := auth[len(bearer):]

		validated, err := utils.JwtValidate(token)
		if err != nil || !validated.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claim, _ := validated.Claims.(*utils.JwtCustomClaim)

		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyToken, token)
		if claim != nil {
			ctx = context.WithValue(ctx, utils.ContextKeyUsername, claim.Username)
			ctx = context.WithValue(ctx, utils.ContextKeyUserId, claim.ID)
			ctx = context.WithValue(ctx, utils.ContextKeyRole, claim.Role)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
