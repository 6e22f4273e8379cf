package api

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

// Session is the explicit authentication state threaded through every
// upstream call. The token is an input, not an ambient global lookup, so
// "is authenticated" is visible at each call site.
type Session struct {
	Token    string
	Username string
	UserID   int
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionFromContext builds a Session from the values the session
// middleware placed in the request context. A context without a token
// yields an unauthenticated (zero) session, which is a valid state.
func SessionFromContext(ctx context.Context) Session {
	var s Session
	s.Token, _ = utils.GetTokenFromContext(ctx)
	s.Username, _ = utils.GetUsernameFromContext(ctx)
	s.UserID, _ = utils.GetUserIdFromContext(ctx)
	return s
}
