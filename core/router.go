package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, store *sessions.CookieStore, signIn *SignInService, sessionStore SessionStore) *gin.Engine {
	r := gin.Default()

	// Global middleware: origin/CORS -> session -> CSRF
	r.Use(OriginRefererMiddleware(cfg))
	r.Use(SessionMiddleware(cfg, store))
	r.Use(CSRFMiddleware(cfg, store))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apis := r.Group("/apis")
	{
		apis.POST("/sign-in", func(c *gin.Context) {
			var req SignInRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				respond(c, http.StatusBadRequest, "invalid json")
				return
			}

			result := signIn.SignIn(c.Request.Context(), currentSessionID(c), req)
			if result.Outcome == SignInSuccess {
				// The token travels out-of-band; the body carries no data.
				c.Header("Authorization", result.Token)
			}
			respond(c, result.Status, result.Message)
		})

		apis.POST("/sign-out", func(c *gin.Context) {
			if err := signIn.SignOut(c.Request.Context(), currentSessionID(c)); err != nil {
				respond(c, http.StatusInternalServerError, err.Error())
				return
			}

			sessionAny, _ := c.Get("session")
			sess, _ := sessionAny.(*sessions.Session)
			if sess != nil {
				sess.Values = map[interface{}]interface{}{}
				applySessionOptions(cfg, sess)
				sess.Options.MaxAge = -1 // Must be set AFTER applySessionOptions to properly delete cookie
				if err := sess.Save(c.Request, c.Writer); err != nil {
					respond(c, http.StatusInternalServerError, "failed to clear session")
					return
				}
			}
			c.Status(http.StatusNoContent)
		})

		apis.GET("/profile/me", func(c *gin.Context) {
			rec, ok := requireAuth(c, sessionStore)
			if !ok {
				return
			}
			respondData(c, http.StatusOK, gin.H{
				"profileId":         rec.Profile.ID,
				"profileEmail":      rec.Profile.Email,
				"profileHandle":     rec.Profile.Handle,
				"profileCreateDate": rec.Profile.CreatedAt,
			})
		})
	}

	return r
}

// requireAuth loads the caller's session record and re-verifies the presented
// token against the signature bound to that session. A request authenticates
// only while its session record exists and the token checks out against the
// record's own signature.
func requireAuth(c *gin.Context, store SessionStore) (*SessionRecord, bool) {
	sid := currentSessionID(c)
	if sid == "" {
		respond(c, http.StatusUnauthorized, "Please sign in")
		return nil, false
	}

	rec, err := store.Get(c.Request.Context(), sid)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if rec == nil {
		respond(c, http.StatusUnauthorized, "Please sign in")
		return nil, false
	}

	token := c.GetHeader("Authorization")
	if token == "" {
		respond(c, http.StatusUnauthorized, "Please sign in")
		return nil, false
	}
	if _, err := VerifyToken(token, rec.Signature); err != nil {
		respond(c, http.StatusUnauthorized, "Please sign in")
		return nil, false
	}

	return rec, true
}
