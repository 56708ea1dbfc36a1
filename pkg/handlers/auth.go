package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	sessionTokenKey = "access_token"
	sessionStateKey = "oauth_state"
)

// Auth guards the API with a GitHub login kept in the session.
type Auth struct {
	oauth *oauth2.Config
}

func NewAuth(oauth *oauth2.Config) *Auth {
	return &Auth{oauth: oauth}
}

func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	if token, _ := session.Get(sessionTokenKey).(string); token == "" {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
		return
	}
	c.Next()
}

// LoginPage has no page of its own; it goes straight to GitHub.
func (a *Auth) LoginPage(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login/github")
}

func (a *Auth) GithubLogin(c *gin.Context) {
	state, err := newState()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to start login")
		return
	}
	session := sessions.Default(c)
	session.Set(sessionStateKey, state)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, a.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (a *Auth) AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	want, _ := session.Get(sessionStateKey).(string)
	if want == "" || c.Query("state") != want {
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	token, err := a.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange failed")
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	session.Delete(sessionStateKey)
	session.Set(sessionTokenKey, token.AccessToken)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *Auth) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/login")
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
