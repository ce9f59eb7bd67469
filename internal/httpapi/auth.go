package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aajetechnology/StudyBot/internal/auth"
)

func (h *Handler) register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, u)
}

func (h *Handler) login(c *gin.Context) {
	var in auth.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	token, u, err := h.Auth.Login(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookie(c, token, int(h.cfg.Auth.TokenTTL.Seconds()))
	respondOK(c, gin.H{"token": token, "user": u})
}

func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	respondOK(c, nil)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Auth.CookieName, token, maxAge, "/", "", c.Request.TLS != nil, true)
}

func (h *Handler) me(c *gin.Context) {
	respondOK(c, gin.H{"id": currentUser(c), "is_admin": c.GetBool(keyAdmin)})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, users)
}
