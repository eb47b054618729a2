package handlers

import (
	"net/http"

	"hotelsa/models"
	"hotelsa/services/identity"
	"hotelsa/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// demoOffer is implemented by providers that can fall back to demo mode.
type demoOffer interface {
	DemoAvailable(err error) bool
}

// writeAuthError answers a failed sign-in or sign-up. When the provider is
// unreachable and demo mode is on, the client is told it may offer demo mode.
func writeAuthError(c *gin.Context, p identity.Provider, err error) {
	if offer, ok := p.(demoOffer); ok && offer.DemoAvailable(err) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":         string(identity.CodeNetwork),
			"details":       err.Error(),
			"demoAvailable": true,
		})
		return
	}
	writeError(c, err)
}

// SignInHandler signs the session in with e-mail and password, a client ID
// token, or (after the user confirmed it) the demo identity. The returned
// frame already reflects the sign-in.
func (hb *HandlerBundle) SignInHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var creds identity.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if !creds.Demo && creds.IDToken == "" && (creds.Email == "" || creds.Password == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	id, err := s.Provider.SignIn(c.Request.Context(), creds)
	if err != nil {
		getLogger(c).Info("Sign in failed", zap.String("code", string(identity.CodeOf(err))), zap.Error(err))
		writeAuthError(c, s.Provider, err)
		return
	}
	hb.respondSnapshot(c, s, http.StatusOK, gin.H{"identity": id})
}

// SignUpHandler creates an account and signs the session in.
func (hb *HandlerBundle) SignUpHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var data models.UserRegistrationData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	id, err := hb.Users.Register(c.Request.Context(), s.Provider, data)
	if err != nil {
		writeAuthError(c, s.Provider, err)
		return
	}
	hb.respondSnapshot(c, s, http.StatusCreated, gin.H{"identity": id})
}

// SignOutHandler signs the session out; the history is replaced with auth.
func (hb *HandlerBundle) SignOutHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	if err := s.Provider.SignOut(c.Request.Context()); err != nil {
		getLogger(c).Error("Sign out failed", zap.Error(err))
		writeError(c, err)
		return
	}
	hb.respondSnapshot(c, s, http.StatusOK, nil)
}

// ForgotPasswordHandler sends the password-reset e-mail.
func (hb *HandlerBundle) ForgotPasswordHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := hb.Users.ForgotPassword(c.Request.Context(), s.Provider, req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent! Check your inbox."})
}

// PasswordStrengthHandler rates a candidate password for the sign-up form.
func (hb *HandlerBundle) PasswordStrengthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strength": user.PasswordStrength(c.Query("password"))})
}
