package handlers

import (
	"context"
	"net/http"

	"hotelsa/middleware"
	"hotelsa/navigation"
	"hotelsa/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FrameResponse is what the client draws: the current screen and its view.
type FrameResponse struct {
	SessionID          string               `json:"sessionId"`
	Screen             navigation.Screen    `json:"screen"`
	Params             navigation.Params    `json:"params,omitempty"`
	CanGoBack          bool                 `json:"canGoBack"`
	History            []navigation.Screen  `json:"history"`
	Identity           *navigation.Identity `json:"identity,omitempty"`
	OnboardingComplete bool                 `json:"onboardingComplete"`
	View               any                  `json:"view"`
	ViewError          string               `json:"viewError,omitempty"`
}

// renderFrame renders the frame's screen. A failed render still returns the
// navigation state so the client is never left without a screen.
func (hb *HandlerBundle) renderFrame(ctx context.Context, logger *zap.Logger, f navigation.Frame) FrameResponse {
	resp := FrameResponse{
		SessionID:          f.SessionID,
		Screen:             f.Entry.Screen,
		Params:             f.Entry.Params(),
		CanGoBack:          f.CanGoBack,
		History:            f.History,
		Identity:           f.State.Identity,
		OnboardingComplete: f.State.OnboardingComplete,
	}
	view, err := hb.Screens.Render(ctx, f)
	if err != nil {
		logger.Warn("Screen render failed", zap.Stringer("screen", f.Entry.Screen), zap.Error(err))
		resp.ViewError = err.Error()
		return resp
	}
	resp.View = view
	return resp
}

// currentSession fetches the session set by SessionAuthMiddleware.
func currentSession(c *gin.Context) (*session.AppSession, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session not found in context"})
		return nil, false
	}
	return s, true
}

// respondSnapshot renders the session's current frame, with extra fields
// merged into the body.
func (hb *HandlerBundle) respondSnapshot(c *gin.Context, s *session.AppSession, status int, extra gin.H) {
	f, err := s.Snapshot(c.Request.Context())
	if err != nil {
		sessionError(c, err)
		return
	}
	hb.respondFrame(c, status, f, extra)
}

func (hb *HandlerBundle) respondFrame(c *gin.Context, status int, f navigation.Frame, extra gin.H) {
	body := gin.H{"frame": hb.renderFrame(c.Request.Context(), getLogger(c), f)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// requiresAuth answers a declined navigation.
func requiresAuth(c *gin.Context, current navigation.Screen, target navigation.Screen) {
	c.JSON(http.StatusForbidden, gin.H{
		"error":  navigation.OutcomeRequiresAuth.String(),
		"screen": current,
		"target": target,
	})
}
