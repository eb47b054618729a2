package handlers

import (
	"net/http"

	"hotelsa/navigation"

	"github.com/gin-gonic/gin"
)

// NavigateRequest names a target screen and its params.
type NavigateRequest struct {
	Screen string            `json:"screen" binding:"required"`
	Params navigation.Params `json:"params"`
}

type navigateTarget struct {
	Screen navigation.Screen
	Params navigation.Params
}

// bindNavigate rejects screen names outside the closed set before they can
// reach the router.
func bindNavigate(c *gin.Context) (navigateTarget, bool) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return navigateTarget{}, false
	}
	screen, err := navigation.ParseScreen(req.Screen)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown screen", "details": err.Error()})
		return navigateTarget{}, false
	}
	return navigateTarget{Screen: screen, Params: req.Params}, true
}

// NavigateHandler pushes a screen. Guarded screens answer 403 requires-auth
// while signed out and leave the history untouched.
func (hb *HandlerBundle) NavigateHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	req, ok := bindNavigate(c)
	if !ok {
		return
	}
	res, err := s.Navigate(c.Request.Context(), req.Screen, req.Params)
	if err != nil {
		sessionError(c, err)
		return
	}
	if res.Outcome.Declined() {
		requiresAuth(c, res.Outcome.Current.Screen, req.Screen)
		return
	}
	hb.respondFrame(c, http.StatusOK, res.Frame, nil)
}

// BackHandler pops one screen. At the root nothing changes and popped is false.
func (hb *HandlerBundle) BackHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	res, err := s.GoBack(c.Request.Context())
	if err != nil {
		sessionError(c, err)
		return
	}
	hb.respondFrame(c, http.StatusOK, res.Frame, gin.H{"popped": res.Popped})
}

// ReplaceHandler resets the history to one screen.
func (hb *HandlerBundle) ReplaceHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	req, ok := bindNavigate(c)
	if !ok {
		return
	}
	res, err := s.Replace(c.Request.Context(), req.Screen, req.Params)
	if err != nil {
		sessionError(c, err)
		return
	}
	if res.Outcome.Declined() {
		requiresAuth(c, res.Outcome.Current.Screen, req.Screen)
		return
	}
	hb.respondFrame(c, http.StatusOK, res.Frame, nil)
}

// CompleteOnboardingHandler records that the device finished onboarding.
func (hb *HandlerBundle) CompleteOnboardingHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	f, err := s.FinishOnboarding(c.Request.Context())
	if err != nil {
		sessionError(c, err)
		return
	}
	hb.respondFrame(c, http.StatusOK, f, nil)
}
