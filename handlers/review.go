package handlers

import (
	"net/http"

	"hotelsa/models"
	"hotelsa/navigation"
	"hotelsa/services/review"

	"github.com/gin-gonic/gin"
)

// SubmitReviewHandler stores a review and takes the session back one screen.
func (hb *HandlerBundle) SubmitReviewHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	id := s.Identity()
	if id == nil {
		f, err := s.Snapshot(c.Request.Context())
		if err != nil {
			sessionError(c, err)
			return
		}
		requiresAuth(c, f.Entry.Screen, navigation.ScreenRating)
		return
	}

	r, err := hb.Reviews.Submit(c.Request.Context(), review.Author{UserID: id.UID, DisplayName: id.DisplayName}, req)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := s.GoBack(c.Request.Context())
	if err != nil {
		sessionError(c, err)
		return
	}
	hb.respondFrame(c, http.StatusCreated, res.Frame, gin.H{
		"review":  r,
		"message": "Your review has been submitted successfully.",
	})
}
