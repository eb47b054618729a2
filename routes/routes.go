package routes

import (
	"time"

	"hotelsa/handlers"
	"hotelsa/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers app session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.POST("", middleware.DeviceDetailsMiddleware(), hb.StartSessionHandler)

		// Protected routes (Require a session token)
		api.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		api.GET("/current", hb.CurrentSessionHandler)
		api.DELETE("/current", hb.EndSessionHandler)
	}
}

// RegisterNavigationRoutes registers the screen stack commands.
func RegisterNavigationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	nav := r.Group("/api/nav")
	{
		nav.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		nav.POST("/navigate", hb.NavigateHandler)
		nav.POST("/back", hb.BackHandler)
		nav.POST("/replace", hb.ReplaceHandler)
	}

	onboarding := r.Group("/api/onboarding")
	{
		onboarding.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		onboarding.POST("/complete", hb.CompleteOnboardingHandler)
	}
}

// RegisterAuthRoutes registers sign-in, sign-up and sign-out.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/auth/password-strength", hb.PasswordStrengthHandler)

	api := r.Group("/api/auth")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		api.POST("/signin", hb.SignInHandler)
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/signout", hb.SignOutHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
	}
}

// RegisterBookingRoutes registers quoting, confirming and listing stays.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		bookingGroup.POST("/quote", hb.QuoteHandler)
		bookingGroup.POST("", hb.ConfirmBookingHandler)
		bookingGroup.GET("", hb.ListBookingsHandler)
	}
}

// RegisterProfileRoutes registers review and profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	reviews := r.Group("/api/reviews")
	{
		reviews.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		reviews.POST("", hb.SubmitReviewHandler)
	}

	profile := r.Group("/api/profile")
	{
		profile.Use(middleware.SessionAuthMiddleware(hb.Tokens, hb.Sessions))
		profile.PUT("", hb.UpdateProfileHandler)
		profile.PUT("/push-token", hb.UpdatePushTokenHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.HeaderDeviceID, middleware.HeaderDeviceName},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterNavigationRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
