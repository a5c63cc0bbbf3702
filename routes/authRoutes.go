package routes

import (
	"nagarseva-be/controllers"
	"nagarseva-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the OTP identity routes
func AuthRoutes(r *gin.Engine, ctrl *controllers.AuthController, otpSendLimit int) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/send-otp", middlewares.OTPRateLimiter(otpSendLimit), ctrl.SendOTP)
		auth.POST("/verify-otp", ctrl.VerifyOTP)
		auth.GET("/me", middlewares.AuthMiddleware(), ctrl.GetMe)
	}
}
