package controllers

import (
	"log"
	"net/http"

	"nagarseva-be/services"
	"nagarseva-be/utils"

	"github.com/gin-gonic/gin"
)

// AuthController exposes the OTP identity flow.
type AuthController struct {
	otp *services.OTPService
}

// NewAuthController wires the auth handlers.
func NewAuthController(otp *services.OTPService) *AuthController {
	return &AuthController{otp: otp}
}

// SendOTP generates and dispatches a verification code.
func (ctrl *AuthController) SendOTP(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	// The rate limiter has already read the body; bind from the cached copy.
	if err := c.ShouldBindBodyWithJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.otp.RequestCode(c.Request.Context(), input.Phone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// VerifyOTP checks a submitted code and issues a session token.
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctrl.otp.VerifyCode(c.Request.Context(), input.Phone, input.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(result.Identity.CitizenID)
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"citizen": result.Identity,
		"isNew":   result.IsNew,
		"token":   token,
	})
}

// GetMe returns the verified identity for the bearer token.
func (ctrl *AuthController) GetMe(c *gin.Context) {
	citizenID, exists := c.Get("citizen_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"citizenId": citizenID})
}
