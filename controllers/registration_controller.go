package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/models"
	"github.com/sspl-t10/registration/utils"
)

// RegistrationRequest collects the player details together with the verified
// payment triple. A row is only written when the referenced order has a
// verified payment attempt on record.
type RegistrationRequest struct {
	PlayerName        string  `json:"player_name" binding:"required"`
	Email             string  `json:"email" binding:"required"`
	Phone             string  `json:"phone" binding:"required"`
	DateOfBirth       string  `json:"date_of_birth"`
	PlayingRole       string  `json:"playing_role"`
	City              string  `json:"city"`
	RazorpayOrderID   string  `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" binding:"required"`
	PaymentAmount     float64 `json:"payment_amount" binding:"required,gt=0"`
}

// POST /api/registrations
func CreateRegistration(c *gin.Context) {
	utils.LogInfo("CreateRegistration called")

	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid registration request", err.Error())
		return
	}

	if valid, msg := utils.ValidatePlayerName(req.PlayerName); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidatePhone(req.Phone); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidateOrderID(req.RazorpayOrderID); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidatePaymentID(req.RazorpayPaymentID); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	// No persistence without verification. The verify-payment endpoint marks
	// the attempt verified; a forged signature never reaches this state.
	var attempt models.PaymentAttempt
	err := config.DB.Where("razorpay_order_id = ? AND razorpay_payment_id = ? AND status = ?",
		req.RazorpayOrderID, req.RazorpayPaymentID, models.AttemptStatusVerified).
		First(&attempt).Error
	if err != nil {
		utils.LogError("No verified payment attempt for order %s: %v", req.RazorpayOrderID, err)
		utils.BadRequest(c, "Payment has not been verified for this order", nil)
		return
	}
	utils.LogDebug("Found verified attempt for order %s", req.RazorpayOrderID)

	registration := models.PlayerRegistration{
		PlayerName:        utils.SanitizeString(req.PlayerName),
		Email:             req.Email,
		Phone:             req.Phone,
		DateOfBirth:       utils.SanitizeString(req.DateOfBirth),
		PlayingRole:       utils.SanitizeString(req.PlayingRole),
		City:              utils.SanitizeString(req.City),
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		PaymentStatus:     utils.PaymentStatusCompleted,
		PaymentAmount:     req.PaymentAmount,
	}
	if err := config.DB.Create(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.LogError("Duplicate registration for order %s", req.RazorpayOrderID)
			utils.Conflict(c, "A registration already exists for this order", nil)
			return
		}
		utils.LogError("Failed to create registration for order %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to create registration", err.Error())
		return
	}
	utils.LogInfo("Registration %d created for order %s", registration.ID, registration.RazorpayOrderID)

	// Confirmation email is best effort; the registration is already durable.
	go func(r models.PlayerRegistration) {
		if err := utils.SendRegistrationConfirmation(r.Email, r.PlayerName, r.RazorpayOrderID, r.RazorpayPaymentID, r.PaymentAmount); err != nil {
			utils.LogError("Failed to send confirmation email for registration %d: %v", r.ID, err)
		}
	}(registration)

	utils.Created(c, "Registration completed successfully", gin.H{
		"registration": gin.H{
			"id":                  registration.ID,
			"player_name":         registration.PlayerName,
			"razorpay_order_id":   registration.RazorpayOrderID,
			"razorpay_payment_id": registration.RazorpayPaymentID,
			"payment_status":      registration.PaymentStatus,
			"payment_amount":      registration.PaymentAmount,
		},
	})
}

// GET /api/registrations/:orderId
//
// Lets the UI re-fetch a registration after a reload, keyed by the gateway
// order id it already holds.
func GetRegistration(c *gin.Context) {
	orderID := c.Param("orderId")
	if valid, msg := utils.ValidateOrderID(orderID); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	var registration models.PlayerRegistration
	if err := config.DB.Where("razorpay_order_id = ?", orderID).First(&registration).Error; err != nil {
		utils.LogError("Registration not found for order %s: %v", orderID, err)
		utils.NotFound(c, "Registration not found")
		return
	}

	utils.Success(c, "Registration retrieved", gin.H{"registration": registration})
}
