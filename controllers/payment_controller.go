package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sspl-t10/registration/cache"
	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/gateway"
	"github.com/sspl-t10/registration/models"
	"github.com/sspl-t10/registration/utils"
)

// The payment endpoints keep the wire shapes the browser checkout has always
// consumed: the raw gateway order object, {"verified":true} and
// {"error":"Invalid signature"}. They deliberately do not use the standard
// response envelope.

const idempotencyTTL = 24 * time.Hour

// CreateOrderRequest is the create-order input. Amount is in whole rupees.
type CreateOrderRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// POST /api/razorpay/create-order
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-order request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required and must be a positive number"})
		return
	}

	// Duplicate submissions with the same idempotency key replay the first
	// response instead of creating a second gateway order.
	idemKey := c.GetHeader("X-Idempotency-Key")
	if idemKey != "" && cache.Enabled() {
		if cached, err := cache.Get("idem:" + idemKey); err == nil {
			utils.LogInfo("Replaying cached order for idempotency key %s", idemKey)
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	// Razorpay expects the amount in paise
	amountPaise := int64(math.Round(req.Amount * 100))
	receipt := "sspl_reg_" + time.Now().Format("20060102150405")
	utils.LogDebug("Creating order - Amount: %.2f, Paise: %d, Receipt: %s", req.Amount, amountPaise, receipt)

	order, err := gateway.Active().CreateOrder(amountPaise, receipt, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	orderID, _ := order["id"].(string)
	utils.LogInfo("Created Razorpay order %s", orderID)

	recordAttempt(models.PaymentAttempt{
		RazorpayOrderID: orderID,
		Receipt:         receipt,
		AmountPaise:     amountPaise,
		Status:          models.AttemptStatusPending,
		IdempotencyKey:  idemKey,
	})

	if idemKey != "" && cache.Enabled() {
		if body, err := json.Marshal(order); err == nil {
			if err := cache.Set("idem:"+idemKey, body, idempotencyTTL); err != nil {
				utils.LogError("Failed to cache order for idempotency key %s: %v", idemKey, err)
			}
		}
	}

	c.JSON(http.StatusOK, order)
}

// VerifyPaymentRequest is the verify-payment input
type VerifyPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
	OrderID   string `json:"orderId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// POST /api/razorpay/verify-payment
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify-payment request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentId, orderId and signature are required"})
		return
	}

	if !gateway.Active().VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		utils.LogError("Signature mismatch for order %s, payment %s", req.OrderID, req.PaymentID)
		markAttempt(req.OrderID, req.PaymentID, models.AttemptStatusFailed)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}
	utils.LogInfo("Payment signature verified for order %s", req.OrderID)

	markAttempt(req.OrderID, req.PaymentID, models.AttemptStatusVerified)
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// CancelPaymentRequest is the cancel input
type CancelPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// POST /api/razorpay/cancel
//
// The payer dismissed the checkout UI. This is a first-class outcome the
// caller distinguishes from a failure, not a silent no-op.
func CancelPayment(c *gin.Context) {
	utils.LogInfo("CancelPayment called")

	var req CancelPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid cancel request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentId is required"})
		return
	}
	if valid, msg := utils.ValidatePaymentID(req.PaymentID); !valid {
		utils.LogError("Cancel rejected for payment id %q: %s", req.PaymentID, msg)
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if config.DB != nil {
		result := config.DB.Model(&models.PaymentAttempt{}).
			Where("razorpay_payment_id = ? AND status NOT IN ?", req.PaymentID,
				[]string{models.AttemptStatusVerified}).
			Update("status", models.AttemptStatusCancelled)
		if result.Error != nil {
			utils.LogError("Failed to mark attempt cancelled for payment %s: %v", req.PaymentID, result.Error)
		}
	}

	utils.LogInfo("Payment %s cancelled by payer", req.PaymentID)
	c.JSON(http.StatusOK, gin.H{"cancelled": true, "code": utils.PaymentCancelledCode})
}

// GET /api/razorpay/config
//
// Hands the publishable key id to the browser. The secret never leaves the
// gateway package.
func GatewayConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"razorpayKeyId": gateway.Active().KeyID()})
}

// recordAttempt persists a new payment attempt. The attempt ledger gates
// registration writes; when no database is configured (unit tests, proxy-only
// deployments) the payment endpoints still function.
func recordAttempt(attempt models.PaymentAttempt) {
	if config.DB == nil {
		return
	}
	if err := config.DB.Create(&attempt).Error; err != nil {
		utils.LogError("Failed to record payment attempt for order %s: %v", attempt.RazorpayOrderID, err)
	}
}

func markAttempt(orderID, paymentID, status string) {
	if config.DB == nil {
		return
	}
	result := config.DB.Model(&models.PaymentAttempt{}).
		Where("razorpay_order_id = ?", orderID).
		Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              status,
		})
	if result.Error != nil {
		utils.LogError("Failed to mark attempt %s as %s: %v", orderID, status, result.Error)
	}
}
