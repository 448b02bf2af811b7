package controllers

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/gateway"
	"github.com/sspl-t10/registration/models"
)

// The registration gate needs a real database; these tests run against the
// Postgres named by the DB_* environment and skip otherwise.
func setupRegistrationDB(t *testing.T) {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("requires a configured Postgres (set DB_HOST to run)")
	}
	if config.DB == nil {
		config.InitDB()
	}
	config.DB.Exec("TRUNCATE TABLE payment_attempts, player_registrations CASCADE")
	t.Cleanup(func() {
		config.DB.Exec("TRUNCATE TABLE payment_attempts, player_registrations CASCADE")
	})
}

func setupRegistrationRouter(t *testing.T, stub *stubGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gateway.SetActive(stub)

	router := gin.New()
	router.POST("/api/razorpay/create-order", CreateOrder)
	router.POST("/api/razorpay/verify-payment", VerifyPayment)
	router.POST("/api/registrations", CreateRegistration)
	return router
}

func registrationBody(orderID, paymentID string) string {
	return fmt.Sprintf(`{
		"player_name": "Virat Kohli",
		"email": "virat@example.com",
		"phone": "+919876543210",
		"playing_role": "batsman",
		"city": "Delhi",
		"razorpay_order_id": %q,
		"razorpay_payment_id": %q,
		"payment_amount": 699
	}`, orderID, paymentID)
}

func TestNoRegistrationWithoutVerification(t *testing.T) {
	setupRegistrationDB(t)
	stub := &stubGateway{secret: "test-secret"}
	router := setupRegistrationRouter(t, stub)

	// Create an order, then attempt verification with a forged signature
	w := postJSON(router, "/api/razorpay/create-order", `{"amount": 699}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/razorpay/verify-payment",
		`{"paymentId":"pay_ABC","orderId":"order_TEST123","signature":"forged"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Registration against the unverified order must be refused
	w = postJSON(router, "/api/registrations", registrationBody("order_TEST123", "pay_ABC"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	config.DB.Model(&models.PlayerRegistration{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegistrationAfterVerifiedPayment(t *testing.T) {
	setupRegistrationDB(t)
	stub := &stubGateway{secret: "test-secret"}
	router := setupRegistrationRouter(t, stub)

	w := postJSON(router, "/api/razorpay/create-order", `{"amount": 699}`)
	require.Equal(t, http.StatusOK, w.Code)

	signature := gateway.ComputeSignature("test-secret", "order_TEST123", "pay_ABC")
	w = postJSON(router, "/api/razorpay/verify-payment",
		fmt.Sprintf(`{"paymentId":"pay_ABC","orderId":"order_TEST123","signature":%q}`, signature))
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/registrations", registrationBody("order_TEST123", "pay_ABC"))
	require.Equal(t, http.StatusCreated, w.Code)

	var registration models.PlayerRegistration
	require.NoError(t, config.DB.Where("razorpay_order_id = ?", "order_TEST123").First(&registration).Error)
	assert.Equal(t, "completed", registration.PaymentStatus)
	assert.Equal(t, float64(699), registration.PaymentAmount)
	assert.Equal(t, "pay_ABC", registration.RazorpayPaymentID)

	// A second registration for the same order is refused
	w = postJSON(router, "/api/registrations", registrationBody("order_TEST123", "pay_ABC"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegistrationValidatesPlayerFields(t *testing.T) {
	setupRegistrationDB(t)
	stub := &stubGateway{secret: "test-secret"}
	router := setupRegistrationRouter(t, stub)

	body := `{
		"player_name": "V",
		"email": "not-an-email",
		"phone": "123",
		"razorpay_order_id": "order_TEST123",
		"razorpay_payment_id": "pay_ABC",
		"payment_amount": 699
	}`
	w := postJSON(router, "/api/registrations", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
