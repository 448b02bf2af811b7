package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/models"
	"github.com/sspl-t10/registration/utils"
)

// DownloadReceipt generates and returns a PDF payment receipt for a
// registration.
//
// GET /api/registrations/:orderId/receipt
func DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")

	orderID := c.Param("orderId")
	if valid, msg := utils.ValidateOrderID(orderID); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	var registration models.PlayerRegistration
	if err := config.DB.Where("razorpay_order_id = ?", orderID).First(&registration).Error; err != nil {
		utils.LogError("Registration not found for receipt - order %s: %v", orderID, err)
		utils.NotFound(c, "Registration not found")
		return
	}
	utils.LogDebug("Generating receipt for registration %d", registration.ID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "SSPL T10 Cricket Tournament")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Player Registration Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(90, 8, "Registration ID: "+strconv.Itoa(int(registration.ID)))
	pdf.Cell(90, 8, "Date: "+registration.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Player Details:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, registration.PlayerName)
	pdf.Ln(6)
	pdf.Cell(100, 8, registration.Email)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+registration.Phone)
	if registration.PlayingRole != "" {
		pdf.Ln(6)
		pdf.Cell(100, 8, "Playing Role: "+registration.PlayingRole)
	}
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 8, "Reference", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(70, 8, "Tournament Registration Fee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, registration.RazorpayPaymentID, "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", registration.PaymentAmount), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 8, "Order ID: "+registration.RazorpayOrderID)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Payment Status: "+registration.PaymentStatus)
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(100, 8, "This is a computer generated receipt and does not require a signature.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF for registration %d: %v", registration.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}
	utils.LogInfo("Generated receipt PDF for registration %d", registration.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sspl-receipt-%d.pdf", registration.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
