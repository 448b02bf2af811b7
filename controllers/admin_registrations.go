package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/models"
	"github.com/sspl-t10/registration/utils"
)

// ListRegistrations returns paid registrations for the admin dashboard, with
// pagination and an optional search over name, email and order id.
//
// GET /api/admin/registrations
func ListRegistrations(c *gin.Context) {
	utils.LogInfo("ListRegistrations called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.PlayerRegistration{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"player_name ILIKE ? OR email ILIKE ? OR razorpay_order_id ILIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count registrations: %v", err)
		utils.InternalServerError(c, "Failed to fetch registrations", err.Error())
		return
	}

	var registrations []models.PlayerRegistration
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&registrations).Error; err != nil {
		utils.LogError("Failed to fetch registrations: %v", err)
		utils.InternalServerError(c, "Failed to fetch registrations", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d of %d registrations", len(registrations), total)

	utils.SuccessWithPagination(c, "Registrations retrieved successfully",
		registrations, total, pagination.Page, pagination.Limit)
}

// ExportRegistrationsExcel downloads all registrations in a date range as an
// Excel workbook.
//
// GET /api/admin/registrations/export?from=2026-01-01&to=2026-01-31
func ExportRegistrationsExcel(c *gin.Context) {
	utils.LogInfo("ExportRegistrationsExcel called")

	query := config.DB.Model(&models.PlayerRegistration{}).Order("created_at DESC")

	if from := c.Query("from"); from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.BadRequest(c, "Invalid from date", "expected YYYY-MM-DD")
			return
		}
		query = query.Where("created_at >= ?", start)
	}
	if to := c.Query("to"); to != "" {
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.BadRequest(c, "Invalid to date", "expected YYYY-MM-DD")
			return
		}
		query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
	}

	var registrations []models.PlayerRegistration
	if err := query.Find(&registrations).Error; err != nil {
		utils.LogError("Failed to fetch registrations for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch registrations", err.Error())
		return
	}
	utils.LogDebug("Exporting %d registrations", len(registrations))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Registrations")
	if err != nil {
		utils.LogError("Failed to create export sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate export", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{
		"ID", "Player Name", "Email", "Phone", "Playing Role", "City",
		"Order ID", "Payment ID", "Payment Status", "Amount (INR)", "Registered At",
	} {
		header.AddCell().SetString(title)
	}

	var totalCollected float64
	for _, r := range registrations {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(r.ID))
		row.AddCell().SetString(r.PlayerName)
		row.AddCell().SetString(r.Email)
		row.AddCell().SetString(r.Phone)
		row.AddCell().SetString(r.PlayingRole)
		row.AddCell().SetString(r.City)
		row.AddCell().SetString(r.RazorpayOrderID)
		row.AddCell().SetString(r.RazorpayPaymentID)
		row.AddCell().SetString(r.PaymentStatus)
		row.AddCell().SetFloat(r.PaymentAmount)
		row.AddCell().SetString(r.CreatedAt.Format("2006-01-02 15:04:05"))
		totalCollected += r.PaymentAmount
	}

	summary := sheet.AddRow()
	summary.AddCell().SetString("")
	summary.AddCell().SetString(fmt.Sprintf("Total registrations: %d", len(registrations)))
	for i := 0; i < 7; i++ {
		summary.AddCell().SetString("")
	}
	summary.AddCell().SetFloat(totalCollected)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write export workbook: %v", err)
		utils.InternalServerError(c, "Failed to generate export", err.Error())
		return
	}
	utils.LogInfo("Generated registration export with %d rows", len(registrations))

	filename := fmt.Sprintf("sspl-registrations-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
