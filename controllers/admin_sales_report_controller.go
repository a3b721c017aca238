package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
	"github.com/tealeg/xlsx"
)

// salesReportRange resolves the report window from either a named period
// (daily/weekly/monthly/yearly) or explicit start_date/end_date params.
func salesReportRange(c *gin.Context) (time.Time, time.Time, string, error) {
	now := time.Now()
	period := c.DefaultQuery("period", "daily")

	if start := c.Query("start_date"); start != "" {
		end := c.Query("end_date")
		if end == "" {
			return time.Time{}, time.Time{}, "", fmt.Errorf("end_date is required with start_date")
		}
		from, err := time.Parse("2006-01-02", start)
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid start_date format, expected YYYY-MM-DD")
		}
		to, err := time.Parse("2006-01-02", end)
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid end_date format, expected YYYY-MM-DD")
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, "", fmt.Errorf("end_date cannot be before start_date")
		}
		return from, to.AddDate(0, 0, 1), "custom", nil
	}

	switch period {
	case "daily":
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 0, 1), period, nil
	case "weekly":
		return now.AddDate(0, 0, -7), now, period, nil
	case "monthly":
		return now.AddDate(0, -1, 0), now, period, nil
	case "yearly":
		return now.AddDate(-1, 0, 0), now, period, nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid period, expected daily, weekly, monthly or yearly")
	}
}

type salesSummary struct {
	TotalOrders    int     `json:"total_orders"`
	TotalSales     float64 `json:"total_sales"`
	TotalDiscount  float64 `json:"total_discount"`
	TotalShipping  float64 `json:"total_shipping"`
	CancelledCount int     `json:"cancelled_count"`
	ReturnedCount  int     `json:"returned_count"`
}

func loadSalesOrders(from, to time.Time) ([]models.Order, salesSummary, error) {
	var orders []models.Order
	if err := config.DB.Preload("User").Preload("OrderItems").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, salesSummary{}, err
	}

	var sum salesSummary
	for _, order := range orders {
		sum.TotalOrders++
		switch order.Status {
		case models.OrderStatusCancelled:
			sum.CancelledCount++
		case models.OrderStatusReturned:
			sum.ReturnedCount++
		default:
			sum.TotalSales += order.Total
			sum.TotalDiscount += (order.Subtotal - order.OfferSubtotal) + order.VoucherDiscount
			sum.TotalShipping += order.ShippingFee
		}
	}
	return orders, sum, nil
}

// AdminSalesReport returns sales figures for a period as JSON
func AdminSalesReport(c *gin.Context) {
	utils.LogInfo("AdminSalesReport called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	from, to, period, err := salesReportRange(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	orders, sum, err := loadSalesOrders(from, to)
	if err != nil {
		utils.LogError("Failed to load sales orders: %v", err)
		utils.InternalServerError(c, "Failed to generate sales report", nil)
		return
	}

	rows := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, gin.H{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"date":         order.CreatedAt.Format("2006-01-02 15:04:05"),
			"customer":     order.User.Username,
			"items":        len(order.OrderItems),
			"status":       order.Status,
			"discount":     fmt.Sprintf("%.2f", (order.Subtotal-order.OfferSubtotal)+order.VoucherDiscount),
			"total":        fmt.Sprintf("%.2f", order.Total),
		})
	}

	utils.LogInfo("Sales report generated: period=%s orders=%d", period, sum.TotalOrders)
	utils.Success(c, "Sales report generated successfully", gin.H{
		"period":     period,
		"start_date": from.Format("2006-01-02"),
		"end_date":   to.AddDate(0, 0, -1).Format("2006-01-02"),
		"summary": gin.H{
			"total_orders":    sum.TotalOrders,
			"total_sales":     fmt.Sprintf("%.2f", sum.TotalSales),
			"total_discount":  fmt.Sprintf("%.2f", sum.TotalDiscount),
			"total_shipping":  fmt.Sprintf("%.2f", sum.TotalShipping),
			"cancelled_count": sum.CancelledCount,
			"returned_count":  sum.ReturnedCount,
		},
		"orders": rows,
	})
}

// AdminSalesReportExcel exports the sales report as an Excel file
func AdminSalesReportExcel(c *gin.Context) {
	utils.LogInfo("AdminSalesReportExcel called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	from, to, period, err := salesReportRange(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	orders, sum, err := loadSalesOrders(from, to)
	if err != nil {
		utils.LogError("Failed to load sales orders for export: %v", err)
		utils.InternalServerError(c, "Failed to generate sales report", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create report sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate sales report", nil)
		return
	}

	boldStyle := xlsx.NewStyle()
	boldFont := xlsx.DefaultFont()
	boldFont.Bold = true
	boldStyle.Font = *boldFont

	titleRow := sheet.AddRow()
	titleCell := titleRow.AddCell()
	titleCell.Value = "ShopNest - Sales Report"
	titleCell.SetStyle(boldStyle)

	metaRow := sheet.AddRow()
	metaRow.AddCell().Value = fmt.Sprintf("Period: %s (%s to %s)", period,
		from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
	sheet.AddRow()

	header := sheet.AddRow()
	for _, title := range []string{"Order No", "Date", "Customer", "Items", "Status", "Discount", "Total"} {
		cell := header.AddCell()
		cell.Value = title
		cell.SetStyle(boldStyle)
	}

	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().Value = order.OrderNumber
		row.AddCell().Value = order.CreatedAt.Format("2006-01-02 15:04:05")
		row.AddCell().Value = order.User.Username
		row.AddCell().SetInt(len(order.OrderItems))
		row.AddCell().Value = order.Status
		row.AddCell().Value = fmt.Sprintf("%.2f", (order.Subtotal-order.OfferSubtotal)+order.VoucherDiscount)
		row.AddCell().Value = fmt.Sprintf("%.2f", order.Total)
	}

	sheet.AddRow()
	summaryTitle := sheet.AddRow().AddCell()
	summaryTitle.Value = "Summary"
	summaryTitle.SetStyle(boldStyle)
	addSummary := func(label, value string) {
		row := sheet.AddRow()
		row.AddCell().Value = label
		row.AddCell().Value = value
	}
	addSummary("Total Orders", fmt.Sprintf("%d", sum.TotalOrders))
	addSummary("Total Sales", fmt.Sprintf("%.2f", sum.TotalSales))
	addSummary("Total Discount", fmt.Sprintf("%.2f", sum.TotalDiscount))
	addSummary("Total Shipping", fmt.Sprintf("%.2f", sum.TotalShipping))
	addSummary("Cancelled Orders", fmt.Sprintf("%d", sum.CancelledCount))
	addSummary("Returned Orders", fmt.Sprintf("%d", sum.ReturnedCount))

	filename := fmt.Sprintf("sales_report_%s_%s.xlsx", period, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write report file: %v", err)
		return
	}
	utils.LogInfo("Sales report exported: period=%s orders=%d", period, sum.TotalOrders)
}
