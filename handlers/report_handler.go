package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func ledgerForRange(c *fiber.Ctx) ([]models.FinancialRecord, time.Time, time.Time, error) {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format, use YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format, use YYYY-MM-DD")
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var records []models.FinancialRecord
	err = database.DB.
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date desc").
		Find(&records).Error
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("failed to load ledger records")
	}
	return records, startDate, endDate, nil
}

func recordRow(r models.FinancialRecord) []string {
	payee := ""
	if r.PayeeKind != nil && r.PayeeID != nil {
		payee = string(*r.PayeeKind) + ":" + r.PayeeID.String()
	}
	return []string{
		r.ID.String(),
		r.Date.Format("2006-01-02 15:04"),
		r.Type,
		r.Category,
		fmt.Sprintf("%.2f", r.Amount),
		payee,
		r.Description,
	}
}

var reportHeaders = []string{"Record ID", "Date", "Type", "Category", "Amount", "Payee", "Description"}

func ExportLedgerCSV(c *fiber.Ctx) error {
	records, startDate, endDate, err := ledgerForRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	if err := w.Write(reportHeaders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s_to_%s.csv\"",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))
	return c.Send(b.Bytes())
}

func ExportLedgerXLSX(c *fiber.Ctx) error {
	records, startDate, endDate, err := ledgerForRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ledger"
	f.SetSheetName("Sheet1", sheet)
	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for rowIdx, r := range records {
		for colIdx, value := range recordRow(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	b, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build spreadsheet"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s_to_%s.xlsx\"",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))
	return c.Send(b.Bytes())
}
