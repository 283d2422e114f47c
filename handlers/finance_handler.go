package handlers

import (
	"strconv"
	"time"

	"github.com/olehks/content_studio/middleware"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetDebtSummary(c *fiber.Ctx) error {
	payeeID, err := uuid.Parse(c.Params("payeeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payee id"})
	}
	payee := models.PayeeRef{Kind: models.PayeeKind(c.Params("kind")), ID: payeeID}

	summary, err := services.GetDebtSummary(payee)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func GetPortfolioSummary(c *fiber.Ctx) error {
	hideSettled := c.Query("hide_settled") == "true"
	rows, err := services.GetPortfolioSummary(hideSettled)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

type AllocateRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func AllocatePayment(c *fiber.Ctx) error {
	payeeID, err := uuid.Parse(c.Params("payeeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payee id"})
	}
	var req AllocateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payee := models.PayeeRef{Kind: models.PayeeKind(c.Params("kind")), ID: payeeID}
	result, err := services.AllocatePayment(middleware.Actor(c), payee, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func ListLedger(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	filter := services.LedgerFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}
	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &fromDate
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			end := toDate.Add(24*time.Hour - time.Second)
			filter.To = &end
		}
	}

	records, total, err := services.ListLedger(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": records,
		"meta": fiber.Map{"total": total, "page": page},
	})
}

type ManualEntryRequest struct {
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func RecordManualEntry(c *fiber.Ctx) error {
	var req ManualEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD."})
		}
		date = parsed
	}

	record, err := services.RecordManualEntry(middleware.Actor(c), req.Type, req.Category,
		req.Amount, date, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}
