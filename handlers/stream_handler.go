package handlers

import (
	"math"
	"strconv"
	"time"

	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StreamRequest struct {
	StreamerID string  `json:"streamer_id" validate:"required,uuid"`
	Title      string  `json:"title" validate:"required"`
	StreamDate string  `json:"stream_date" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

func CreateStream(c *fiber.Ctx) error {
	var req StreamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	streamDate, err := time.Parse("2006-01-02", req.StreamDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stream_date format. Use YYYY-MM-DD."})
	}

	streamerID := uuid.MustParse(req.StreamerID)
	var streamer models.Streamer
	if err := database.DB.First(&streamer, "id = ?", streamerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Streamer not found"})
	}

	stream := models.Stream{
		StreamerID:    streamerID,
		Title:         req.Title,
		StreamDate:    streamDate,
		Amount:        req.Amount,
		PaymentStatus: models.StreamPaymentPending,
	}
	if err := database.DB.Create(&stream).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create stream"})
	}
	return c.Status(fiber.StatusCreated).JSON(stream)
}

func ListStreams(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Stream{})
	countQuery := database.DB.Model(&models.Stream{})

	if streamerID := c.Query("streamer_id"); streamerID != "" {
		query = query.Where("streamer_id = ?", streamerID)
		countQuery = countQuery.Where("streamer_id = ?", streamerID)
	}
	if status := c.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
		countQuery = countQuery.Where("payment_status = ?", status)
	}

	var total int64
	var streams []models.Stream
	countQuery.Count(&total)
	query.Order("stream_date desc").Offset(offset).Limit(limit).Find(&streams)

	return c.JSON(fiber.Map{
		"data": streams,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
