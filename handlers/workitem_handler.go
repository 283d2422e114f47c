package handlers

import (
	"math"
	"strconv"
	"time"

	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/middleware"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScriptRequest struct {
	Title        string  `json:"title" validate:"required"`
	Text         string  `json:"text" validate:"required"`
	CreatorID    *string `json:"creator_id" validate:"omitempty,uuid"`
	VoiceActorID *string `json:"voice_actor_id" validate:"omitempty,uuid"`
}

func CreateScript(c *fiber.Ctx) error {
	var req ScriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	script, err := services.CreateScript(middleware.Actor(c), req.Title, req.Text,
		parseOptionalUUID(req.CreatorID), parseOptionalUUID(req.VoiceActorID))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(script)
}

// ListWorkItems serves both work-item shapes behind one filterable
// listing: kind=scripts (default) or kind=registry.
func ListWorkItems(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	kind := c.Query("kind", "scripts")
	var query, countQuery *gorm.DB
	switch kind {
	case "scripts":
		query = database.DB.Model(&models.VoiceoverScript{})
		countQuery = database.DB.Model(&models.VoiceoverScript{})
		if c.Query("include_archived") != "true" {
			query = query.Where("archived = false")
			countQuery = countQuery.Where("archived = false")
		}
		if payeeID := c.Query("payee_id"); payeeID != "" {
			query = query.Where("voice_actor_id = ? OR creator_id = ?", payeeID, payeeID)
			countQuery = countQuery.Where("voice_actor_id = ? OR creator_id = ?", payeeID, payeeID)
		}
	case "registry":
		query = database.DB.Model(&models.ContentRegistryEntry{})
		countQuery = database.DB.Model(&models.ContentRegistryEntry{})
		if payeeID := c.Query("payee_id"); payeeID != "" {
			clause := "voice_actor_id = ? OR streamer_id = ? OR editor_id = ?"
			query = query.Where(clause, payeeID, payeeID, payeeID)
			countQuery = countQuery.Where(clause, payeeID, payeeID, payeeID)
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be scripts or registry"})
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", fromDate)
			countQuery = countQuery.Where("created_at >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at <= ?", toDate.Add(24*time.Hour))
			countQuery = countQuery.Where("created_at <= ?", toDate.Add(24*time.Hour))
		}
	}

	var total int64
	countQuery.Count(&total)

	var items interface{}
	if kind == "scripts" {
		var scripts []models.VoiceoverScript
		query.Order("created_at desc").Offset(offset).Limit(limit).Find(&scripts)
		items = scripts
	} else {
		var entries []models.ContentRegistryEntry
		query.Order("created_at desc").Offset(offset).Limit(limit).Find(&entries)
		items = entries
	}

	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type VoiceLinkRequest struct {
	VoiceLink string `json:"voice_link" validate:"required,url"`
}

func AttachVoiceLink(c *fiber.Ctx) error {
	scriptID, err := uuid.Parse(c.Params("scriptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script id"})
	}
	var req VoiceLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	script, err := services.AttachVoiceLink(middleware.Actor(c), scriptID, req.VoiceLink)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(script)
}

func ApproveScriptAsCreator(c *fiber.Ctx) error {
	scriptID, err := uuid.Parse(c.Params("scriptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script id"})
	}
	script, err := services.ApproveScriptAsCreator(middleware.Actor(c), scriptID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(script)
}

type PriceApprovalRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

func ApproveScriptWithPrice(c *fiber.Ctx) error {
	scriptID, err := uuid.Parse(c.Params("scriptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script id"})
	}
	var req PriceApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	script, err := services.ApproveScriptWithPrice(middleware.Actor(c), scriptID, req.Price)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(script)
}

func MarkScriptPaid(c *fiber.Ctx) error {
	scriptID, err := uuid.Parse(c.Params("scriptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script id"})
	}
	script, record, err := services.MarkScriptPaid(middleware.Actor(c), scriptID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"work_item": script, "record": record})
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func RejectScript(c *fiber.Ctx) error {
	scriptID, err := uuid.Parse(c.Params("scriptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script id"})
	}
	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	script, err := services.RejectScript(middleware.Actor(c), scriptID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(script)
}

func ArchiveScript(c *fiber.Ctx) error {
	scriptID, err := uuid.Parse(c.Params("scriptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script id"})
	}
	script, err := services.ArchiveScript(middleware.Actor(c), scriptID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(script)
}

type RegistryEntryRequest struct {
	Title        string  `json:"title" validate:"required"`
	VoiceActorID *string `json:"voice_actor_id" validate:"omitempty,uuid"`
	StreamerID   *string `json:"streamer_id" validate:"omitempty,uuid"`
	EditorID     *string `json:"editor_id" validate:"omitempty,uuid"`
}

func CreateRegistryEntry(c *fiber.Ctx) error {
	var req RegistryEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := services.CreateRegistryEntry(middleware.Actor(c), req.Title,
		parseOptionalUUID(req.VoiceActorID), parseOptionalUUID(req.StreamerID), parseOptionalUUID(req.EditorID))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

type EntryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func AdvanceEntryStatus(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}
	var req EntryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := services.AdvanceEntryStatus(middleware.Actor(c), entryID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

type EntryPriceRequest struct {
	Liability string  `json:"liability" validate:"required,oneof=voice edit"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

func SetEntryPrice(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}
	var req EntryPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := services.SetEntryPrice(middleware.Actor(c), entryID,
		services.Liability(req.Liability), req.Price)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

type EntryPayRequest struct {
	Liability string `json:"liability" validate:"required,oneof=voice edit"`
}

func MarkEntryLiabilityPaid(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}
	var req EntryPayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, record, err := services.MarkEntryLiabilityPaid(middleware.Actor(c), entryID,
		services.Liability(req.Liability))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"work_item": entry, "record": record})
}
