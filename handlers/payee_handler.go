package handlers

import (
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StreamerRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Channel *string `json:"channel"`
	Contact *string `json:"contact"`
	UserID  *string `json:"user_id"`
}

func CreateStreamer(c *fiber.Ctx) error {
	var req StreamerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	streamer := models.Streamer{
		Name:    req.Name,
		Channel: req.Channel,
		Contact: req.Contact,
		UserID:  parseOptionalUUID(req.UserID),
	}
	if err := database.DB.Create(&streamer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create streamer"})
	}
	return c.Status(fiber.StatusCreated).JSON(streamer)
}

func ListStreamers(c *fiber.Ctx) error {
	var streamers []models.Streamer
	database.DB.Where("is_active = true").Order("name").Find(&streamers)
	return c.JSON(streamers)
}

type VoiceActorRequest struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Contact       *string  `json:"contact"`
	RatePerScript *float64 `json:"rate_per_script" validate:"omitempty,gt=0"`
	UserID        *string  `json:"user_id"`
}

func CreateVoiceActor(c *fiber.Ctx) error {
	var req VoiceActorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actor := models.VoiceActor{
		Name:          req.Name,
		Contact:       req.Contact,
		RatePerScript: req.RatePerScript,
		UserID:        parseOptionalUUID(req.UserID),
	}
	if err := database.DB.Create(&actor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create voice actor"})
	}
	return c.Status(fiber.StatusCreated).JSON(actor)
}

func ListVoiceActors(c *fiber.Ctx) error {
	var actors []models.VoiceActor
	database.DB.Where("is_active = true").Order("name").Find(&actors)
	return c.JSON(actors)
}

type TeamMemberRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Position *string `json:"position"`
	Contact  *string `json:"contact"`
	IsEditor bool    `json:"is_editor"`
	UserID   *string `json:"user_id"`
}

func CreateTeamMember(c *fiber.Ctx) error {
	var req TeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	member := models.TeamMember{
		Name:     req.Name,
		Position: req.Position,
		Contact:  req.Contact,
		IsEditor: req.IsEditor,
		UserID:   parseOptionalUUID(req.UserID),
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create team member"})
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func ListTeamMembers(c *fiber.Ctx) error {
	var members []models.TeamMember
	database.DB.Where("is_active = true").Order("name").Find(&members)
	return c.JSON(members)
}

type ContentCreatorRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Niche   *string `json:"niche"`
	Contact *string `json:"contact"`
	UserID  *string `json:"user_id"`
}

func CreateContentCreator(c *fiber.Ctx) error {
	var req ContentCreatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	creator := models.ContentCreator{
		Name:    req.Name,
		Niche:   req.Niche,
		Contact: req.Contact,
		UserID:  parseOptionalUUID(req.UserID),
	}
	if err := database.DB.Create(&creator).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create content creator"})
	}
	return c.Status(fiber.StatusCreated).JSON(creator)
}

func ListContentCreators(c *fiber.Ctx) error {
	var creators []models.ContentCreator
	database.DB.Where("is_active = true").Order("name").Find(&creators)
	return c.JSON(creators)
}

// DeactivatePayee soft-hides a payee of any kind. Rows are never deleted;
// their ledger history must survive.
func DeactivatePayee(c *fiber.Ctx) error {
	kind := models.PayeeKind(c.Params("kind"))
	payeeID, err := uuid.Parse(c.Params("payeeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payee id"})
	}

	var model interface{}
	switch kind {
	case models.PayeeStreamer:
		model = &models.Streamer{}
	case models.PayeeVoiceActor:
		model = &models.VoiceActor{}
	case models.PayeeTeamMember:
		model = &models.TeamMember{}
	case models.PayeeContentCreator:
		model = &models.ContentCreator{}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payee kind"})
	}

	result := database.DB.Model(model).Where("id = ?", payeeID).Update("is_active", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate payee"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payee not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}
