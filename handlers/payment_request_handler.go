package handlers

import (
	"github.com/olehks/content_studio/middleware"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentRequestCreate struct {
	PayeeKind   string  `json:"payee_kind" validate:"omitempty,oneof=streamer voiceActor teamMember contentCreator"`
	PayeeID     *string `json:"payee_id" validate:"omitempty,uuid"`
	Type        string  `json:"type" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
}

// CreatePaymentRequest raises a reimbursement. A payee omits the payee
// fields and the request lands on their own profile; admins fill them in
// to file on someone's behalf.
func CreatePaymentRequest(c *fiber.Ctx) error {
	var req PaymentRequestCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actor := middleware.Actor(c)

	var payee models.PayeeRef
	if req.PayeeID != nil && req.PayeeKind != "" {
		payee = models.PayeeRef{Kind: models.PayeeKind(req.PayeeKind), ID: uuid.MustParse(*req.PayeeID)}
	} else {
		resolved, err := services.FindPayeeForUser(actor.ActorID)
		if err != nil {
			return respondError(c, err)
		}
		payee = resolved
	}

	request, err := services.CreatePaymentRequest(actor, payee, req.Type, req.Amount, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func ListMyPaymentRequests(c *fiber.Ctx) error {
	requests, err := services.ListOwnPaymentRequests(middleware.Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

func AdminListPaymentRequests(c *fiber.Ctx) error {
	requests, err := services.ListPaymentRequests(c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

type PaymentRequestTransition struct {
	Action          string `json:"action" validate:"required,oneof=approve reject markPaid"`
	AdminNotes      string `json:"admin_notes"`
	RejectionReason string `json:"rejection_reason"`
	Confirm         bool   `json:"confirm"`
}

// TransitionPaymentRequest dispatches the admin lifecycle actions.
func TransitionPaymentRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}
	var req PaymentRequestTransition
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actor := middleware.Actor(c)
	switch req.Action {
	case "approve":
		request, err := services.ApprovePaymentRequest(actor, requestID, req.AdminNotes)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(request)
	case "reject":
		request, err := services.RejectPaymentRequest(actor, requestID, req.RejectionReason)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(request)
	default: // markPaid
		request, record, err := services.MarkPaymentRequestPaid(actor, requestID, req.Confirm)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"request": request, "record": record})
	}
}

func DeletePaymentRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}
	if err := services.DeletePaymentRequest(middleware.Actor(c), requestID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
