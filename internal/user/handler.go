package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/create_user", h.createUser)
	app.Post("/get_users", h.getUsers)
	app.Post("/delete_user", h.deleteUser)
	app.Post("/update_user", h.updateUser)
}

type createRequest struct {
	FullName  string `json:"full_name"`
	MobNum    string `json:"mob_num"`
	PanNum    string `json:"pan_num"`
	ManagerID string `json:"manager_id"`
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if _, err := h.service.Create(c.UserContext(), CreateInput{
		FullName:  payload.FullName,
		MobNum:    payload.MobNum,
		PanNum:    payload.PanNum,
		ManagerID: payload.ManagerID,
	}); err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

type queryRequest struct {
	UserID    string `json:"user_id"`
	MobNum    string `json:"mob_num"`
	ManagerID string `json:"manager_id"`
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	payload := new(queryRequest)
	// A missing or malformed body means "no filter": return every record.
	_ = c.BodyParser(payload)

	users, err := h.service.Query(c.UserContext(), QueryInput{
		UserID:    payload.UserID,
		MobNum:    payload.MobNum,
		ManagerID: payload.ManagerID,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

type deleteRequest struct {
	UserID string `json:"user_id"`
	MobNum string `json:"mob_num"`
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	payload := new(deleteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.Delete(c.UserContext(), payload.UserID, payload.MobNum); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

type updateRequest struct {
	UserIDs    []string   `json:"user_ids"`
	UpdateData UpdateData `json:"update_data"`
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.BulkUpdate(c.UserContext(), payload.UserIDs, payload.UpdateData); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "Users updated successfully"})
}

// badRequestErrors are the validation and policy failures that map to a 400
// with the error text as the response body.
var badRequestErrors = []error{
	ErrFullNameRequired,
	ErrMobileRequired,
	ErrPanRequired,
	ErrInvalidMobile,
	ErrInvalidPan,
	ErrInvalidManager,
	ErrLookupFieldMissing,
	ErrUserIDsRequired,
	ErrUpdateDataRequired,
	ErrManagerOnlyBulk,
}

func (h *Handler) errorResponse(c *fiber.Ctx, err error) error {
	var batch *BatchError
	if errors.As(err, &batch) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": batch.Errors})
	}

	if errors.Is(err, ErrNoUserWithID) || errors.Is(err, ErrNoUserWithMobile) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	for _, bad := range badRequestErrors {
		if errors.Is(err, bad) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	// Anything else is a store-level failure surfacing through the service.
	h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
