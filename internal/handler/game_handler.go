package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/greenquest/mythbuster-api/internal/dto"
	"github.com/greenquest/mythbuster-api/internal/service"
	"github.com/greenquest/mythbuster-api/internal/utils"
)

// GameHandler manages the game session and turn endpoints.
type GameHandler struct {
	service service.GameService
	logger  zerolog.Logger
}

// NewGameHandler builds a game handler instance.
func NewGameHandler(service service.GameService, logger zerolog.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  logger.With().Str("component", "game_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *GameHandler) Register(router fiber.Router) {
	router.Post("/session", h.startSession)
	router.Delete("/session", h.endSession)
	router.Get("/state", h.state)
	router.Post("/turns", h.submitTurn)
}

func (h *GameHandler) startSession(c *fiber.Ctx) error {
	username, sessionID, err := sessionIdentity(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	response, err := h.service.StartSession(c.Context(), sessionID, username)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session started", response)
}

func (h *GameHandler) endSession(c *fiber.Ctx) error {
	_, sessionID, err := sessionIdentity(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	h.service.EndSession(sessionID)

	return utils.SendSuccess(c, "session ended", nil)
}

func (h *GameHandler) state(c *fiber.Ctx) error {
	_, sessionID, err := sessionIdentity(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	response, err := h.service.State(c.Context(), sessionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session state", response)
}

func (h *GameHandler) submitTurn(c *fiber.Ctx) error {
	_, sessionID, err := sessionIdentity(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.TurnRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.SubmitTurn(c.Context(), sessionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "turn evaluated", response)
}

func (h *GameHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "game session not found")
	case errors.Is(err, service.ErrNoActiveMyth):
		return utils.SendError(c, fiber.StatusConflict, "no active myth to rebut")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
