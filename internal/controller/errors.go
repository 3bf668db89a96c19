package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/duckboard-backend/internal/duckchess"
	"github.com/benbeisheim/duckboard-backend/internal/model"
	"github.com/benbeisheim/duckboard-backend/internal/service"
)

var errBadBody = errors.New("invalid request body")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadBody):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionClosed):
		return fiber.StatusGone
	case errors.Is(err, model.ErrMalformedPosition),
		errors.Is(err, model.ErrMalformedMove),
		errors.Is(err, model.ErrMalformedSquare),
		errors.Is(err, model.ErrMalformedValue),
		errors.Is(err, service.ErrUnknownPointer):
		return fiber.StatusBadRequest
	case errors.Is(err, duckchess.ErrIllegalMove),
		errors.Is(err, duckchess.ErrIllegalDuck),
		errors.Is(err, duckchess.ErrNoPiece),
		errors.Is(err, duckchess.ErrNotYourTurn),
		errors.Is(err, duckchess.ErrWrongPhase),
		errors.Is(err, duckchess.ErrGameOver):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
