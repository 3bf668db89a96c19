package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/duckboard-backend/internal/middleware"
	"github.com/benbeisheim/duckboard-backend/internal/service"
)

type BoardController struct {
	boardService *service.BoardService
	log          zerolog.Logger
}

func NewBoardController(boardService *service.BoardService, log zerolog.Logger) *BoardController {
	return &BoardController{boardService: boardService, log: log}
}

type positionRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	Notation string `json:"notation"`
}

type orientationRequest struct {
	Orientation string `json:"orientation"`
}

type movableRequest struct {
	Movable string `json:"movable"`
}

// Register mounts the board routes on r.
func (bc *BoardController) Register(r fiber.Router) {
	r.Post("/", bc.CreateBoard)
	r.Get("/:boardId", bc.GetBoard)
	r.Post("/:boardId/position", bc.SetPosition)
	r.Post("/:boardId/move", bc.PerformMove)
	r.Post("/:boardId/takeback", bc.Takeback)
	r.Post("/:boardId/orientation", bc.SetOrientation)
	r.Post("/:boardId/movable", bc.SetMovable)
	r.Delete("/:boardId", bc.CloseBoard)
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	var req service.CreateRequest
	if err := bc.parse(c, &req); err != nil {
		return sendError(c, err)
	}

	state, err := bc.boardService.CreateBoard(req)
	if err != nil {
		return sendError(c, err)
	}
	bc.log.Info().
		Str("board", state.ID).
		Str("client", clientID(c)).
		Msg("board created")
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (bc *BoardController) GetBoard(c *fiber.Ctx) error {
	state, err := bc.boardService.GetBoard(c.Params("boardId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) SetPosition(c *fiber.Ctx) error {
	var req positionRequest
	if err := bc.parse(c, &req); err != nil {
		return sendError(c, err)
	}
	state, err := bc.boardService.SetPosition(c.Params("boardId"), req.FEN)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) PerformMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := bc.parse(c, &req); err != nil {
		return sendError(c, err)
	}
	state, err := bc.boardService.PerformMove(c.Params("boardId"), req.Notation)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) Takeback(c *fiber.Ctx) error {
	undone, state, err := bc.boardService.Takeback(c.Params("boardId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"undone": undone,
		"board":  state,
	})
}

// SetOrientation flips the board when no orientation is given.
func (bc *BoardController) SetOrientation(c *fiber.Ctx) error {
	var req orientationRequest
	if err := bc.parse(c, &req); err != nil {
		return sendError(c, err)
	}
	state, err := bc.boardService.SetOrientation(c.Params("boardId"), req.Orientation)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) SetMovable(c *fiber.Ctx) error {
	var req movableRequest
	if err := bc.parse(c, &req); err != nil {
		return sendError(c, err)
	}
	state, err := bc.boardService.SetMovable(c.Params("boardId"), req.Movable)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) CloseBoard(c *fiber.Ctx) error {
	id := c.Params("boardId")
	if err := bc.boardService.CloseBoard(id); err != nil {
		return sendError(c, err)
	}
	bc.log.Info().Str("board", id).Str("client", clientID(c)).Msg("board closed")
	return c.SendStatus(fiber.StatusNoContent)
}

// parse decodes a JSON body; an empty body leaves v untouched.
func (bc *BoardController) parse(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return errBadBody
	}
	return nil
}

func clientID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.ClientIDKey).(string)
	return id
}
