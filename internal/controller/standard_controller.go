package controller

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	legalmoves "github.com/benbeisheim/legalmoves-backend"
	"github.com/benbeisheim/legalmoves-backend/internal/model"
	"github.com/benbeisheim/legalmoves-backend/internal/service"
)

type StandardController struct {
	moveService *service.MoveService
}

func NewStandardController(moveService *service.MoveService) *StandardController {
	return &StandardController{moveService: moveService}
}

// Register mounts the HTTP routes on router.
func (sc *StandardController) Register(router fiber.Router) {
	router.Get("/", sc.GetReadme)
	router.Get("/healthz", sc.GetHealth)
	router.Get("/standard/:fen", sc.GetLegalMoves)
}

// GetLegalMoves answers GET /standard/:fen. The segment is percent-decoded and '+'
// is read as a space.
func (sc *StandardController) GetLegalMoves(c *fiber.Ctx) error {
	fen, err := decodeFEN(c.Params("fen"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to decode URL",
		})
	}

	records, err := sc.moveService.LegalMoves(fen)
	if err != nil {
		var fenErr *model.FenError
		if errors.As(err, &fenErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid FEN",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate moves",
		})
	}

	return c.JSON(records)
}

func (sc *StandardController) GetReadme(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	return c.SendString(legalmoves.README)
}

func (sc *StandardController) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

var errInvalidEncoding = errors.New("path segment is not valid UTF-8")

func decodeFEN(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(decoded) {
		return "", errInvalidEncoding
	}
	return strings.ReplaceAll(decoded, "+", " "), nil
}
