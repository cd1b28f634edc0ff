package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/legalmoves-backend/internal/model"
)

type MoveService struct {
	log                zerolog.Logger
	includeMoveType    bool
	allowOppositeCheck bool
}

type MoveServiceOption func(*MoveService)

// WithMoveType controls whether serialized moves carry their "type" field.
func WithMoveType(include bool) MoveServiceOption {
	return func(ms *MoveService) { ms.includeMoveType = include }
}

// WithOppositeCheck accepts positions where the side not to move is in check.
func WithOppositeCheck(allow bool) MoveServiceOption {
	return func(ms *MoveService) { ms.allowOppositeCheck = allow }
}

func NewMoveService(log zerolog.Logger, opts ...MoveServiceOption) *MoveService {
	ms := &MoveService{
		log:             log,
		includeMoveType: true,
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// LegalMoves parses fen and returns the serialized legal moves of the side to move.
// Any parse failure is returned as a *model.FenError.
func (ms *MoveService) LegalMoves(fen string) ([]model.Record, error) {
	pos, err := model.ParseFEN(fen, model.AllowOppositeCheck(ms.allowOppositeCheck))
	if err != nil {
		event := ms.log.Debug().Str("fen", fen).Err(err)
		var fenErr *model.FenError
		if errors.As(err, &fenErr) {
			event = event.Str("kind", fenErr.Kind())
		}
		event.Msg("Rejected FEN")
		return nil, err
	}

	records := model.NewRecords(pos.LegalMoves(), ms.includeMoveType)
	ms.log.Info().Str("fen", fen).Int("moves", len(records)).Msg("Returning legal moves for FEN")
	return records, nil
}
