package arena

import (
	"errors"
	"net/http"
)

var (
	ErrLoginTaken    = errors.New("login déjà utilisé")
	ErrUnknownPlayer = errors.New("joueur inconnu")
	ErrPlayerDead    = errors.New("joueur éliminé")
	ErrGameOver      = errors.New("partie terminée")
	ErrWrongTurn     = errors.New("mauvais tour")
	ErrAlreadyMoved  = errors.New("déjà joué ce tour")
	ErrOutOfBounds   = errors.New("hors limites")
	ErrNotAdjacent   = errors.New("déplacement non adjacent")
	ErrObstacle      = errors.New("obstacle")
	ErrOccupied      = errors.New("case occupée")
	ErrWorldFull     = errors.New("plus de place sur la carte")
)

// statusFor 规则错误对应的 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, ErrPlayerDead):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyMoved):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrOutOfBounds), errors.Is(err, ErrNotAdjacent):
		return http.StatusBadRequest
	case errors.Is(err, ErrLoginTaken),
		errors.Is(err, ErrGameOver),
		errors.Is(err, ErrWrongTurn),
		errors.Is(err, ErrObstacle),
		errors.Is(err, ErrOccupied):
		return http.StatusConflict
	case errors.Is(err, ErrWorldFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
