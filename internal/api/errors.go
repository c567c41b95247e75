package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/strataseven/sevens-client/internal/apperror"
)

// mapError classifies an error payload onto the apperror taxonomy by its
// status code and human-readable detail string. The detail is preserved
// verbatim in the wrap so callers can surface it unchanged.
func (that *Client) mapError(status int, raw []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Detail == "" {
		payload.Detail = strings.TrimSpace(string(raw))
	}

	detail := payload.Detail

	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, detail)
	}

	if status != http.StatusBadRequest {
		return fmt.Errorf("%w: unexpected status %d: %s", apperror.ErrNetwork, status, detail)
	}

	lower := strings.ToLower(detail)

	switch {
	case strings.Contains(lower, "not your turn"):
		return fmt.Errorf("%w: %s", apperror.ErrNotYourTurn, detail)
	case strings.Contains(lower, "cannot pass"):
		return fmt.Errorf("%w: %s", apperror.ErrHasPlayableCards, detail)
	case strings.Contains(lower, "already in progress"), strings.Contains(lower, "already started"):
		return fmt.Errorf("%w: %s", apperror.ErrGameInProgress, detail)
	case strings.Contains(lower, "room is full"):
		return fmt.Errorf("%w: %s", apperror.ErrRoomFull, detail)
	case strings.Contains(lower, "name already taken"):
		return fmt.Errorf("%w: %s", apperror.ErrNameTaken, detail)
	case strings.Contains(lower, "not in progress"):
		return fmt.Errorf("%w: %s", apperror.ErrGameIsNotStarted, detail)
	default:
		// Every other rejection of a submitted action is a rules violation.
		return fmt.Errorf("%w: %s", apperror.ErrIllegalMove, detail)
	}
}
