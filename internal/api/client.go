// Package api is the typed request/response client for the room server. Every
// response is decoded and validated once at this boundary, so the rest of the
// client never sees loosely-typed wire payloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/strataseven/sevens-client/internal/apperror"
	"github.com/strataseven/sevens-client/internal/entity"
)

type Client struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client
}

func New(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger.With("component", "api"),
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type gameStateResponse struct {
	Success   bool              `json:"success"`
	GameState *entity.GameState `json:"game_state"`
}

type startResponse struct {
	Message   string            `json:"message"`
	GameState *entity.GameState `json:"game_state"`
}

type playableResponse struct {
	PlayableCards []entity.Card `json:"playable_cards"`
}

type playRequest struct {
	RoomCode string      `json:"room_code"`
	PlayerID string      `json:"player_id"`
	Card     entity.Card `json:"card"`
}

type passRequest struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
}

type createRoomRequest struct {
	HostName string `json:"host_name"`
}

type joinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// GetRoom fetches the room snapshot, including the game state once playing.
func (that *Client) GetRoom(ctx context.Context, roomCode string) (*entity.Room, error) {
	var room entity.Room
	if err := that.do(ctx, http.MethodGet, "/api/rooms/"+roomCode, nil, &room); err != nil {
		return nil, err
	}

	if room.GameState != nil {
		if err := room.GameState.Validate(); err != nil {
			return nil, fmt.Errorf("invalid game state in room snapshot: %w", err)
		}
	}

	return &room, nil
}

// PlayCard submits a play. Legality is checked server-side; the local playable
// cache is advisory only and never consulted here.
func (that *Client) PlayCard(ctx context.Context, roomCode, playerID string, card entity.Card) (*entity.GameState, error) {
	request := playRequest{RoomCode: roomCode, PlayerID: playerID, Card: card}

	var response gameStateResponse
	if err := that.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/play", request, &response); err != nil {
		return nil, err
	}

	return validated(response.GameState)
}

// PassTurn submits a pass. Passing is only legal with zero playable cards,
// which the server verifies.
func (that *Client) PassTurn(ctx context.Context, roomCode, playerID string) (*entity.GameState, error) {
	request := passRequest{RoomCode: roomCode, PlayerID: playerID}

	var response gameStateResponse
	if err := that.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/pass", request, &response); err != nil {
		return nil, err
	}

	return validated(response.GameState)
}

// PlayableCards fetches the authoritative legal-move set for a player. On
// failure callers keep their previous set so highlighting does not flicker
// off during a transient blip.
func (that *Client) PlayableCards(ctx context.Context, roomCode, playerID string) ([]entity.Card, error) {
	var response playableResponse
	if err := that.do(ctx, http.MethodGet, "/api/rooms/"+roomCode+"/playable/"+playerID, nil, &response); err != nil {
		return nil, err
	}

	return response.PlayableCards, nil
}

// CreateRoom opens a new room and returns the host's server-assigned identity.
func (that *Client) CreateRoom(ctx context.Context, hostName string) (*entity.RoomJoin, error) {
	request := createRoomRequest{HostName: hostName}

	var join entity.RoomJoin
	if err := that.do(ctx, http.MethodPost, "/api/rooms/create", request, &join); err != nil {
		return nil, err
	}

	return &join, nil
}

func (that *Client) JoinRoom(ctx context.Context, roomCode, playerName string) (*entity.RoomJoin, error) {
	request := joinRoomRequest{RoomCode: roomCode, PlayerName: playerName}

	var join entity.RoomJoin
	if err := that.do(ctx, http.MethodPost, "/api/rooms/join", request, &join); err != nil {
		return nil, err
	}

	return &join, nil
}

// StartGame deals the deck and transitions the room to playing.
func (that *Client) StartGame(ctx context.Context, roomCode string) (*entity.GameState, error) {
	var response startResponse
	if err := that.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/start", nil, &response); err != nil {
		return nil, err
	}

	return validated(response.GameState)
}

func (that *Client) Health(ctx context.Context) error {
	var response map[string]any
	if err := that.do(ctx, http.MethodGet, "/api/health", nil, &response); err != nil {
		return err
	}

	return nil
}

func validated(state *entity.GameState) (*entity.GameState, error) {
	if state == nil {
		return nil, entity.ErrNoGameState
	}

	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game state in response: %w", err)
	}

	return state, nil
}

func (that *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := that.http.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrNetwork, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", apperror.ErrNetwork, err)
	}

	if response.StatusCode != http.StatusOK {
		return that.mapError(response.StatusCode, raw)
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
