package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/strataseven/sevens-client/internal/action"
	"github.com/strataseven/sevens-client/internal/apperror"
	"github.com/strataseven/sevens-client/internal/entity"
	"github.com/strataseven/sevens-client/internal/gamesync"
	"github.com/strataseven/sevens-client/internal/render"
)

const choicePass = "Pass"

// playGame runs one game session: the coordinator keeps the local state
// fresh, the gate serializes this player's submissions, and the loop below
// renders and prompts until the game terminates.
func (that *application) playGame(ctx context.Context, roomCode, playerID string) error {
	updates := make(chan struct{}, 1)

	coordinator := gamesync.New(
		that.logger,
		that.client,
		that.channel,
		roomCode,
		playerID,
		that.conf.PollInterval(),
		that.conf.BotPollInterval(),
		func(gamesync.Snapshot) {
			select {
			case updates <- struct{}{}:
			default:
			}
		},
	)

	coordinator.Start(ctx)
	defer coordinator.Stop()

	gate := action.New(that.logger, that.client, coordinator, that.channel, roomCode, playerID)

	for ctx.Err() == nil {
		snapshot := coordinator.Snapshot()
		render.Snapshot(snapshot, playerID)

		if snapshot.State != nil && snapshot.State.IsFinished() {
			if err := that.sessionRepo.Clear(ctx); err != nil {
				that.logger.Error("could not clear session", "error", err)
			}
			return nil
		}

		if snapshot.State != nil && snapshot.State.IsPlayersTurn(playerID) {
			if err := that.promptAction(ctx, gate, snapshot); err != nil {
				return err
			}
			continue
		}

		// Not our turn: block until a candidate is accepted or we give the
		// render loop a periodic nudge.
		select {
		case <-ctx.Done():
		case <-updates:
		case <-time.After(that.conf.PollInterval()):
		}
	}

	return nil
}

// promptAction offers the playable cards plus a pass option and submits the
// choice through the gate. Local precondition failures and server rejections
// both surface as inline messages; neither mutates the held state.
func (that *application) promptAction(ctx context.Context, gate *action.Gate, snapshot gamesync.Snapshot) error {
	options := make([]string, 0, len(snapshot.PlayableCards)+1)
	cardsByLabel := make(map[string]entity.Card, len(snapshot.PlayableCards))

	cards := make([]entity.Card, len(snapshot.PlayableCards))
	copy(cards, snapshot.PlayableCards)
	entity.SortCards(cards)

	for _, card := range cards {
		label := "Play " + card.String()
		options = append(options, label)
		cardsByLabel[label] = card
	}

	options = append(options, choicePass)

	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Your move").WithOptions(options).Show()
	if err != nil {
		return fmt.Errorf("failed to read move: %w", err)
	}

	if choice == choicePass {
		_, err = gate.PassTurn(ctx)
	} else {
		_, err = gate.PlayCard(ctx, cardsByLabel[choice])
	}

	if err != nil {
		that.reportActionError(err)
	}

	return nil
}

func (that *application) reportActionError(err error) {
	switch {
	case errors.Is(err, apperror.ErrActionInProgress):
		pterm.Warning.Println("Hold on, your previous action is still in flight")
	case errors.Is(err, apperror.ErrNotYourTurn):
		pterm.Warning.Println("It's not your turn")
	case errors.Is(err, apperror.ErrNotPlayable):
		pterm.Warning.Println("That card can't be played right now")
	case errors.Is(err, apperror.ErrNetwork):
		pterm.Error.Println("Network trouble; the game will catch up shortly")
	default:
		// Server rejection: show the authoritative detail verbatim.
		pterm.Error.Println(err.Error())
	}
}
