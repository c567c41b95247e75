package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/strataseven/sevens-client/internal/api"
	"github.com/strataseven/sevens-client/internal/config"
	"github.com/strataseven/sevens-client/internal/pkg"
	"github.com/strataseven/sevens-client/internal/realtime"
	"github.com/strataseven/sevens-client/internal/repository"
	"github.com/strataseven/sevens-client/internal/repository/storage"
)

var ErrUnknownRealtimeDriver = errors.New("unknown realtime driver")

const (
	choiceCreate = "Create a room"
	choiceJoin   = "Join a room"
	choiceRejoin = "Rejoin last room"
	choiceQuit   = "Quit"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	// One id per client run, to tell instances apart in shared logs.
	logger = logger.With("client_id", pkg.GenerateClientID())
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sessionStorage, err := storage.NewSQLiteStorage(conf.SessionStoragePath)
	if err != nil {
		return fmt.Errorf("could not open session storage: %w", err)
	}

	defer func() {
		if err = sessionStorage.Close(); err != nil {
			log.Error("could not close session storage", "error", err)
		}
	}()

	if err = sessionStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init session storage: %w", err)
	}

	sessionRepo := repository.NewSessionRepository(sessionStorage)
	client := api.New(logger, conf.Server.BaseURL, conf.Server.RequestTimeout())

	channel, err := newChannel(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("could not open realtime channel: %w", err)
	}

	defer func() {
		if err = channel.Close(); err != nil {
			log.Error("could not close realtime channel", "error", err)
		}
	}()

	if err = client.Health(ctx); err != nil {
		log.Error("server health check failed", "error", err)
		pterm.Warning.Println("Server is not reachable; check server.base-url in config.yml")
	}

	app := &application{
		logger:      logger,
		client:      client,
		channel:     channel,
		sessionRepo: sessionRepo,
		conf:        conf,
	}

	return app.run(ctx)
}

func newChannel(ctx context.Context, logger *slog.Logger, conf *config.Config) (realtime.Channel, error) {
	switch conf.Realtime.Driver {
	case "redis":
		return realtime.NewRedisChannel(ctx, logger, conf.Realtime.Redis.GetRedisAddr())
	case "nats":
		return realtime.NewNATSChannel(logger, conf.Realtime.NATS.URL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRealtimeDriver, conf.Realtime.Driver)
	}
}

type application struct {
	logger      *slog.Logger
	client      *api.Client
	channel     realtime.Channel
	sessionRepo repository.SessionRepository
	conf        *config.Config
}

// run shows the entry menu until the user quits or the context is canceled.
func (that *application) run(ctx context.Context) error {
	for ctx.Err() == nil {
		options := []string{choiceCreate, choiceJoin}

		last, err := that.sessionRepo.Last(ctx)
		if err == nil {
			options = append(options, choiceRejoin)
		}

		options = append(options, choiceQuit)

		choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Sevens").WithOptions(options).Show()
		if err != nil {
			return fmt.Errorf("failed to read menu choice: %w", err)
		}

		switch choice {
		case choiceCreate:
			err = that.createRoom(ctx)
		case choiceJoin:
			err = that.joinRoom(ctx)
		case choiceRejoin:
			err = that.enterRoom(ctx, last.RoomCode, last.PlayerID, last.PlayerName)
		case choiceQuit:
			return nil
		}

		if err != nil && ctx.Err() == nil {
			pterm.Error.Println(err.Error())
		}
	}

	return nil
}

func (that *application) createRoom(ctx context.Context) error {
	name, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").Show()
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	join, err := that.client.CreateRoom(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	pterm.Success.Printfln("Room created: %s (share this code)", join.RoomCode)

	return that.enterRoom(ctx, join.RoomCode, join.PlayerID, name)
}

func (that *application) joinRoom(ctx context.Context) error {
	code, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter room code").Show()
	if err != nil {
		return fmt.Errorf("failed to read room code: %w", err)
	}

	name, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").Show()
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	join, err := that.client.JoinRoom(ctx, code, name)
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	return that.enterRoom(ctx, join.RoomCode, join.PlayerID, name)
}

// enterRoom persists the session, waits out the lobby and then runs the game
// session until it terminates.
func (that *application) enterRoom(ctx context.Context, roomCode, playerID, playerName string) error {
	session := &repository.Session{
		PlayerID:   playerID,
		PlayerName: playerName,
		RoomCode:   roomCode,
		SavedAt:    time.Now(),
	}
	if err := that.sessionRepo.Save(ctx, session); err != nil {
		that.logger.Error("could not save session", "error", err)
	}

	if err := that.waitForStart(ctx, roomCode, playerID); err != nil {
		return err
	}

	return that.playGame(ctx, roomCode, playerID)
}

// waitForStart polls the room until it is playing. The host gets a start
// prompt once at least two players are seated.
func (that *application) waitForStart(ctx context.Context, roomCode, playerID string) error {
	spinner, _ := pterm.DefaultSpinner.Start("Waiting for players...")
	defer func() { _ = spinner.Stop() }()

	for ctx.Err() == nil {
		room, err := that.client.GetRoom(ctx, roomCode)
		if err != nil {
			return fmt.Errorf("failed to fetch room: %w", err)
		}

		if room.IsPlaying() || room.GameState != nil {
			return nil
		}

		spinner.UpdateText(fmt.Sprintf("Waiting for players... %d seated", len(room.Players)))

		isHost := false
		for _, player := range room.Players {
			if player.ID == playerID {
				isHost = player.IsHost
			}
		}

		if len(room.Players) >= 2 && isHost {
			_ = spinner.Stop()

			start, err := pterm.DefaultInteractiveConfirm.WithDefaultText("Start the game now?").Show()
			if err == nil && start {
				if _, err = that.client.StartGame(ctx, roomCode); err != nil {
					return fmt.Errorf("failed to start game: %w", err)
				}
				return nil
			}

			spinner, _ = pterm.DefaultSpinner.Start("Waiting for players...")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(that.conf.PollInterval()):
		}
	}

	return nil
}
