package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/config"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/repository"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one terminal game.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if err := validateConfig(conf); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, gameRepo, conf.MaxPlayers)

	output := terminal.NewOutput(os.Stdout)
	input := terminal.NewInput(os.Stdin, output)
	driver := terminal.NewDriver(logger, gameManager, input, output, conf.BoardSize, conf.ResumeGameID)

	gameErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting game", "boardSize", conf.BoardSize, "maxPlayers", conf.MaxPlayers)
		gameErrCh <- driver.Run(ctx)
	}()

	select {
	case err = <-gameErrCh:
		if errors.Is(err, terminal.ErrInputClosed) {
			log.Info("Input closed, shutting down")
			return nil
		}

		if err != nil {
			return fmt.Errorf("game error: %w", err)
		}

		log.Info("Game over")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func validateConfig(conf *config.Config) error {
	if _, err := entity.NewBoard(conf.BoardSize, nil); err != nil {
		return err
	}

	if conf.MaxPlayers < usecase.MinPlayers {
		return fmt.Errorf("%w: max-players %d", apperror.ErrInvalidPlayerCount, conf.MaxPlayers)
	}

	return nil
}

// newGameRepository - redis backed checkpoints when enabled, in-memory otherwise.
func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryGameRepository(), func() error { return nil }, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage, conf.Redis.TTL), redisStorage.Close, nil
}
