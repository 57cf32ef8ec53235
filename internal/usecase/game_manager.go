package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/tictactoe"
)

const MinPlayers = 2

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs games and keeps a checkpoint of every unfinished game in the repository.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	maxPlayers int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, maxPlayers int) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		gameRepo:   gameRepo,
		maxPlayers: maxPlayers,
	}
}

func (that *GameManager) MaxPlayers() int {
	return that.maxPlayers
}

// NewGame - creates a game on an empty size x size board, players move in the order of symbols.
func (that *GameManager) NewGame(ctx context.Context, size int, symbols []rune) (*entity.Game, error) {
	players, err := that.newPlayers(symbols)
	if err != nil {
		return nil, fmt.Errorf("invalid players: %w", err)
	}

	board, err := entity.NewBoard(size, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), board, players)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "size", size, "players", len(players))

	return game, nil
}

// Resume - loads an unfinished game. The stored status is not trusted, it is evaluated again from the board.
func (that *GameManager) Resume(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.Board == nil || len(game.Players) == 0 {
		return nil, fmt.Errorf("%w: game %s has no board or players", apperror.ErrGameNotStarted, id)
	}

	symbols := make([]rune, 0, len(game.Players))
	for _, player := range game.Players {
		symbols = append(symbols, player.Symbol)
	}

	if _, err = that.newPlayers(symbols); err != nil {
		return nil, fmt.Errorf("broken game %s: %w", id, err)
	}

	if _, err = game.CurrentPlayer(); err != nil {
		return nil, fmt.Errorf("broken game %s: %w", id, err)
	}

	game.Status = tictactoe.EvaluateStatus(game.Board)
	if game.IsFinished() {
		that.cleanupGame(ctx, game)

		return nil, apperror.ErrGameFinished
	}

	that.logger.Info("game resumed", "gameID", game.ID)

	return game, nil
}

// MakeTurn - places the current player's symbol on the 1-based cell.
func (that *GameManager) MakeTurn(ctx context.Context, game *entity.Game, cell int) error {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	player, err := game.CurrentPlayer()
	if err != nil {
		return fmt.Errorf("failed to get current player: %w", err)
	}

	if err = tictactoe.MakeTurn(game, player.Symbol, cell); err != nil {
		return fmt.Errorf("failed make turn: %w", err)
	}

	log.Debug("turn made", "player", string(player.Symbol), "cell", cell)

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status.String())
		that.cleanupGame(ctx, game)

		return nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) newPlayers(symbols []rune) ([]entity.Player, error) {
	if len(symbols) < MinPlayers || len(symbols) > that.maxPlayers {
		return nil, fmt.Errorf("%w: %d, must be between %d and %d", apperror.ErrInvalidPlayerCount, len(symbols), MinPlayers, that.maxPlayers)
	}

	players := make([]entity.Player, 0, len(symbols))
	taken := make(map[rune]struct{}, len(symbols))

	for _, symbol := range symbols {
		if !entity.IsValidSymbol(symbol) {
			return nil, fmt.Errorf("%w: %q", entity.ErrInvalidSymbol, symbol)
		}

		if _, ok := taken[symbol]; ok {
			return nil, fmt.Errorf("%w: %q", apperror.ErrDuplicateSymbol, symbol)
		}

		taken[symbol] = struct{}{}
		players = append(players, entity.Player{Symbol: symbol})
	}

	return players, nil
}

// cleanupGame - removes the checkpoint of a finished game, failures are only logged.
func (that *GameManager) cleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game deleted")
}
