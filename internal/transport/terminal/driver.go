package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

type gameManager interface {
	NewGame(ctx context.Context, size int, symbols []rune) (*entity.Game, error)
	Resume(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell int) error
	MaxPlayers() int
}

// Driver plays one game in the terminal: it sets up the players, then loops
// rendering the board and asking the current player for a field until the game ends.
type Driver struct {
	logger    *slog.Logger
	manager   gameManager
	input     *Input
	output    *Output
	boardSize int
	resumeID  string
}

func NewDriver(logger *slog.Logger, manager gameManager, input *Input, output *Output, boardSize int, resumeID string) *Driver {
	return &Driver{
		logger:    logger.With("component", "terminal"),
		manager:   manager,
		input:     input,
		output:    output,
		boardSize: boardSize,
		resumeID:  resumeID,
	}
}

func (that *Driver) Run(ctx context.Context) error {
	game, err := that.startGame(ctx)
	if err != nil {
		return err
	}

	for {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("game interrupted: %w", err)
		}

		that.render(game)

		if game.IsFinished() {
			that.output.PrintStatus(game.Status)
			break
		}

		if err = that.playTurn(ctx, game); err != nil {
			return err
		}
	}

	if _, err = that.input.ReadLine("the game is over. press enter to close this window."); err != nil && !errors.Is(err, ErrInputClosed) {
		return err
	}

	return nil
}

// startGame - resumes the configured game or sets up a new one.
func (that *Driver) startGame(ctx context.Context) (*entity.Game, error) {
	if that.resumeID != "" {
		game, err := that.manager.Resume(ctx, that.resumeID)
		if err == nil {
			return game, nil
		}

		that.logger.Warn("could not resume game", "gameID", that.resumeID, "error", err)
		that.output.Println(fmt.Sprintf("could not resume game %s, starting a new one", that.resumeID))
	}

	symbols, err := that.readPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}

	game, err := that.manager.NewGame(ctx, that.boardSize, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *Driver) readPlayers() ([]rune, error) {
	count, err := that.input.ReadInt("number of players: ", 2, that.manager.MaxPlayers())
	if err != nil {
		return nil, err
	}

	symbols := make([]rune, 0, count)
	for player := 1; player <= count; player++ {
		symbol, err := that.input.ReadSymbol(fmt.Sprintf("symbol for player %d: ", player), symbols)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}

	return symbols, nil
}

// playTurn - asks the current player until the chosen field was empty.
func (that *Driver) playTurn(ctx context.Context, game *entity.Game) error {
	player, err := game.CurrentPlayer()
	if err != nil {
		return fmt.Errorf("failed to get current player: %w", err)
	}

	prompt := fmt.Sprintf("%s, make your move: ", player)

	for {
		cell, err := that.input.ReadInt(prompt, 1, game.Board.FieldCount())
		if err != nil {
			return err
		}

		err = that.manager.MakeTurn(ctx, game, cell)
		if errors.Is(err, apperror.ErrCellOccupied) {
			that.output.Println("that field is not empty!")
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		return nil
	}
}

func (that *Driver) render(game *entity.Game) {
	that.output.Clear()
	that.output.Println("game " + game.ID)
	that.output.PrintTemplate(game.Board.Size())
	that.output.Println("")
	that.output.PrintBoard(game.Board, game.Players)
	that.output.Println("")
}
