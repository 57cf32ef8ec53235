package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/repository"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager() (*GameManager, repository.GameRepository) {
	gameRepo := repository.NewMemoryGameRepository()
	return NewGameManager(newLogger(), gameRepo, 4), gameRepo
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a new game", func(t *testing.T) {
		// Given: a manager with an in-memory repository
		manager, gameRepo := newManager()

		// When: a 4x4 game for three players is created
		game, err := manager.NewGame(ctx, 4, []rune{'X', 'O', 'Z'})
		require.NoError(t, err)

		// Then: the game is empty, X starts and the checkpoint exists
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, 4, game.Board.Size())
		assert.Equal(t, []entity.Player{{Symbol: 'X'}, {Symbol: 'O'}, {Symbol: 'Z'}}, game.Players)
		assert.Equal(t, 0, game.Turn)
		assert.Equal(t, entity.StatusStillPlaying(), game.Status)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.ID, stored.ID)
	})

	t.Run("Rejects duplicate symbols", func(t *testing.T) {
		manager, _ := newManager()

		_, err := manager.NewGame(ctx, 3, []rune{'X', 'O', 'X'})

		require.ErrorIs(t, err, apperror.ErrDuplicateSymbol)
	})

	t.Run("Rejects blank symbols", func(t *testing.T) {
		manager, _ := newManager()

		_, err := manager.NewGame(ctx, 3, []rune{'X', ' '})

		require.ErrorIs(t, err, entity.ErrInvalidSymbol)
	})

	t.Run("Rejects player count out of range", func(t *testing.T) {
		manager, _ := newManager()

		_, err := manager.NewGame(ctx, 3, []rune{'X'})
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerCount)

		_, err = manager.NewGame(ctx, 3, []rune{'A', 'B', 'C', 'D', 'E'})
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerCount)
	})

	t.Run("Rejects invalid board size", func(t *testing.T) {
		manager, _ := newManager()

		_, err := manager.NewGame(ctx, 2, []rune{'X', 'O'})

		require.ErrorIs(t, err, entity.ErrInvalidBoardSize)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		// Given: a repository that cannot save
		gameRepo := &mockGameRepo{}
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		manager := NewGameManager(newLogger(), gameRepo, 4)

		// When: a game is created
		game, err := manager.NewGame(ctx, 3, []rune{'X', 'O'})

		// Then: the repository error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		gameRepo.AssertExpectations(t)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the game after every turn", func(t *testing.T) {
		manager, gameRepo := newManager()
		game, err := manager.NewGame(ctx, 3, []rune{'X', 'O'})
		require.NoError(t, err)

		// When: X plays the center
		require.NoError(t, manager.MakeTurn(ctx, game, 5))

		// Then: the checkpoint holds the move and O is next
		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.Occupied('X'), stored.Board.Field(1, 1))
		assert.Equal(t, 1, stored.Turn)
	})

	t.Run("Occupied cell keeps the turn", func(t *testing.T) {
		manager, _ := newManager()
		game, err := manager.NewGame(ctx, 3, []rune{'X', 'O'})
		require.NoError(t, err)
		require.NoError(t, manager.MakeTurn(ctx, game, 5))

		// When: O picks the same field
		err = manager.MakeTurn(ctx, game, 5)

		// Then: ErrCellOccupied is returned and O may try again
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.NoError(t, manager.MakeTurn(ctx, game, 1))
		assert.Equal(t, entity.Occupied('O'), game.Board.Field(0, 0))
	})

	t.Run("Finished game removes the checkpoint", func(t *testing.T) {
		manager, gameRepo := newManager()
		game, err := manager.NewGame(ctx, 3, []rune{'X', 'O'})
		require.NoError(t, err)

		// When: X completes the first row
		for _, cell := range []int{1, 4, 2, 5, 3} {
			require.NoError(t, manager.MakeTurn(ctx, game, cell))
		}

		// Then: X won and the game is no longer stored
		assert.Equal(t, entity.StatusWon('X'), game.Status)
		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, repository.ErrGameNotFound)

		err = manager.MakeTurn(ctx, game, 9)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Cleanup failure is not returned", func(t *testing.T) {
		// Given: a repository that fails to delete
		gameRepo := &mockGameRepo{}
		gameRepo.On("DeleteByID", mock.Anything, "g1").Return(errRedisDown).Once()
		manager := NewGameManager(newLogger(), gameRepo, 4)

		board, err := entity.NewBoard(3, []entity.Field{
			'X', 'X', 0,
			'O', 'O', 0,
			0, 0, 0,
		})
		require.NoError(t, err)
		game := entity.NewGame("g1", board, []entity.Player{{Symbol: 'X'}, {Symbol: 'O'}})

		// When: X wins
		err = manager.MakeTurn(ctx, game, 3)

		// Then: the win is reported without error
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon('X'), game.Status)
		gameRepo.AssertExpectations(t)
	})
}

func TestGameManager_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads an unfinished game", func(t *testing.T) {
		manager, _ := newManager()
		game, err := manager.NewGame(ctx, 3, []rune{'X', 'O'})
		require.NoError(t, err)
		require.NoError(t, manager.MakeTurn(ctx, game, 5))

		// When: the game is resumed by its ID
		resumed, err := manager.Resume(ctx, game.ID)
		require.NoError(t, err)

		// Then: it continues with O
		current, err := resumed.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, 'O', current.Symbol)
		assert.Equal(t, game.Board.Fields(), resumed.Board.Fields())
	})

	t.Run("Unknown game", func(t *testing.T) {
		manager, _ := newManager()

		_, err := manager.Resume(ctx, "missing")

		require.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Won board stored as still playing is dropped", func(t *testing.T) {
		// Given: a stored game whose board is already won by O but whose status says otherwise
		manager, gameRepo := newManager()
		board, err := entity.NewBoard(3, []entity.Field{
			'X', 'X', 0,
			'O', 'O', 'O',
			'X', 0, 0,
		})
		require.NoError(t, err)
		game := entity.NewGame("done", board, []entity.Player{{Symbol: 'X'}, {Symbol: 'O'}})
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: it is resumed
		_, err = manager.Resume(ctx, "done")

		// Then: ErrGameFinished is returned and the checkpoint is removed
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		_, err = gameRepo.GetByID(ctx, "done")
		require.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Stored status is evaluated again", func(t *testing.T) {
		// Given: an empty board stored with a finished status
		manager, gameRepo := newManager()
		board, err := entity.NewBoard(3, nil)
		require.NoError(t, err)
		game := entity.NewGame("stale", board, []entity.Player{{Symbol: 'X'}, {Symbol: 'O'}})
		game.Status = entity.StatusWon('O')
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: it is resumed
		resumed, err := manager.Resume(ctx, "stale")

		// Then: the game goes on
		require.NoError(t, err)
		assert.Equal(t, entity.StatusStillPlaying(), resumed.Status)
	})

	t.Run("Game without board", func(t *testing.T) {
		// Given: a stored game with no board
		manager, gameRepo := newManager()
		game := entity.NewGame("no-board", nil, []entity.Player{{Symbol: 'X'}, {Symbol: 'O'}})
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: it is resumed
		resumed, err := manager.Resume(ctx, "no-board")

		// Then: ErrGameNotStarted is returned
		require.ErrorIs(t, err, apperror.ErrGameNotStarted)
		assert.Nil(t, resumed)
	})

	t.Run("Game with a single player", func(t *testing.T) {
		// Given: a stored game with only X
		manager, gameRepo := newManager()
		board, err := entity.NewBoard(3, nil)
		require.NoError(t, err)
		game := entity.NewGame("solo", board, []entity.Player{{Symbol: 'X'}})
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: it is resumed
		resumed, err := manager.Resume(ctx, "solo")

		// Then: the player count is rejected like in NewGame
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerCount)
		assert.Nil(t, resumed)
	})

	t.Run("Game with duplicate symbols", func(t *testing.T) {
		manager, gameRepo := newManager()
		board, err := entity.NewBoard(3, nil)
		require.NoError(t, err)
		game := entity.NewGame("twins", board, []entity.Player{{Symbol: 'X'}, {Symbol: 'X'}})
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		_, err = manager.Resume(ctx, "twins")

		require.ErrorIs(t, err, apperror.ErrDuplicateSymbol)
	})
}
