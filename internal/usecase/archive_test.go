package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-online/mocks/usecase"
)

func TestArchiver_Record(t *testing.T) {
	finished := playingSession("XXXOO....", entity.MarkerO)
	finished.Status = entity.StatusFinished
	finished.Winner = entity.WinnerX

	t.Run("Saves the finished game", func(t *testing.T) {
		repo := mockedUseCase.NewMockresultRepo(t)
		repo.EXPECT().Save(mock.Anything, finished).Return(nil).Once()

		NewArchiver(testLogger(), repo).Record(finished)
	})

	t.Run("Failure does not panic", func(t *testing.T) {
		repo := mockedUseCase.NewMockresultRepo(t)
		repo.EXPECT().Save(mock.Anything, finished).Return(errRedisDown).Once()

		assert.NotPanics(t, func() {
			NewArchiver(testLogger(), repo).Record(finished)
		})
	})
}
