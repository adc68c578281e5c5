package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPurgeSentInvalidationsCommand(t *testing.T) {
	cmd, err := commands.NewPurgeSentInvalidationsCommand(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cmd.Retention())

	_, err = commands.NewPurgeSentInvalidationsCommand(0)
	require.Error(t, err)

	assert.ErrorIs(t, commands.PurgeSentInvalidationsCommand{}.Validate(), commands.ErrPurgeSentInvalidationsCommandIsNotConstructed)
}

func TestPurgeSentInvalidationsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPurgeSentInvalidationsCommand(time.Hour)
	before := time.Now().Add(-time.Hour)

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("PurgeSent", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			return !cutoff.Before(before) && cutoff.Before(time.Now().Add(-59*time.Minute))
		})).Return(int64(7), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeSentInvalidationsCommandHandler(factory)
	purged, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(7), purged)
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPurgeSentInvalidationsCommandHandler_Handle_PurgeError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPurgeSentInvalidationsCommand(time.Hour)

	outbox := new(MockOutboxRepository)
	outbox.On("PurgeSent", ctx, mock.Anything).Return(int64(0), errors.New("purge error")).Once()
	uow := new(MockOutboxUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeSentInvalidationsCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "purge error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
