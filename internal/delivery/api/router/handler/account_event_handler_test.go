package handler

import (
	"net/http"
	"testing"
	"time"

	"funntour/internal/domain/constants"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountEventHandler_ListUserEvents(t *testing.T) {
	occurredAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	uc := &mockAuditUsecase{}
	uc.On("ListUserEvents", mock.Anything, uint(7), repository.NewPage(0, 5)).Return([]*entity.AccountEvent{
		{EventID: "evt-1", Type: constants.EventUserCreated, UserID: 7, OccurredAt: occurredAt, ReceivedAt: occurredAt},
	}, nil)
	uc.On("ListUserEvents", mock.Anything, uint(8), mock.Anything).Return(nil, domainerrors.ErrUserNotFound)

	h := NewAccountEventHandler(uc)
	e := newTestEcho()
	e.GET("/users/:id/events", h.ListUserEvents)

	t.Run("lists the trail", func(t *testing.T) {
		rec := serveJSON(e, http.MethodGet, "/users/7/events?limit=5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []AccountEventResponse
		decodeData(t, rec, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "evt-1", got[0].EventID)
		assert.Equal(t, constants.EventUserCreated, got[0].Type)
		assert.True(t, occurredAt.Equal(got[0].OccurredAt))
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := serveJSON(e, http.MethodGet, "/users/8/events", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "USER_NOT_FOUND", decodeError(t, rec).Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := serveJSON(e, http.MethodGet, "/users/abc/events", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
