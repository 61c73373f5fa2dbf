package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
)

func TestRequestConnection_SelfAndDuplicate(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@x.com", models.RoleCustomer, nil)
	b := f.user(t, "b@x.com", models.RoleCustomer, nil)

	_, err := f.connections.RequestConnection(context.Background(), a.ID, a.ID)
	assert.ErrorIs(t, err, ErrSelfConnection)
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)

	conn, err := f.connections.RequestConnection(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionPending, conn.Status)

	_, err = f.connections.RequestConnection(context.Background(), a.ID, b.ID)
	assert.ErrorIs(t, err, ErrConnectionExists)
	assert.ErrorIs(t, err, apierrors.ErrConflict)
}

func TestRequestConnection_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@x.com", models.RoleCustomer, nil)

	_, err := f.connections.RequestConnection(context.Background(), a.ID, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRespondToConnection(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@x.com", models.RoleCustomer, nil)
	b := f.user(t, "b@x.com", models.RoleCustomer, nil)
	c := f.user(t, "c@x.com", models.RoleCustomer, nil)

	conn, err := f.connections.RequestConnection(context.Background(), a.ID, b.ID)
	require.NoError(t, err)

	_, err = f.connections.RespondToConnection(context.Background(), b.ID, conn.ID, "maybe")
	assert.ErrorIs(t, err, ErrInvalidResponseStatus)
	_, err = f.connections.RespondToConnection(context.Background(), b.ID, conn.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidResponseStatus)

	_, err = f.connections.RespondToConnection(context.Background(), b.ID, 999, "connected")
	assert.ErrorIs(t, err, ErrConnectionNotFound)

	// Neither the requester nor a bystander may answer.
	_, err = f.connections.RespondToConnection(context.Background(), a.ID, conn.ID, "connected")
	assert.ErrorIs(t, err, ErrNotConnectionTarget)
	_, err = f.connections.RespondToConnection(context.Background(), c.ID, conn.ID, "connected")
	assert.ErrorIs(t, err, apierrors.ErrForbidden)

	updated, err := f.connections.RespondToConnection(context.Background(), b.ID, conn.ID, "connected")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionConnected, updated.Status)

	forA, err := f.connections.ListConnections(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	forB, err := f.connections.ListConnections(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, forB, 1)
	assert.Equal(t, conn.ID, forB[0].ID)
}

func TestListPending_NewestFirst(t *testing.T) {
	f := newFixture(t)
	target := f.user(t, "t@x.com", models.RoleCustomer, nil)
	first := f.user(t, "first@x.com", models.RoleCustomer, nil)
	second := f.user(t, "second@x.com", models.RoleCustomer, nil)

	now := time.Now()
	require.NoError(t, f.db.Create(&models.Connection{UserID: first.ID, ConnectedUserID: target.ID, Status: models.ConnectionPending, CreatedAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, f.db.Create(&models.Connection{UserID: second.ID, ConnectedUserID: target.ID, Status: models.ConnectionPending, CreatedAt: now}).Error)
	require.NoError(t, f.db.Create(&models.Connection{UserID: target.ID, ConnectedUserID: first.ID, Status: models.ConnectionPending, CreatedAt: now}).Error)

	pending, err := f.connections.ListPending(context.Background(), target.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].UserID)
	assert.Equal(t, first.ID, pending[1].UserID)
}

func TestDeleteConnection_RequesterOnly(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@x.com", models.RoleCustomer, nil)
	b := f.user(t, "b@x.com", models.RoleCustomer, nil)

	conn, err := f.connections.RequestConnection(context.Background(), a.ID, b.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.connections.DeleteConnection(context.Background(), b.ID, conn.ID), ErrConnectionNotFound)
	require.NoError(t, f.connections.DeleteConnection(context.Background(), a.ID, conn.ID))
	assert.ErrorIs(t, f.connections.DeleteConnection(context.Background(), a.ID, conn.ID), ErrConnectionNotFound)

	// The pair can be requested again once deleted.
	_, err = f.connections.RequestConnection(context.Background(), a.ID, b.ID)
	assert.NoError(t, err)
}

func TestFavorites(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@x.com", models.RoleCustomer, nil)
	b := f.user(t, "b@x.com", models.RoleCustomer, nil)

	_, err := f.connections.AddFavorite(context.Background(), b.ID, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrFavoriteForOtherUser)

	_, err = f.connections.AddFavorite(context.Background(), a.ID, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrSelfFavorite)

	_, err = f.connections.AddFavorite(context.Background(), a.ID, a.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	fav, err := f.connections.AddFavorite(context.Background(), a.ID, a.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, fav.FavoriteUser)
	assert.Equal(t, "b@x.com", fav.FavoriteUser.Email)

	_, err = f.connections.AddFavorite(context.Background(), a.ID, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrFavoriteExists)

	favs, err := f.connections.ListFavorites(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	assert.ErrorIs(t, f.connections.RemoveFavorite(context.Background(), b.ID, fav.ID), ErrFavoriteNotFound)
	require.NoError(t, f.connections.RemoveFavorite(context.Background(), a.ID, fav.ID))

	favs, err = f.connections.ListFavorites(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}
