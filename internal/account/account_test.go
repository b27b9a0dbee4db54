package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaposvar-plus-backend/internal/kv"
)

func TestLoginLogout(t *testing.T) {
	accounts := NewAccounts(kv.NewMemStore())
	ctx := context.Background()

	assert.False(t, accounts.Current(ctx).IsLoggedIn)

	session, err := accounts.Login(ctx, "u-42", "Kovács Anna")
	require.NoError(t, err)
	assert.True(t, session.IsLoggedIn)
	assert.Equal(t, session, accounts.Current(ctx))

	require.NoError(t, accounts.Logout(ctx))
	current := accounts.Current(ctx)
	assert.False(t, current.IsLoggedIn)
	assert.Empty(t, current.UserID)
}

func TestLoginRequiresUserID(t *testing.T) {
	accounts := NewAccounts(kv.NewMemStore())
	_, err := accounts.Login(context.Background(), "  ", "Valaki")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestCard(t *testing.T) {
	accounts := NewAccounts(kv.NewMemStore())
	ctx := context.Background()

	_, ok := accounts.Card(ctx)
	assert.False(t, ok, "no card while logged out")

	_, err := accounts.Login(ctx, "u-42", "Kovács Anna")
	require.NoError(t, err)

	card, ok := accounts.Card(ctx)
	require.True(t, ok)
	assert.Equal(t, "KAP-U-42", card.Number)
	assert.Equal(t, "Kovács Anna", card.HolderName)
	assert.Equal(t, "ACTIVE", card.Status)
}

func TestMalformedSessionReadsAsLoggedOut(t *testing.T) {
	store := kv.NewMemStore()
	accounts := NewAccounts(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, SessionSlotKey, "{{"))
	assert.False(t, accounts.Current(ctx).IsLoggedIn)
}
