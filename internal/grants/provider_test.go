package grants

import (
	"context"
	"errors"
	"testing"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGrantStore struct {
	mock.Mock
}

func (m *mockGrantStore) StoreModules(ctx context.Context, userID, storeID int64) ([]string, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGrantStore) CopypointModules(ctx context.Context, userID, copypointID int64) ([]string, error) {
	args := m.Called(ctx, userID, copypointID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestProvider_GrantsFor_StoreScope(t *testing.T) {
	store := &mockGrantStore{}
	store.On("StoreModules", mock.Anything, int64(7), int64(5)).Return([]string{"SALES", "REPORTS"}, nil)

	provider := NewProvider(store)
	modules, err := provider.GrantsFor(context.Background(), 7, authz.StoreScope(5))
	require.NoError(t, err)

	assert.True(t, modules.Has("SALES"))
	assert.True(t, modules.Has("REPORTS"))
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "CopypointModules", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvider_GrantsFor_CopypointScope(t *testing.T) {
	store := &mockGrantStore{}
	store.On("CopypointModules", mock.Anything, int64(7), int64(12)).Return([]string{"SALES"}, nil)

	provider := NewProvider(store)
	modules, err := provider.GrantsFor(context.Background(), 7, authz.CopypointScope(12))
	require.NoError(t, err)

	assert.Equal(t, []string{"SALES"}, modules.Codes())
	// The store hierarchy is never consulted for a copypoint scope: no
	// implicit cascade from store administrator grants.
	store.AssertNotCalled(t, "StoreModules", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvider_GrantsFor_GlobalScopeIsEmpty(t *testing.T) {
	store := &mockGrantStore{}

	provider := NewProvider(store)
	modules, err := provider.GrantsFor(context.Background(), 7, authz.GlobalScope())
	require.NoError(t, err)

	assert.NotNil(t, modules)
	assert.Empty(t, modules)
	store.AssertNotCalled(t, "StoreModules", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CopypointModules", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvider_GrantsFor_NoGrantsIsEmptySetNotError(t *testing.T) {
	store := &mockGrantStore{}
	store.On("CopypointModules", mock.Anything, int64(7), int64(12)).Return([]string{}, nil)

	provider := NewProvider(store)
	modules, err := provider.GrantsFor(context.Background(), 7, authz.CopypointScope(12))
	require.NoError(t, err)
	assert.NotNil(t, modules)
	assert.Empty(t, modules)
}

func TestProvider_GrantsFor_StoreError(t *testing.T) {
	store := &mockGrantStore{}
	store.On("StoreModules", mock.Anything, int64(7), int64(5)).Return(nil, errors.New("connection refused"))

	provider := NewProvider(store)
	_, err := provider.GrantsFor(context.Background(), 7, authz.StoreScope(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store:5")
}
