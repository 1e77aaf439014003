package repository

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionToggle(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	subscriber := createTestUser(t, db, "fan")
	channel := createTestUser(t, db, "channel")

	subscribed, err := repo.Toggle(ctx, subscriber.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribed, err = repo.Toggle(ctx, subscriber.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	var count int64
	require.NoError(t, db.Model(&models.Subscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubscriptionPairsAreIndependent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Toggle(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, bob.ID, carol.ID)
	require.NoError(t, err)
	// Mirrored pair: carol follows alice back.
	_, err = repo.Toggle(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	_, err = repo.Toggle(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Subscription{}).
		Where("channel_id = ?", carol.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only alice's subscription was removed")
}
