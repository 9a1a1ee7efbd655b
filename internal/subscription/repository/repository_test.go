package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subscriptiondomain.Subscription{}))
	return db
}

func TestCreateAndFindByRemoteID(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	node, _ := snowflake.NewNode(1)

	sub := &subscriptiondomain.Subscription{
		ID:       node.Generate(),
		OwnerID:  node.Generate(),
		Name:     "default",
		RemoteID: "sub_remote",
		Plan:     "price_basic",
		Quantity: 2,
	}
	require.NoError(t, repo.Create(context.Background(), db, sub))

	found, err := repo.FindByRemoteID(context.Background(), db, "sub_remote")
	require.NoError(t, err)
	require.Equal(t, sub.ID, found.ID)
	require.Equal(t, "price_basic", found.Plan)
	require.Equal(t, int64(2), found.Quantity)
}

func TestCreateValidation(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	node, _ := snowflake.NewNode(1)

	err := repo.Create(context.Background(), db, &subscriptiondomain.Subscription{
		ID:       node.Generate(),
		RemoteID: "sub_remote",
	})
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidOwner)

	err = repo.Create(context.Background(), db, &subscriptiondomain.Subscription{
		ID:      node.Generate(),
		OwnerID: node.Generate(),
	})
	require.ErrorIs(t, err, subscriptiondomain.ErrMissingRemoteID)
}

func TestCreateRejectsDuplicateRemoteID(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	node, _ := snowflake.NewNode(1)

	first := &subscriptiondomain.Subscription{
		ID:       node.Generate(),
		OwnerID:  node.Generate(),
		Name:     "default",
		RemoteID: "sub_dup",
		Plan:     "price_basic",
		Quantity: 1,
	}
	require.NoError(t, repo.Create(context.Background(), db, first))

	second := &subscriptiondomain.Subscription{
		ID:       node.Generate(),
		OwnerID:  first.OwnerID,
		Name:     "default",
		RemoteID: "sub_dup",
		Plan:     "price_basic",
		Quantity: 1,
	}
	err := repo.Create(context.Background(), db, second)
	require.ErrorIs(t, err, subscriptiondomain.ErrDuplicateRemoteID)
}

func TestFindByRemoteIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()

	_, err := repo.FindByRemoteID(context.Background(), db, "sub_missing")
	require.ErrorIs(t, err, subscriptiondomain.ErrSubscriptionNotFound)
}

func TestListByOwnerIDNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	node, _ := snowflake.NewNode(1)
	ownerID := node.Generate()

	older := &subscriptiondomain.Subscription{
		ID:        node.Generate(),
		OwnerID:   ownerID,
		Name:      "default",
		RemoteID:  "sub_older",
		Plan:      "price_basic",
		Quantity:  1,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &subscriptiondomain.Subscription{
		ID:        node.Generate(),
		OwnerID:   ownerID,
		Name:      "premium",
		RemoteID:  "sub_newer",
		Plan:      "price_premium",
		Quantity:  1,
		CreatedAt: time.Now().UTC(),
	}
	other := &subscriptiondomain.Subscription{
		ID:       node.Generate(),
		OwnerID:  node.Generate(),
		Name:     "default",
		RemoteID: "sub_other",
		Plan:     "price_basic",
		Quantity: 1,
	}
	require.NoError(t, repo.Create(context.Background(), db, older))
	require.NoError(t, repo.Create(context.Background(), db, newer))
	require.NoError(t, repo.Create(context.Background(), db, other))

	subs, err := repo.ListByOwnerID(context.Background(), db, ownerID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "sub_newer", subs[0].RemoteID)
	require.Equal(t, "sub_older", subs[1].RemoteID)

	_, err = repo.ListByOwnerID(context.Background(), db, 0)
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidOwner)
}
