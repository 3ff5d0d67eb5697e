package repository

import (
	"context"
	"testing"

	"github.com/khairunnisaa/palmcode-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdVerificationRepository_LookupsByMember(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewIdVerificationRepository(db)
	ctx := context.Background()

	alice := testutil.CreateMember(t, db, "alice")
	bob := testutil.CreateMember(t, db, "bob")
	first := testutil.CreateIdVerification(t, db, alice.ID, "first.png")
	testutil.CreateIdVerification(t, db, alice.ID, "second.png")
	testutil.CreateIdVerification(t, db, bob.ID, "bob.png")

	list, err := repo.FindByMemberIDs(ctx, []uint{alice.ID, bob.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)

	list, err = repo.FindByMemberIDs(ctx, []uint{999})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.FindByMemberIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err := repo.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdVerificationRepository_UpdateByMemberID(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewIdVerificationRepository(db)
	ctx := context.Background()

	alice := testutil.CreateMember(t, db, "alice")
	bob := testutil.CreateMember(t, db, "bob")
	testutil.CreateIdVerification(t, db, alice.ID, "first.png")
	testutil.CreateIdVerification(t, db, alice.ID, "second.png")
	other := testutil.CreateIdVerification(t, db, bob.ID, "bob.png")

	n, err := repo.UpdateByMemberID(ctx, alice.ID, map[string]any{"file_name": "renamed.png"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err := repo.FindByMemberIDs(ctx, []uint{alice.ID})
	require.NoError(t, err)
	for _, v := range list {
		assert.Equal(t, "renamed.png", v.FileName)
	}

	list, err = repo.FindByMemberIDs(ctx, []uint{bob.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.FileName, list[0].FileName)
}
