package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMemberRepository_ListPaginatesAndSorts(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	for _, name := range []string{"erin", "bob", "dana", "alice", "carl"} {
		testutil.CreateMember(t, db, name)
	}

	page, total, err := repo.List(ctx, PageQuery{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "erin", page[0].Name)
	assert.Equal(t, "bob", page[1].Name)

	page, _, err = repo.List(ctx, PageQuery{Page: 2, PerPage: 2, SortBy: "name"})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "carl", page[0].Name)
	assert.Equal(t, "dana", page[1].Name)

	page, _, err = repo.List(ctx, PageQuery{Page: 1, PerPage: 10, SortBy: "name", Desc: true})
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, "erin", page[0].Name)

	page, total, err = repo.List(ctx, PageQuery{Page: 4, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, page)
}

func TestMemberRepository_EmailTaken(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := testutil.CreateMember(t, db, "alice")

	taken, err := repo.EmailTaken(ctx, m.Email, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken(ctx, m.Email, m.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.EmailTaken(ctx, "nobody@example.com", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestMemberRepository_UpdateAndFind(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := testutil.CreateMember(t, db, "alice")
	require.NoError(t, repo.Update(ctx, m, map[string]any{"name": "Alice Cooper", "whatsapp_number": "+100"}))

	got, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", got.Name)
	assert.Equal(t, "+100", got.WhatsappNumber)
	assert.Equal(t, m.Email, got.Email)

	_, err = repo.FindByID(ctx, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestMemberRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	alice := testutil.CreateMember(t, db, "alice")
	bob := testutil.CreateMember(t, db, "bob")
	country := testutil.CreateCountry(t, db, "Indonesia")
	va := testutil.CreateIdVerification(t, db, alice.ID, "a.png")
	vb := testutil.CreateIdVerification(t, db, bob.ID, "b.png")
	testutil.CreateBooking(t, db, alice, country, va, 3)
	testutil.CreateBooking(t, db, alice, country, va, 4)
	testutil.CreateBooking(t, db, bob, country, vb, 5)

	require.NoError(t, repo.Delete(ctx, alice.ID))

	exists, err := repo.Exists(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	var bookings, verifications int64
	db.Model(&models.Booking{}).Where("member_id = ?", alice.ID).Count(&bookings)
	db.Model(&models.IdVerification{}).Where("member_id = ?", alice.ID).Count(&verifications)
	assert.Zero(t, bookings)
	assert.Zero(t, verifications)

	db.Model(&models.Booking{}).Where("member_id = ?", bob.ID).Count(&bookings)
	assert.EqualValues(t, 1, bookings)
}

func TestMemberRepository_FindByIDs(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewMemberRepository(db)

	a := testutil.CreateMember(t, db, "alice")
	testutil.CreateMember(t, db, "bob")
	c := testutil.CreateMember(t, db, "carl")

	got, err := repo.FindByIDs(context.Background(), []uint{a.ID, c.ID, 42})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
