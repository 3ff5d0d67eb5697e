package service

import (
	"context"
	"errors"
	"testing"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/repository"
	"github.com/khairunnisaa/palmcode-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bookingFixture struct {
	svc   BookingService
	db    *gorm.DB
	store *memoryStore
	pub   *recordingPublisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	store := newMemoryStore()
	pub := &recordingPublisher{}
	svc := NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewMemberRepository(db),
		repository.NewCountryRepository(db),
		repository.NewIdVerificationRepository(db),
		store,
		pub,
	)
	return &bookingFixture{svc: svc, db: db, store: store, pub: pub}
}

func (f *bookingFixture) count(model any) int64 {
	var n int64
	f.db.Model(model).Count(&n)
	return n
}

func strPtr(s string) *string { return &s }

func TestBookingService_CreateSuccess(t *testing.T) {
	f := newBookingFixture(t)
	m := testutil.CreateMember(t, f.db, "ann")
	c := testutil.CreateCountry(t, f.db, "Bali")

	details, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		MemberID:          "1",
		CountryID:         "1",
		SurfingExperience: "6",
		VisitDate:         "2025-07-01",
		DesiredBoard:      "funboard",
		IdCardImage:       imageUpload(t, "passport.png", pngBytes),
	})
	require.NoError(t, err)

	assert.Equal(t, m.ID, details.Member.ID)
	assert.Equal(t, c.ID, details.Country.ID)
	require.NotNil(t, details.IdVerification)
	assert.Equal(t, "passport.png", details.IdVerification.FileName)
	assert.Equal(t, details.IdVerification.ID, details.Booking.IdVerificationID)
	assert.Equal(t, "2025-07-01", details.Booking.VisitDate.String())
	assert.Equal(t, models.BoardFunboard, details.Booking.DesiredBoard)

	assert.EqualValues(t, 1, f.count(&models.Booking{}))
	assert.EqualValues(t, 1, f.count(&models.IdVerification{}))
	assert.Len(t, f.store.files, 1)
	assert.Contains(t, f.store.files, details.IdVerification.LinkURLPath)
	assert.Equal(t, []string{EventBookingCreated}, f.pub.keys())
}

func TestBookingService_CreateUnknownReferences(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		MemberID:          "99",
		CountryID:         "abc",
		SurfingExperience: "6",
		VisitDate:         "2025-07-01",
		DesiredBoard:      "funboard",
		IdCardImage:       imageUpload(t, "passport.png", pngBytes),
	})

	errs := validationErrors(t, err)
	assert.Equal(t, []string{"The selected member id is invalid."}, errs["member_id"])
	assert.Equal(t, []string{"The selected country id is invalid."}, errs["country_id"])
	assert.Zero(t, f.count(&models.Booking{}))
	assert.Zero(t, f.count(&models.IdVerification{}))
	assert.Empty(t, f.store.files)
}

func TestBookingService_CreateFieldRules(t *testing.T) {
	f := newBookingFixture(t)
	testutil.CreateMember(t, f.db, "ann")
	testutil.CreateCountry(t, f.db, "Bali")

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		MemberID:          "1",
		CountryID:         "1",
		SurfingExperience: "11",
		VisitDate:         "tomorrow",
		DesiredBoard:      "bodyboard",
	})

	errs := validationErrors(t, err)
	assert.Equal(t, []string{"The surfing experience field must not be greater than 10."}, errs["surfing_experience"])
	assert.Equal(t, []string{"The visit date field must be a valid date."}, errs["visit_date"])
	assert.Equal(t, []string{"The selected desired board is invalid."}, errs["desired_board"])
	assert.Equal(t, []string{"The id card image field is required."}, errs["id_card_image"])
}

func TestBookingService_CreateStoreFailure(t *testing.T) {
	f := newBookingFixture(t)
	testutil.CreateMember(t, f.db, "ann")
	testutil.CreateCountry(t, f.db, "Bali")
	f.store.storeErr = errors.New("disk full")

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		MemberID: "1", CountryID: "1", SurfingExperience: "2", VisitDate: "2025-07-01",
		DesiredBoard: "gunboard", IdCardImage: imageUpload(t, "p.png", pngBytes),
	})

	var cerr *CreateFailedError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, f.count(&models.IdVerification{}))
}

func TestBookingService_CreateRollsBackAndRemovesFile(t *testing.T) {
	f := newBookingFixture(t)
	testutil.CreateMember(t, f.db, "ann")
	testutil.CreateCountry(t, f.db, "Bali")
	// make the booking insert fail after the verification insert
	require.NoError(t, f.db.Exec("CREATE TRIGGER reject_booking BEFORE INSERT ON bookings BEGIN SELECT RAISE(ABORT, 'booking rejected'); END").Error)

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		MemberID: "1", CountryID: "1", SurfingExperience: "2", VisitDate: "2025-07-01",
		DesiredBoard: "gunboard", IdCardImage: imageUpload(t, "p.png", pngBytes),
	})

	var cerr *CreateFailedError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, err.Error(), "booking rejected")
	assert.Zero(t, f.count(&models.IdVerification{}))
	assert.Zero(t, f.count(&models.Booking{}))
	assert.Empty(t, f.store.files)
	assert.Empty(t, f.pub.keys())
}

func TestBookingService_GetUsesMembersFirstVerification(t *testing.T) {
	f := newBookingFixture(t)
	m := testutil.CreateMember(t, f.db, "ann")
	c := testutil.CreateCountry(t, f.db, "Bali")
	first := testutil.CreateIdVerification(t, f.db, m.ID, "first.png")
	second := testutil.CreateIdVerification(t, f.db, m.ID, "second.png")
	b := testutil.CreateBooking(t, f.db, m, c, second, 5)

	details, err := f.svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, details.IdVerification.ID)
	assert.Equal(t, "Bali", details.Country.Name)

	_, err = f.svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_ListDefaultsToIDOrder(t *testing.T) {
	f := newBookingFixture(t)
	m := testutil.CreateMember(t, f.db, "ann")
	c := testutil.CreateCountry(t, f.db, "Bali")
	v := testutil.CreateIdVerification(t, f.db, m.ID, "a.png")
	for _, exp := range []int{9, 3, 7, 1, 5} {
		testutil.CreateBooking(t, f.db, m, c, v, exp)
	}

	page, err := f.svc.List(context.Background(), dto.ListQuery{PerPage: 2, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, uint(3), page.Items[0].Booking.ID)
	assert.Equal(t, uint(4), page.Items[1].Booking.ID)
	assert.Equal(t, "ann", page.Items[0].Member.Name)

	page, err = f.svc.List(context.Background(), dto.ListQuery{SortBy: "surfing_experience", SortDirection: "desc"})
	require.NoError(t, err)
	assert.Equal(t, 9, page.Items[0].Booking.SurfingExperience)

	_, err = f.svc.List(context.Background(), dto.ListQuery{SortBy: "secret"})
	validationErrors(t, err)
}

func TestBookingService_Update(t *testing.T) {
	f := newBookingFixture(t)
	ann := testutil.CreateMember(t, f.db, "ann")
	bob := testutil.CreateMember(t, f.db, "bob")
	c := testutil.CreateCountry(t, f.db, "Bali")
	v1 := testutil.CreateIdVerification(t, f.db, ann.ID, "a1.png")
	testutil.CreateIdVerification(t, f.db, ann.ID, "a2.png")
	vb := testutil.CreateIdVerification(t, f.db, bob.ID, "b.png")
	b := testutil.CreateBooking(t, f.db, ann, c, v1, 5)

	updated, err := f.svc.Update(context.Background(), b.ID, dto.UpdateBookingRequest{
		SurfingExperience: strPtr("8"),
		DesiredBoard:      strPtr("shortboard"),
		VisitDate:         strPtr(" "),
		LinkURLPath:       strPtr("https://cdn.example.com/card.png"),
		IdCardImage:       imageUpload(t, "renamed.png", pngBytes),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.SurfingExperience)
	assert.Equal(t, models.BoardShortboard, updated.DesiredBoard)
	assert.Equal(t, b.VisitDate.String(), updated.VisitDate.String())

	var anns []models.IdVerification
	require.NoError(t, f.db.Where("member_id = ?", ann.ID).Find(&anns).Error)
	require.Len(t, anns, 2)
	for _, v := range anns {
		assert.Equal(t, "renamed.png", v.FileName)
		assert.Equal(t, "https://cdn.example.com/card.png", v.LinkURLPath)
	}

	var other models.IdVerification
	require.NoError(t, f.db.First(&other, vb.ID).Error)
	assert.Equal(t, "b.png", other.FileName)
	assert.Empty(t, f.store.files)
	assert.Equal(t, []string{EventBookingUpdated}, f.pub.keys())
}

func TestBookingService_UpdateValidation(t *testing.T) {
	f := newBookingFixture(t)
	m := testutil.CreateMember(t, f.db, "ann")
	c := testutil.CreateCountry(t, f.db, "Bali")
	v := testutil.CreateIdVerification(t, f.db, m.ID, "a.png")
	b := testutil.CreateBooking(t, f.db, m, c, v, 5)

	_, err := f.svc.Update(context.Background(), b.ID, dto.UpdateBookingRequest{
		MemberID:         strPtr("77"),
		IdVerificationID: strPtr("77"),
		DesiredBoard:     strPtr("bodyboard"),
		LinkURLPath:      strPtr("not a url"),
	})

	errs := validationErrors(t, err)
	assert.Equal(t, []string{"The selected member id is invalid."}, errs["member_id"])
	assert.Equal(t, []string{"The selected id verification id is invalid."}, errs["id_verification_id"])
	assert.Equal(t, []string{"The selected desired board is invalid."}, errs["desired_board"])
	assert.Equal(t, []string{"The link url path field must be a valid URL."}, errs["link_url_path"])

	_, err = f.svc.Update(context.Background(), 404, dto.UpdateBookingRequest{})
	assert.EqualError(t, err, "No query results for model [Booking] 404")
}

func TestBookingService_DeleteSearchSortPaginate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	ann := testutil.CreateMember(t, f.db, "ann")
	bob := testutil.CreateMember(t, f.db, "bob")
	c := testutil.CreateCountry(t, f.db, "Bali")
	va := testutil.CreateIdVerification(t, f.db, ann.ID, "a.png")
	vb := testutil.CreateIdVerification(t, f.db, bob.ID, "b.png")
	b1 := testutil.CreateBooking(t, f.db, ann, c, va, 4)
	testutil.CreateBooking(t, f.db, bob, c, vb, 8)
	testutil.CreateBooking(t, f.db, ann, c, va, 2)

	found, err := f.svc.Search(ctx, &ann.ID)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	sorted, err := f.svc.Sort(ctx, "surfing_experience", "")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 8}, []int{sorted[0].SurfingExperience, sorted[1].SurfingExperience, sorted[2].SurfingExperience})

	_, err = f.svc.Sort(ctx, "", "asc")
	assert.Equal(t, []string{"The column field is required."}, validationErrors(t, err)["column"])
	_, err = f.svc.Sort(ctx, "id; DROP TABLE bookings", "asc")
	assert.Equal(t, []string{"The selected column is invalid."}, validationErrors(t, err)["column"])

	page, err := f.svc.Paginate(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Total)

	require.NoError(t, f.svc.Delete(ctx, b1.ID))
	assert.EqualValues(t, 2, f.count(&models.Booking{}))
	assert.ErrorIs(t, f.svc.Delete(ctx, b1.ID), ErrNotFound)
}
