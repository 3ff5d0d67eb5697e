package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"slices"
	"strconv"
	"strings"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/repository"
	"github.com/khairunnisaa/palmcode-api/internal/validation"
	"gorm.io/gorm"
)

const IdCardImageDir = "id_card_images"

// BlobStore keeps uploaded files in the public storage area.
type BlobStore interface {
	Store(dir string, fh *multipart.FileHeader) (string, error)
	Delete(path string) error
}

// BookingDetails is a booking with its related records resolved.
type BookingDetails struct {
	Booking        models.Booking
	Member         *models.Member
	Country        *models.Country
	IdVerification *models.IdVerification
}

type BookingService interface {
	List(ctx context.Context, q dto.ListQuery) (*Page[BookingDetails], error)
	Get(ctx context.Context, id uint) (*BookingDetails, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (*BookingDetails, error)
	Update(ctx context.Context, id uint, req dto.UpdateBookingRequest) (*models.Booking, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, memberID *uint) ([]models.Booking, error)
	Sort(ctx context.Context, column, direction string) ([]models.Booking, error)
	Paginate(ctx context.Context, page, perPage int) (*Page[models.Booking], error)
}

type bookingService struct {
	bookings      repository.BookingRepository
	members       repository.MemberRepository
	countries     repository.CountryRepository
	verifications repository.IdVerificationRepository
	store         BlobStore
	publisher     EventPublisher
}

func NewBookingService(
	bookings repository.BookingRepository,
	members repository.MemberRepository,
	countries repository.CountryRepository,
	verifications repository.IdVerificationRepository,
	store BlobStore,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookings:      bookings,
		members:       members,
		countries:     countries,
		verifications: verifications,
		store:         store,
		publisher:     publisher,
	}
}

func (s *bookingService) List(ctx context.Context, q dto.ListQuery) (*Page[BookingDetails], error) {
	if q.SortBy == "" {
		q.SortBy = "id"
	}
	pq, err := pageQuery(q, BookingSortColumns)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.List(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	items, err := s.resolve(ctx, bookings)
	if err != nil {
		return nil, err
	}
	return &Page[BookingDetails]{Items: items, Page: pq.Page, PerPage: pq.PerPage, Total: total}, nil
}

func (s *bookingService) Get(ctx context.Context, id uint) (*BookingDetails, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.resolve(ctx, []models.Booking{*booking})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// resolve attaches member, country and id verification to each booking with
// one query per relation. The id verification is the member's first one,
// not necessarily the row referenced by id_verification_id.
func (s *bookingService) resolve(ctx context.Context, bookings []models.Booking) ([]BookingDetails, error) {
	memberIDs := make([]uint, 0, len(bookings))
	countryIDs := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		memberIDs = append(memberIDs, b.MemberID)
		countryIDs = append(countryIDs, b.CountryID)
	}
	memberIDs = uniq(memberIDs)
	countryIDs = uniq(countryIDs)

	members, err := s.members.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("load booking members: %w", err)
	}
	countries, err := s.countries.FindByIDs(ctx, countryIDs)
	if err != nil {
		return nil, fmt.Errorf("load booking countries: %w", err)
	}
	verifications, err := s.verifications.FindByMemberIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("load booking id verifications: %w", err)
	}

	memberByID := make(map[uint]*models.Member, len(members))
	for i := range members {
		memberByID[members[i].ID] = &members[i]
	}
	countryByID := make(map[uint]*models.Country, len(countries))
	for i := range countries {
		countryByID[countries[i].ID] = &countries[i]
	}
	firstVerification := make(map[uint]*models.IdVerification, len(verifications))
	for i := range verifications {
		if _, ok := firstVerification[verifications[i].MemberID]; !ok {
			firstVerification[verifications[i].MemberID] = &verifications[i]
		}
	}

	out := make([]BookingDetails, len(bookings))
	for i, b := range bookings {
		out[i] = BookingDetails{
			Booking:        b,
			Member:         memberByID[b.MemberID],
			Country:        countryByID[b.CountryID],
			IdVerification: firstVerification[b.MemberID],
		}
	}
	return out, nil
}

func (s *bookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*BookingDetails, error) {
	req = trimCreateBooking(req)

	errs := validation.Struct(req)
	if errs == nil {
		errs = validation.Errors{}
	}
	memberID, err := s.checkExists(ctx, errs, "member_id", &req.MemberID, s.members.Exists)
	if err != nil {
		return nil, err
	}
	countryID, err := s.checkExists(ctx, errs, "country_id", &req.CountryID, s.countries.Exists)
	if err != nil {
		return nil, err
	}
	validation.Image(errs, "id_card_image", req.IdCardImage, true)
	if err := invalid(errs); err != nil {
		return nil, err
	}

	experience, _ := strconv.Atoi(req.SurfingExperience)
	visitDate, _ := models.ParseDate(req.VisitDate)

	path, err := s.store.Store(IdCardImageDir, req.IdCardImage)
	if err != nil {
		return nil, &CreateFailedError{Err: fmt.Errorf("store id card image: %w", err)}
	}

	verification := &models.IdVerification{
		MemberID:    memberID,
		FileName:    req.IdCardImage.Filename,
		LinkURLPath: path,
	}
	booking := &models.Booking{
		MemberID:          memberID,
		CountryID:         countryID,
		SurfingExperience: experience,
		VisitDate:         visitDate,
		DesiredBoard:      models.BoardType(req.DesiredBoard),
	}

	err = s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.verifications.Create(ctx, tx, verification); err != nil {
			return err
		}
		booking.IdVerificationID = verification.ID
		return s.bookings.Create(ctx, tx, booking)
	})
	if err != nil {
		if derr := s.store.Delete(path); derr != nil {
			slog.Error("remove orphaned id card image", "path", path, "error", derr)
		}
		return nil, &CreateFailedError{Err: err}
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("load booking member: %w", err)
	}
	country, err := s.countries.FindByID(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("load booking country: %w", err)
	}

	publish(ctx, s.publisher, EventBookingCreated, booking)
	return &BookingDetails{
		Booking:        *booking,
		Member:         member,
		Country:        country,
		IdVerification: verification,
	}, nil
}

func (s *bookingService) Update(ctx context.Context, id uint, req dto.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	req = trimUpdateBooking(req)
	errs := validation.Struct(req)
	if errs == nil {
		errs = validation.Errors{}
	}

	fields := make(map[string]any)
	if req.MemberID != nil {
		memberID, err := s.checkExists(ctx, errs, "member_id", req.MemberID, s.members.Exists)
		if err != nil {
			return nil, err
		}
		fields["member_id"] = memberID
	}
	if req.CountryID != nil {
		countryID, err := s.checkExists(ctx, errs, "country_id", req.CountryID, s.countries.Exists)
		if err != nil {
			return nil, err
		}
		fields["country_id"] = countryID
	}
	if req.IdVerificationID != nil {
		verificationID, err := s.checkExists(ctx, errs, "id_verification_id", req.IdVerificationID, s.verifications.Exists)
		if err != nil {
			return nil, err
		}
		fields["id_verification_id"] = verificationID
	}
	validation.Image(errs, "id_card_image", req.IdCardImage, false)
	if err := invalid(errs); err != nil {
		return nil, err
	}

	if req.SurfingExperience != nil {
		experience, _ := strconv.Atoi(*req.SurfingExperience)
		fields["surfing_experience"] = experience
	}
	if req.VisitDate != nil {
		visitDate, _ := models.ParseDate(*req.VisitDate)
		fields["visit_date"] = visitDate
	}
	if req.DesiredBoard != nil {
		fields["desired_board"] = models.BoardType(*req.DesiredBoard)
	}

	if err := s.bookings.Update(ctx, booking, fields); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Every verification of the member is rewritten, not only the one the
	// booking references.
	if req.IdCardImage != nil {
		if _, err := s.verifications.UpdateByMemberID(ctx, updated.MemberID, map[string]any{"file_name": req.IdCardImage.Filename}); err != nil {
			return nil, fmt.Errorf("update id verification file name: %w", err)
		}
	}
	if req.LinkURLPath != nil {
		if _, err := s.verifications.UpdateByMemberID(ctx, updated.MemberID, map[string]any{"link_url_path": *req.LinkURLPath}); err != nil {
			return nil, fmt.Errorf("update id verification link: %w", err)
		}
	}

	publish(ctx, s.publisher, EventBookingUpdated, updated)
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	publish(ctx, s.publisher, EventBookingDeleted, deletedEvent{ID: id})
	return nil
}

func (s *bookingService) Search(ctx context.Context, memberID *uint) ([]models.Booking, error) {
	bookings, err := s.bookings.Search(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) Sort(ctx context.Context, column, dir string) ([]models.Booking, error) {
	column = strings.TrimSpace(column)

	errs := validation.Errors{}
	switch {
	case column == "":
		errs.Add("column", "The column field is required.")
	case !slices.Contains(BookingSortColumns, column):
		errs.Add("column", "The selected column is invalid.")
	}
	desc, ok := direction(dir)
	if !ok {
		errs.Add("direction", "The selected direction is invalid.")
	}
	if err := invalid(errs); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.SortAll(ctx, column, desc)
	if err != nil {
		return nil, fmt.Errorf("sort bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) Paginate(ctx context.Context, page, perPage int) (*Page[models.Booking], error) {
	pq, err := pageQuery(dto.ListQuery{Page: page, PerPage: perPage}, BookingSortColumns)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.List(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("paginate bookings: %w", err)
	}
	return &Page[models.Booking]{Items: bookings, Page: pq.Page, PerPage: pq.PerPage, Total: total}, nil
}

func (s *bookingService) find(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Model: "Booking", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

// checkExists parses the id in raw and records "The selected <field> is
// invalid." when it is malformed or no such row exists.
func (s *bookingService) checkExists(
	ctx context.Context,
	errs validation.Errors,
	field string,
	raw *string,
	exists func(context.Context, uint) (bool, error),
) (uint, error) {
	if errs.Has(field) {
		return 0, nil
	}
	message := fmt.Sprintf("The selected %s is invalid.", validation.Attribute(field))

	id, err := strconv.ParseUint(*raw, 10, 64)
	if err != nil || id == 0 {
		errs.Add(field, message)
		return 0, nil
	}
	ok, err := exists(ctx, uint(id))
	if err != nil {
		return 0, fmt.Errorf("check %s: %w", field, err)
	}
	if !ok {
		errs.Add(field, message)
	}
	return uint(id), nil
}

func trimCreateBooking(req dto.CreateBookingRequest) dto.CreateBookingRequest {
	req.MemberID = strings.TrimSpace(req.MemberID)
	req.CountryID = strings.TrimSpace(req.CountryID)
	req.SurfingExperience = strings.TrimSpace(req.SurfingExperience)
	req.VisitDate = strings.TrimSpace(req.VisitDate)
	req.DesiredBoard = strings.TrimSpace(req.DesiredBoard)
	return req
}

// trimUpdateBooking trims present values and treats blank ones as absent.
func trimUpdateBooking(req dto.UpdateBookingRequest) dto.UpdateBookingRequest {
	for _, f := range []**string{
		&req.MemberID, &req.CountryID, &req.IdVerificationID, &req.SurfingExperience,
		&req.VisitDate, &req.DesiredBoard, &req.LinkURLPath,
	} {
		if *f == nil {
			continue
		}
		v := strings.TrimSpace(**f)
		if v == "" {
			*f = nil
			continue
		}
		*f = &v
	}
	return req
}

func uniq(ids []uint) []uint {
	slices.Sort(ids)
	return slices.Compact(ids)
}
