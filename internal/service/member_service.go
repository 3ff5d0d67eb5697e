package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/repository"
	"github.com/khairunnisaa/palmcode-api/internal/validation"
	"gorm.io/gorm"
)

type MemberService interface {
	List(ctx context.Context, q dto.ListQuery) (*Page[dto.MemberListItem], error)
	Create(ctx context.Context, req dto.MemberRequest) (*models.Member, error)
	Get(ctx context.Context, id uint) (*models.Member, error)
	Update(ctx context.Context, id uint, req dto.MemberRequest) (*models.Member, error)
	Delete(ctx context.Context, id uint) error
}

type memberService struct {
	members       repository.MemberRepository
	bookings      repository.BookingRepository
	verifications repository.IdVerificationRepository
	publisher     EventPublisher
}

func NewMemberService(
	members repository.MemberRepository,
	bookings repository.BookingRepository,
	verifications repository.IdVerificationRepository,
	publisher EventPublisher,
) MemberService {
	return &memberService{
		members:       members,
		bookings:      bookings,
		verifications: verifications,
		publisher:     publisher,
	}
}

func (s *memberService) List(ctx context.Context, q dto.ListQuery) (*Page[dto.MemberListItem], error) {
	pq, err := pageQuery(q, MemberSortColumns)
	if err != nil {
		return nil, err
	}

	members, total, err := s.members.List(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	bookings, err := s.bookings.FindByMemberIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load member bookings: %w", err)
	}
	verifications, err := s.verifications.FindByMemberIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load member id verifications: %w", err)
	}

	bookingsByMember := make(map[uint][]models.Booking)
	for _, b := range bookings {
		bookingsByMember[b.MemberID] = append(bookingsByMember[b.MemberID], b)
	}
	verificationsByMember := make(map[uint][]models.IdVerification)
	for _, v := range verifications {
		verificationsByMember[v.MemberID] = append(verificationsByMember[v.MemberID], v)
	}

	items := make([]dto.MemberListItem, len(members))
	for i, m := range members {
		items[i] = dto.ToMemberListItem(m, bookingsByMember[m.ID], verificationsByMember[m.ID])
	}

	return &Page[dto.MemberListItem]{Items: items, Page: pq.Page, PerPage: pq.PerPage, Total: total}, nil
}

func (s *memberService) Create(ctx context.Context, req dto.MemberRequest) (*models.Member, error) {
	req = trimMember(req)
	if err := s.validate(ctx, req, 0); err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:           req.Name,
		Email:          req.Email,
		WhatsappNumber: req.WhatsappNumber,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}

	publish(ctx, s.publisher, EventMemberCreated, member)
	return member, nil
}

func (s *memberService) Get(ctx context.Context, id uint) (*models.Member, error) {
	return s.find(ctx, id)
}

func (s *memberService) Update(ctx context.Context, id uint, req dto.MemberRequest) (*models.Member, error) {
	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	req = trimMember(req)
	if err := s.validate(ctx, req, member.ID); err != nil {
		return nil, err
	}

	err = s.members.Update(ctx, member, map[string]any{
		"name":            req.Name,
		"email":           req.Email,
		"whatsapp_number": req.WhatsappNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.publisher, EventMemberUpdated, updated)
	return updated, nil
}

func (s *memberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	publish(ctx, s.publisher, EventMemberDeleted, deletedEvent{ID: id})
	return nil
}

func (s *memberService) find(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Model: "Member", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

// validate runs the field rules and the email uniqueness check, ignoring
// the member with id exceptID.
func (s *memberService) validate(ctx context.Context, req dto.MemberRequest, exceptID uint) error {
	errs := validation.Struct(req)
	if errs == nil {
		errs = validation.Errors{}
	}
	if !errs.Has("email") {
		taken, err := s.members.EmailTaken(ctx, req.Email, exceptID)
		if err != nil {
			return fmt.Errorf("check member email: %w", err)
		}
		if taken {
			errs.Add("email", "The email has already been taken.")
		}
	}
	return invalid(errs)
}

func trimMember(req dto.MemberRequest) dto.MemberRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.WhatsappNumber = strings.TrimSpace(req.WhatsappNumber)
	return req
}
