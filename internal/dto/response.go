package dto

import (
	"time"

	"github.com/khairunnisaa/palmcode-api/internal/models"
)

type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type LoginErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type MemberResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	WhatsappNumber string    `json:"whatsapp_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MemberListItem is a raw member row with its dependent records attached.
type MemberListItem struct {
	models.Member
	Bookings        []models.Booking        `json:"bookings"`
	IdVerifications []models.IdVerification `json:"id_verifications"`
}

type CountryResponse struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	FlagURL *string `json:"flag_url"`
	Code    *string `json:"code"`
}

type BookingResponse struct {
	ID                uint             `json:"id"`
	MemberID          uint             `json:"member_id"`
	CountryID         uint             `json:"country_id"`
	IdVerificationID  uint             `json:"id_verification_id"`
	SurfingExperience int              `json:"surfing_experience"`
	VisitDate         models.Date      `json:"visit_date"`
	DesiredBoard      models.BoardType `json:"desired_board"`
}

// BookingDetailResponse inlines the related records instead of their ids.
type BookingDetailResponse struct {
	ID                uint                   `json:"id"`
	Member            *models.Member         `json:"member"`
	Country           *models.Country        `json:"country"`
	IdVerification    *models.IdVerification `json:"id_verification"`
	SurfingExperience int                    `json:"surfing_experience"`
	VisitDate         models.Date            `json:"visit_date"`
	DesiredBoard      models.BoardType       `json:"desired_board"`
}

type BookingsResponse struct {
	Bookings any `json:"bookings"`
}

func ToMemberResponse(m *models.Member) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		WhatsappNumber: m.WhatsappNumber,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToMemberListItem(m models.Member, bookings []models.Booking, verifications []models.IdVerification) MemberListItem {
	if bookings == nil {
		bookings = []models.Booking{}
	}
	if verifications == nil {
		verifications = []models.IdVerification{}
	}
	return MemberListItem{Member: m, Bookings: bookings, IdVerifications: verifications}
}

func ToCountryResponse(c *models.Country) CountryResponse {
	return CountryResponse{
		ID:      c.ID,
		Name:    c.Name,
		FlagURL: c.FlagURL,
		Code:    c.Code,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID,
		MemberID:          b.MemberID,
		CountryID:         b.CountryID,
		IdVerificationID:  b.IdVerificationID,
		SurfingExperience: b.SurfingExperience,
		VisitDate:         b.VisitDate,
		DesiredBoard:      b.DesiredBoard,
	}
}

func ToBookingDetailResponse(b *models.Booking, m *models.Member, c *models.Country, v *models.IdVerification) BookingDetailResponse {
	return BookingDetailResponse{
		ID:                b.ID,
		Member:            m,
		Country:           c,
		IdVerification:    v,
		SurfingExperience: b.SurfingExperience,
		VisitDate:         b.VisitDate,
		DesiredBoard:      b.DesiredBoard,
	}
}
