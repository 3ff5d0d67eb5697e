package dto

import "mime/multipart"

type MemberRequest struct {
	Name           string `json:"name" form:"name" validate:"required,max=255"`
	Email          string `json:"email" form:"email" validate:"required,email,max=255"`
	WhatsappNumber string `json:"whatsapp_number" form:"whatsapp_number" validate:"required,max=20"`
}

type CountryRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=255"`
	FlagURL string `json:"flag_url" form:"flag_url" validate:"omitempty,max=255"`
	Code    string `json:"code" form:"code" validate:"omitempty,max=10"`
}

type RegisterRequest struct {
	Name      string `json:"name" form:"name" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,maxbytes=72"`
	CPassword string `json:"c_password" form:"c_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// CreateBookingRequest carries the raw multipart values of a new booking.
// Existence of member_id and country_id is checked against the database.
type CreateBookingRequest struct {
	MemberID          string                `form:"member_id" validate:"required"`
	CountryID         string                `form:"country_id" validate:"required"`
	SurfingExperience string                `form:"surfing_experience" validate:"required,integer,intmin=1,intmax=10"`
	VisitDate         string                `form:"visit_date" validate:"required,datetime=2006-01-02"`
	DesiredBoard      string                `form:"desired_board" validate:"required,oneof=longboard funboard shortboard fishboard gunboard"`
	IdCardImage       *multipart.FileHeader `form:"-" validate:"-"`
}

// UpdateBookingRequest holds only the fields present in the request.
type UpdateBookingRequest struct {
	MemberID          *string               `form:"member_id" validate:"-"`
	CountryID         *string               `form:"country_id" validate:"-"`
	IdVerificationID  *string               `form:"id_verification_id" validate:"-"`
	SurfingExperience *string               `form:"surfing_experience" validate:"omitempty,integer,intmin=1,intmax=10"`
	VisitDate         *string               `form:"visit_date" validate:"omitempty,datetime=2006-01-02"`
	DesiredBoard      *string               `form:"desired_board" validate:"omitempty,oneof=longboard funboard shortboard fishboard gunboard"`
	LinkURLPath       *string               `form:"link_url_path" validate:"omitempty,url"`
	IdCardImage       *multipart.FileHeader `form:"-" validate:"-"`
}

// ListQuery is the shared list query string: perPage, page, sortBy, sortDirection.
type ListQuery struct {
	PerPage       int
	Page          int
	SortBy        string
	SortDirection string
}
