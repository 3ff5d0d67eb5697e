package models

import "time"

type BoardType string

const (
	BoardLongboard  BoardType = "longboard"
	BoardFunboard   BoardType = "funboard"
	BoardShortboard BoardType = "shortboard"
	BoardFishboard  BoardType = "fishboard"
	BoardGunboard   BoardType = "gunboard"
)

var BoardTypes = []BoardType{BoardLongboard, BoardFunboard, BoardShortboard, BoardFishboard, BoardGunboard}

type Booking struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MemberID          uint      `gorm:"not null;index" json:"member_id"`
	CountryID         uint      `gorm:"not null;index" json:"country_id"`
	IdVerificationID  uint      `gorm:"not null" json:"id_verification_id"`
	SurfingExperience int       `gorm:"not null" json:"surfing_experience"`
	VisitDate         Date      `gorm:"not null" json:"visit_date"`
	DesiredBoard      BoardType `gorm:"type:varchar(20);not null" json:"desired_board"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Member         *Member         `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	Country        *Country        `gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE" json:"-"`
	IdVerification *IdVerification `gorm:"foreignKey:IdVerificationID;constraint:OnDelete:CASCADE" json:"-"`
}
