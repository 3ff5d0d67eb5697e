package models

import "time"

type IdVerification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	LinkURLPath string    `gorm:"size:255;not null" json:"link_url_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}
