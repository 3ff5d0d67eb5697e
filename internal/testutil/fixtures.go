package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

func CreateMember(t *testing.T, db *gorm.DB, name string) *models.Member {
	t.Helper()
	m := &models.Member{
		Name:           name,
		Email:          fmt.Sprintf("%s@example.com", name),
		WhatsappNumber: "+6281234567",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}
	return m
}

func CreateCountry(t *testing.T, db *gorm.DB, name string) *models.Country {
	t.Helper()
	c := &models.Country{Name: name}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create country: %v", err)
	}
	return c
}

func CreateIdVerification(t *testing.T, db *gorm.DB, memberID uint, fileName string) *models.IdVerification {
	t.Helper()
	v := &models.IdVerification{
		MemberID:    memberID,
		FileName:    fileName,
		LinkURLPath: "id_card_images/" + fileName,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create id verification: %v", err)
	}
	return v
}

func CreateBooking(t *testing.T, db *gorm.DB, member *models.Member, country *models.Country, v *models.IdVerification, experience int) *models.Booking {
	t.Helper()
	b := &models.Booking{
		MemberID:          member.ID,
		CountryID:         country.ID,
		IdVerificationID:  v.ID,
		SurfingExperience: experience,
		VisitDate:         models.NewDate(time.Date(2025, 1, experience, 0, 0, 0, 0, time.UTC)),
		DesiredBoard:      models.BoardLongboard,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}
