// Package seed fills an empty database with demo members, countries and
// bookings.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

const bookingCount = 20

var members = []models.Member{
	{Name: "John Doe", Email: "gogojohn@gmil.com", WhatsappNumber: "1234567890"},
	{Name: "Jane Smith", Email: "gogojohn2@gmil.com", WhatsappNumber: "9876543210"},
	{Name: "Alice Johnson", Email: "gogojohn3@gmil.com", WhatsappNumber: "5555555555"},
}

var countries = []struct{ name, code string }{
	{"Indonesia", "ID"},
	{"Australia", "AU"},
	{"Portugal", "PT"},
	{"Costa Rica", "CR"},
}

type Seeder struct {
	db  *gorm.DB
	rnd *rand.Rand
	now func() time.Time
}

func New(db *gorm.DB) *Seeder {
	return &Seeder{
		db:  db,
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now: time.Now,
	}
}

// Run inserts the demo data in one transaction. It does nothing when any
// member already exists, so repeated starts are safe.
func (s *Seeder) Run(ctx context.Context) error {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Member{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if existing > 0 {
		slog.Info("seed skipped, members already present", "members", existing)
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seeded := make([]models.Member, len(members))
		copy(seeded, members)
		if err := tx.Create(&seeded).Error; err != nil {
			return fmt.Errorf("seed members: %w", err)
		}

		places := make([]models.Country, len(countries))
		for i, c := range countries {
			code := c.code
			places[i] = models.Country{Name: c.name, Code: &code}
		}
		if err := tx.Create(&places).Error; err != nil {
			return fmt.Errorf("seed countries: %w", err)
		}

		verifications := make([]models.IdVerification, len(seeded))
		for i, m := range seeded {
			name := fmt.Sprintf("id_verification_%d.jpg", i+1)
			verifications[i] = models.IdVerification{
				MemberID:    m.ID,
				FileName:    name,
				LinkURLPath: "https://example.com/" + name,
			}
		}
		if err := tx.Create(&verifications).Error; err != nil {
			return fmt.Errorf("seed id verifications: %w", err)
		}

		today := s.now()
		bookings := make([]models.Booking, bookingCount)
		for i := range bookings {
			bookings[i] = models.Booking{
				MemberID:          seeded[s.rnd.IntN(len(seeded))].ID,
				CountryID:         places[s.rnd.IntN(len(places))].ID,
				IdVerificationID:  verifications[s.rnd.IntN(len(verifications))].ID,
				SurfingExperience: 1 + s.rnd.IntN(10),
				VisitDate:         models.NewDate(today.AddDate(0, 0, 1+s.rnd.IntN(30))),
				DesiredBoard:      models.BoardTypes[s.rnd.IntN(len(models.BoardTypes))],
			}
		}
		if err := tx.Create(&bookings).Error; err != nil {
			return fmt.Errorf("seed bookings: %w", err)
		}

		slog.Info("database seeded",
			"members", len(seeded),
			"countries", len(places),
			"bookings", len(bookings),
		)
		return nil
	})
}
