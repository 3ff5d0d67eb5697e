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

type CountryService interface {
	List(ctx context.Context, q dto.ListQuery) (*Page[models.Country], error)
	Create(ctx context.Context, req dto.CountryRequest) (*models.Country, error)
	Get(ctx context.Context, id uint) (*models.Country, error)
	Update(ctx context.Context, id uint, req dto.CountryRequest) (*models.Country, error)
	Delete(ctx context.Context, id uint) error
}

type countryService struct {
	countries repository.CountryRepository
	publisher EventPublisher
}

func NewCountryService(countries repository.CountryRepository, publisher EventPublisher) CountryService {
	return &countryService{countries: countries, publisher: publisher}
}

func (s *countryService) List(ctx context.Context, q dto.ListQuery) (*Page[models.Country], error) {
	pq, err := pageQuery(q, CountrySortColumns)
	if err != nil {
		return nil, err
	}

	countries, total, err := s.countries.List(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return &Page[models.Country]{Items: countries, Page: pq.Page, PerPage: pq.PerPage, Total: total}, nil
}

func (s *countryService) Create(ctx context.Context, req dto.CountryRequest) (*models.Country, error) {
	req = trimCountry(req)
	if err := invalid(validation.Struct(req)); err != nil {
		return nil, err
	}

	country := &models.Country{
		Name:    req.Name,
		FlagURL: nullable(req.FlagURL),
		Code:    nullable(req.Code),
	}
	if err := s.countries.Create(ctx, country); err != nil {
		return nil, fmt.Errorf("create country: %w", err)
	}

	publish(ctx, s.publisher, EventCountryCreated, country)
	return country, nil
}

func (s *countryService) Get(ctx context.Context, id uint) (*models.Country, error) {
	return s.find(ctx, id)
}

func (s *countryService) Update(ctx context.Context, id uint, req dto.CountryRequest) (*models.Country, error) {
	country, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	req = trimCountry(req)
	if err := invalid(validation.Struct(req)); err != nil {
		return nil, err
	}

	err = s.countries.Update(ctx, country, map[string]any{
		"name":     req.Name,
		"flag_url": nullable(req.FlagURL),
		"code":     nullable(req.Code),
	})
	if err != nil {
		return nil, fmt.Errorf("update country: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.publisher, EventCountryUpdated, updated)
	return updated, nil
}

func (s *countryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.countries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete country: %w", err)
	}

	publish(ctx, s.publisher, EventCountryDeleted, deletedEvent{ID: id})
	return nil
}

func (s *countryService) find(ctx context.Context, id uint) (*models.Country, error) {
	country, err := s.countries.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Model: "Country", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find country: %w", err)
	}
	return country, nil
}

func trimCountry(req dto.CountryRequest) dto.CountryRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.FlagURL = strings.TrimSpace(req.FlagURL)
	req.Code = strings.TrimSpace(req.Code)
	return req
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
