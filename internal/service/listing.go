package service

import (
	"slices"
	"strings"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/repository"
	"github.com/khairunnisaa/palmcode-api/internal/validation"
)

const DefaultPerPage = 10

var (
	MemberSortColumns  = []string{"id", "name", "email", "whatsapp_number", "created_at", "updated_at"}
	CountrySortColumns = []string{"id", "name", "code", "flag_url", "created_at", "updated_at"}
	BookingSortColumns = []string{
		"id", "member_id", "country_id", "id_verification_id", "surfing_experience",
		"visit_date", "desired_board", "created_at", "updated_at",
	}
)

// Page is one page of a listing together with the numbers needed to render it.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
}

// pageQuery normalises q and checks its sort options against allowed.
func pageQuery(q dto.ListQuery, allowed []string) (repository.PageQuery, error) {
	pq := repository.PageQuery{Page: q.Page, PerPage: q.PerPage}
	if pq.Page < 1 {
		pq.Page = 1
	}
	if pq.PerPage < 1 {
		pq.PerPage = DefaultPerPage
	}

	errs := validation.Errors{}
	if q.SortBy != "" {
		if !slices.Contains(allowed, q.SortBy) {
			errs.Add("sortBy", "The selected sort by is invalid.")
		}
		pq.SortBy = q.SortBy
	}
	desc, ok := direction(q.SortDirection)
	if !ok {
		errs.Add("sortDirection", "The selected sort direction is invalid.")
	}
	pq.Desc = desc

	if err := invalid(errs); err != nil {
		return repository.PageQuery{}, err
	}
	return pq, nil
}

func direction(s string) (desc bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return false, true
	case "desc":
		return true, true
	default:
		return false, false
	}
}
