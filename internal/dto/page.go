package dto

import "fmt"

// Page is the paginated payload placed under the envelope's data key.
type Page struct {
	CurrentPage int   `json:"current_page"`
	Data        any   `json:"data"`
	PerPage     int   `json:"per_page"`
	To          *int  `json:"to"`
	Total       int64 `json:"total"`
}

func NewPage(data any, count, page, perPage int, total int64) Page {
	return Page{
		CurrentPage: page,
		Data:        data,
		PerPage:     perPage,
		To:          lastItem(count, page, perPage),
		Total:       total,
	}
}

// Paginator is the full length-aware paginator returned by the raw
// bookings/paginate endpoint.
type Paginator struct {
	CurrentPage  int     `json:"current_page"`
	Data         any     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int64   `json:"total"`
}

func NewPaginator(path string, data any, count, page, perPage int, total int64) Paginator {
	last := 1
	if perPage > 0 && total > 0 {
		last = int((total + int64(perPage) - 1) / int64(perPage))
	}

	p := Paginator{
		CurrentPage:  page,
		Data:         data,
		FirstPageURL: pageURL(path, 1),
		From:         firstItem(count, page, perPage),
		LastPage:     last,
		LastPageURL:  pageURL(path, last),
		Path:         path,
		PerPage:      perPage,
		To:           lastItem(count, page, perPage),
		Total:        total,
	}
	if page < last {
		next := pageURL(path, page+1)
		p.NextPageURL = &next
	}
	if page > 1 {
		prev := pageURL(path, page-1)
		p.PrevPageURL = &prev
	}
	return p
}

func pageURL(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", path, page)
}

func firstItem(count, page, perPage int) *int {
	if count == 0 {
		return nil
	}
	v := (page-1)*perPage + 1
	return &v
}

func lastItem(count, page, perPage int) *int {
	if count == 0 {
		return nil
	}
	v := (page-1)*perPage + count
	return &v
}
