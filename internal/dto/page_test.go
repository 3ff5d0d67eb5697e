package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]int{3, 4}, 2, 2, 2, 5)
	require.NotNil(t, p.To)
	assert.Equal(t, 4, *p.To)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 2, p.PerPage)
	assert.EqualValues(t, 5, p.Total)

	empty := NewPage([]int{}, 0, 9, 2, 5)
	assert.Nil(t, empty.To)

	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_page":9,"data":[],"per_page":2,"to":null,"total":5}`, string(b))
}

func TestNewPaginator(t *testing.T) {
	p := NewPaginator("http://localhost/api/bookings/paginate", []int{1, 2}, 2, 2, 2, 5)

	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, "http://localhost/api/bookings/paginate?page=1", p.FirstPageURL)
	assert.Equal(t, "http://localhost/api/bookings/paginate?page=3", p.LastPageURL)
	require.NotNil(t, p.NextPageURL)
	assert.Equal(t, "http://localhost/api/bookings/paginate?page=3", *p.NextPageURL)
	require.NotNil(t, p.PrevPageURL)
	assert.Equal(t, "http://localhost/api/bookings/paginate?page=1", *p.PrevPageURL)
	assert.Equal(t, 3, *p.From)
	assert.Equal(t, 4, *p.To)

	first := NewPaginator("/p", []int{}, 0, 1, 10, 0)
	assert.Equal(t, 1, first.LastPage)
	assert.Nil(t, first.NextPageURL)
	assert.Nil(t, first.PrevPageURL)
	assert.Nil(t, first.From)
	assert.Nil(t, first.To)
}
