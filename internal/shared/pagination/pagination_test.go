package pagination

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	req := Request{Page: -3, Size: 0}.Normalize()
	assert.Equal(t, 0, req.Page)
	assert.Equal(t, DefaultSize, req.Size)

	req = Request{Page: 1, Size: 1000}.Normalize()
	assert.Equal(t, MaxSize, req.Size)
	assert.Equal(t, MaxSize, req.Offset())
}

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	page := Slice(all, Request{Page: 1, Size: 2})
	require.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages())

	last := Slice(all, Request{Page: 2, Size: 2})
	require.Equal(t, []int{5}, last.Items)

	beyond := Slice(all, Request{Page: 9, Size: 2})
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestMapKeepsPosition(t *testing.T) {
	page := NewPage([]int{1, 2}, Request{Page: 3, Size: 2}, 8)
	mapped := Map(page, func(v int) string { return string(rune('a' + v)) })
	assert.Equal(t, []string{"b", "c"}, mapped.Items)
	assert.Equal(t, 3, mapped.Page)
	assert.Equal(t, int64(8), mapped.TotalItems)
}

func TestParse(t *testing.T) {
	req, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Request{Page: 0, Size: DefaultSize}, req)

	req, err = Parse("2", "500")
	require.NoError(t, err)
	assert.Equal(t, Request{Page: 2, Size: MaxSize}, req)

	_, err = Parse("-1", "")
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = Parse("", "zero")
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestParse_RejectsPagesPastTheOffsetRange(t *testing.T) {
	_, err := Parse("92233720368547759", "100")
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = Parse("9223372036854775807", "1")
	assert.ErrorIs(t, err, ErrInvalidPage)

	req, err := Parse(strconv.Itoa(MaxPage), "100")
	require.NoError(t, err)
	assert.Positive(t, req.Offset())
}

func TestNormalize_ClampsHugePages(t *testing.T) {
	req := Request{Page: math.MaxInt, Size: MaxSize}.Normalize()
	assert.Equal(t, MaxPage, req.Page)
	assert.Positive(t, req.Offset())

	var page Page[int]
	assert.NotPanics(t, func() {
		page = Slice([]int{1, 2, 3}, Request{Page: 92233720368547759, Size: MaxSize})
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalItems)
}
