package service_test

import (
	"strings"
	"testing"

	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	t.Run("VisiblePageWindowOnly", func(t *testing.T) {
		d := loaded(t, manyProducts(25), 10)
		d.SetPage(3)

		fe, err := d.ExportCSV(t.Context())
		require.NoError(t, err)

		assert.Equal(t, "products_page_3.csv", fe.Filename)
		assert.Equal(t, "text/csv", fe.MIME)

		lines := strings.Split(strings.TrimRight(string(fe.Data), "\n"), "\n")
		require.Len(t, lines, 6, "header plus the 5 products of the last page")
		assert.Equal(t, "ID,Title,Price,Category,Description", lines[0])
	})

	t.Run("ThreeRowsFourLines", func(t *testing.T) {
		d := loaded(t, []domain.Product{
			{ID: 1, Title: "Apple", Price: 10.5, Description: "red"},
			{ID: 2, Title: "Banana", Price: 5, Description: "yellow"},
			{ID: 3, Title: "Cherry", Price: 7, Category: &domain.Category{Name: "Fruit"}},
		}, 10)

		fe, err := d.ExportCSV(t.Context())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(fe.Data), "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "1,Apple,10.5,N/A,red", lines[1])
		assert.Equal(t, "2,Banana,5,N/A,yellow", lines[2])
		assert.Equal(t, "3,Cherry,7,Fruit,", lines[3])
	})

	t.Run("EmbeddedQuotesEscaped", func(t *testing.T) {
		d := loaded(t, []domain.Product{
			{ID: 1, Title: `17" Monitor`, Price: 99, Description: `says "wow", truly`},
		}, 10)

		fe, err := d.ExportCSV(t.Context())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(fe.Data), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `1,"17"" Monitor",99,N/A,"says ""wow"", truly"`, lines[1])
	})

	t.Run("EmptyPage", func(t *testing.T) {
		d := loaded(t, nil, 10)

		fe, err := d.ExportCSV(t.Context())
		require.NoError(t, err)

		assert.Equal(t, "products_page_1.csv", fe.Filename)
		lines := strings.Split(strings.TrimRight(string(fe.Data), "\n"), "\n")
		assert.Len(t, lines, 1, "header only")
	})
}

func TestPageRows(t *testing.T) {
	d := loaded(t, manyProducts(25), 10)
	d.SetPage(2)

	page, header, rows := d.PageRows()
	assert.Equal(t, 2, page)
	assert.Equal(t, []string{"ID", "Title", "Price", "Category", "Description"}, header)
	require.Len(t, rows, 10)
	assert.Equal(t, "11", rows[0][0], "window starts at the 11th record")
}
