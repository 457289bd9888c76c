package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sanghtth/product-dashboard/internal/core/domain"
)

var exportHeader = []string{"ID", "Title", "Price", "Category", "Description"}

// PageRows snapshots the currently visible page window as export rows
// in the declared column order.
func (d *Dashboard) PageRows() (page int, header []string, rows [][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	page = d.page
	header = exportHeader
	for _, p := range d.pageWindow() {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.CategoryName(),
			p.Description,
		})
	}
	return page, header, rows
}

// ExportCSV produces a CSV document of the currently visible page
// window only: one header row plus one row per visible product.
// Quoting follows RFC 4180, embedded quotes are escaped.
func (d *Dashboard) ExportCSV(ctx context.Context) (domain.FileExport, error) {
	const op = "Dashboard.ExportCSV"

	page, header, rows := d.PageRows()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return domain.FileExport{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return domain.FileExport{}, fmt.Errorf("%s: %w", op, err)
	}

	d.emit(ctx, domain.ActivityEvent{Action: domain.ActivityExport, Page: page})

	return domain.FileExport{
		Filename: fmt.Sprintf("products_page_%d.csv", page),
		MIME:     "text/csv",
		Data:     buf.Bytes(),
	}, nil
}
