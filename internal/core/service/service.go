package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/sanghtth/product-dashboard/internal/core/port"
)

var _ port.ProductsBrowser = (*Dashboard)(nil)
var _ port.ProductEditor = (*Dashboard)(nil)
var _ port.PageExporter = (*Dashboard)(nil)

const DefaultPageSize = 10

// Dashboard owns the product store, the derived filtered view and the
// view state. All state mutations are serialized by the mutex. Gateway
// calls and activity emission run outside of it.
type Dashboard struct {
	mu       sync.Mutex
	catalog  port.ProductCatalog
	activity port.ActivityProducer

	products []domain.Product
	filtered []domain.Product

	query    string
	sortF    domain.SortField
	sortDir  domain.SortDirection
	page     int
	pageSize int

	loadSeq uint64
}

func New(catalog port.ProductCatalog, activity port.ActivityProducer, pageSize int) *Dashboard {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Dashboard{
		catalog:  catalog,
		activity: activity,
		sortDir:  domain.SortAsc,
		page:     1,
		pageSize: pageSize,
	}
}

// Load replaces the product store wholesale from the remote catalog.
// On failure the previous state is kept untouched and no retry is made.
// Overlapping loads are fenced by a sequence number: only the latest
// started load may apply its result.
func (d *Dashboard) Load(ctx context.Context) error {
	const op = "Dashboard.Load"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	d.mu.Lock()
	d.loadSeq++
	seq := d.loadSeq
	d.mu.Unlock()

	ps, err := d.catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	d.mu.Lock()
	if seq != d.loadSeq {
		d.mu.Unlock()
		slog.With("op", op).Info("stale load discarded", "seq", seq)
		return nil
	}

	d.products = ps
	d.filtered = slices.Clone(ps)
	d.query = ""
	d.clampPage()
	e := domain.ActivityEvent{Action: domain.ActivityReload, Page: d.page}
	d.mu.Unlock()

	d.emit(ctx, e)
	return nil
}

// Search derives the filtered view as the subsequence of the store
// whose title contains the query case-insensitively. An empty query
// restores the full store. The current page resets to 1.
func (d *Dashboard) Search(ctx context.Context, query string) {
	d.mu.Lock()
	d.query = query
	d.deriveFiltered()
	d.page = 1
	d.mu.Unlock()

	d.emit(ctx, domain.ActivityEvent{
		Action: domain.ActivitySearch, Query: query, Page: 1,
	})
}

func (d *Dashboard) deriveFiltered() {
	if d.query == "" {
		d.filtered = slices.Clone(d.products)
		return
	}

	q := strings.ToLower(d.query)
	d.filtered = nil
	for _, p := range d.products {
		if strings.Contains(strings.ToLower(p.Title), q) {
			d.filtered = append(d.filtered, p)
		}
	}
}

// SortBy sorts the filtered view in place. Selecting the active field
// again flips the direction, a new field starts ascending. The current
// page is preserved. The sort is stable: ties keep their relative
// order.
func (d *Dashboard) SortBy(ctx context.Context, field domain.SortField) {
	d.mu.Lock()
	if d.sortF == field {
		d.sortDir = toggled(d.sortDir)
	} else {
		d.sortF = field
		d.sortDir = domain.SortAsc
	}

	sortF, sortDir := d.sortF, d.sortDir
	slices.SortStableFunc(d.filtered, func(a, b domain.Product) int {
		return compare(a, b, sortF, sortDir)
	})
	page := d.page
	d.mu.Unlock()

	d.emit(ctx, domain.ActivityEvent{
		Action: domain.ActivitySort, Query: string(field), Page: page,
	})
}

func toggled(dir domain.SortDirection) domain.SortDirection {
	if dir == domain.SortAsc {
		return domain.SortDesc
	}
	return domain.SortAsc
}

// compare is a three-way comparison dispatching on the field type:
// price compares numerically, every other field compares as a
// case-insensitive string. NaN prices sort last in either direction.
func compare(a, b domain.Product, field domain.SortField, dir domain.SortDirection) int {
	var c int
	if field == domain.SortByPrice {
		aNaN, bNaN := math.IsNaN(a.Price), math.IsNaN(b.Price)
		switch {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return 1
		case bNaN:
			return -1
		}
		switch {
		case a.Price < b.Price:
			c = -1
		case a.Price > b.Price:
			c = 1
		}
	} else {
		c = strings.Compare(stringKey(a, field), stringKey(b, field))
	}

	if dir == domain.SortDesc {
		c = -c
	}
	return c
}

func stringKey(p domain.Product, field domain.SortField) string {
	var s string
	switch field {
	case domain.SortByID:
		s = strconv.FormatInt(p.ID, 10)
	case domain.SortByCategory:
		s = p.CategoryName()
	default:
		s = p.Title
	}
	return strings.ToLower(s)
}

// SetPage moves to page n, clamped to the valid range.
func (d *Dashboard) SetPage(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.page = n
	d.clampPage()
}

// SetPageSize changes the page size and resets the current page to 1.
func (d *Dashboard) SetPageSize(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n < 1 {
		n = DefaultPageSize
	}
	d.pageSize = n
	d.page = 1
}

func (d *Dashboard) clampPage() {
	total := d.totalPages()
	if d.page > total {
		d.page = total
	}
	if d.page < 1 {
		d.page = 1
	}
}

func (d *Dashboard) totalPages() int {
	total := (len(d.filtered) + d.pageSize - 1) / d.pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// View snapshots the current page window and pagination metadata.
func (d *Dashboard) View() domain.DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	return domain.DashboardView{
		Products: slices.Clone(d.pageWindow()),
		State: domain.ViewState{
			Query:         d.query,
			SortField:     d.sortF,
			SortDirection: d.sortDir,
			Page:          d.page,
			PageSize:      d.pageSize,
		},
		Meta:          d.pageMeta(),
		TotalFiltered: len(d.filtered),
	}
}

// pageWindow returns the slice of the filtered view for the current
// page, clipped to the available length. Callers must hold the mutex.
func (d *Dashboard) pageWindow() []domain.Product {
	start := (d.page - 1) * d.pageSize
	if start >= len(d.filtered) {
		return nil
	}
	end := min(start+d.pageSize, len(d.filtered))
	return d.filtered[start:end]
}

// pageMeta computes the pagination controls: previous and next plus up
// to five numbered links centered on the current page. Pages stays
// empty when a single page exists, no pagination is rendered then.
func (d *Dashboard) pageMeta() domain.PageMeta {
	total := d.totalPages()
	m := domain.PageMeta{Current: d.page, TotalPages: total}

	if total <= 1 {
		return m
	}

	first := max(1, d.page-2)
	last := min(total, d.page+2)
	for i := first; i <= last; i++ {
		m.Pages = append(m.Pages, i)
	}
	m.HasPrev = d.page > 1
	m.HasNext = d.page < total

	return m
}

// Detail looks up a product in the full store by id.
func (d *Dashboard) Detail(id int64) (domain.Product, error) {
	const op = "Dashboard.Detail"

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %w: id %d", op, domain.ErrProductNotFound, id)
}

// Create submits a new product to the remote catalog and, on success,
// reloads the store wholesale. On failure the entered draft stays with
// the caller for resubmission.
func (d *Dashboard) Create(ctx context.Context, draft domain.ProductDraft) error {
	const op = "Dashboard.Create"

	created, err := d.catalog.CreateProduct(ctx, draft)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	d.emit(ctx, domain.ActivityEvent{
		Action: domain.ActivityCreate, ProductID: created.ID,
	})
	d.reload(ctx, op)
	return nil
}

// Update submits changed fields for an existing product and, on
// success, reloads the store wholesale.
func (d *Dashboard) Update(ctx context.Context, id int64, draft domain.ProductDraft) error {
	const op = "Dashboard.Update"

	_, err := d.catalog.UpdateProduct(ctx, id, draft)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	d.emit(ctx, domain.ActivityEvent{
		Action: domain.ActivityUpdate, ProductID: id,
	})
	d.reload(ctx, op)
	return nil
}

// reload refreshes the store after a successful write. A refresh
// failure keeps the stale store, the write itself already succeeded.
func (d *Dashboard) reload(ctx context.Context, op string) {
	if err := d.Load(ctx); err != nil {
		slog.With("op", op).Warn("failed to reload after write", "err", err)
	}
}

// emit publishes an activity event best-effort. Emission failures are
// logged and never surface to the user.
func (d *Dashboard) emit(ctx context.Context, e domain.ActivityEvent) {
	const op = "Dashboard.emit"

	if d.activity == nil {
		return
	}

	e.OccurredAt = time.Now()
	if err := d.activity.ProduceActivity(ctx, e); err != nil {
		slog.With("op", op).Warn("failed to produce activity event", "err", err)
	}
}
