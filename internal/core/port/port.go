package port

import (
	"context"

	"github.com/sanghtth/product-dashboard/internal/core/domain"
)

// ProductCatalog is the remote gateway to the external products API.
// All calls are single attempts, filtering and paging never delegate
// to the server.
type ProductCatalog interface {
	ListProducts(context.Context) ([]domain.Product, error)
	CreateProduct(context.Context, domain.ProductDraft) (domain.Product, error)
	UpdateProduct(context.Context, int64, domain.ProductDraft) (domain.Product, error)
}

// ActivityProducer publishes dashboard user actions to the activity
// stream.
type ActivityProducer interface {
	ProduceActivity(context.Context, domain.ActivityEvent) error
}

// ProductsBrowser drives the read side of the dashboard: loading the
// store and mutating the view state.
type ProductsBrowser interface {
	Load(context.Context) error
	Search(context.Context, string)
	SortBy(context.Context, domain.SortField)
	SetPage(int)
	SetPageSize(int)
	View() domain.DashboardView
	Detail(int64) (domain.Product, error)
}

// ProductEditor drives the create and edit workflows.
type ProductEditor interface {
	Create(context.Context, domain.ProductDraft) error
	Update(context.Context, int64, domain.ProductDraft) error
}

// PageExporter produces downloadable documents from the currently
// visible page window.
type PageExporter interface {
	ExportCSV(context.Context) (domain.FileExport, error)
	PageRows() (page int, header []string, rows [][]string)
}
