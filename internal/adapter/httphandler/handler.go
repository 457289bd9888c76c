package httphandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/sanghtth/product-dashboard/internal/core/port"
	"github.com/xuri/excelize/v2"
)

const maxPageSize = 100

// DashboardHandler renders the dashboard pages and applies view-state
// mutations. The whole page re-renders from state on every request,
// no client-side state is kept.
type DashboardHandler struct {
	browser  port.ProductsBrowser
	editor   port.ProductEditor
	exporter port.PageExporter
}

// NewRouter wires the gin engine: middleware, templates and routes.
func NewRouter(
	browser port.ProductsBrowser,
	editor port.ProductEditor,
	exporter port.PageExporter,
) *gin.Engine {
	h := DashboardHandler{browser, editor, exporter}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	r.SetHTMLTemplate(pageTemplates())

	r.GET("/", h.Index)
	r.POST("/view/search", h.ApplySearch)
	r.POST("/view/sort", h.ApplySort)
	r.POST("/view/page-size", h.SetPageSize)
	r.GET("/view/page/:n", h.GoToPage)
	r.POST("/view/reload", h.Reload)

	r.GET("/products/:id", h.Detail)
	r.GET("/products/:id/edit", h.EditForm)
	r.POST("/products", h.Create)
	r.POST("/products/:id", h.Update)

	r.GET("/export/csv", h.ExportCSV)
	r.GET("/export/xlsx", h.ExportXLSX)

	return r
}

func (h DashboardHandler) Index(c *gin.Context) {
	data := toDashboardData(h.browser.View())
	data.Notice = c.Query("notice")
	data.Alert = c.Query("alert")
	c.HTML(http.StatusOK, "dashboard", data)
}

func (h DashboardHandler) ApplySearch(c *gin.Context) {
	h.browser.Search(c.Request.Context(), c.PostForm("query"))
	redirectHome(c)
}

func (h DashboardHandler) ApplySort(c *gin.Context) {
	field, err := domain.ParseSortField(c.PostForm("field"))
	if err != nil {
		redirectAlert(c, "unknown sort field")
		return
	}
	h.browser.SortBy(c.Request.Context(), field)
	redirectHome(c)
}

func (h DashboardHandler) SetPageSize(c *gin.Context) {
	size, err := strconv.Atoi(c.PostForm("size"))
	if err != nil || size < 1 || size > maxPageSize {
		redirectAlert(c, "invalid page size")
		return
	}
	h.browser.SetPageSize(size)
	redirectHome(c)
}

func (h DashboardHandler) GoToPage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		redirectAlert(c, "invalid page number")
		return
	}
	h.browser.SetPage(n)
	redirectHome(c)
}

func (h DashboardHandler) Reload(c *gin.Context) {
	const op = "DashboardHandler.Reload"

	if err := h.browser.Load(c.Request.Context()); err != nil {
		slog.With("op", op).Error("failed to load products", "err", err)
		redirectAlert(c, "failed to load products")
		return
	}
	redirectHome(c)
}

func (h DashboardHandler) Detail(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "detail", detailData{Product: toRow(p)})
}

func (h DashboardHandler) EditForm(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "edit", editData{ID: p.ID, Form: formFromProduct(p)})
}

func (h DashboardHandler) lookup(c *gin.Context) (domain.Product, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		redirectAlert(c, "invalid product id")
		return domain.Product{}, false
	}

	p, err := h.browser.Detail(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			redirectAlert(c, "product not found")
		} else {
			redirectAlert(c, "failed to open product")
		}
		return domain.Product{}, false
	}
	return p, true
}

// Create submits the create form. On failure the dashboard re-renders
// with the entered values intact so the user can resubmit.
func (h DashboardHandler) Create(c *gin.Context) {
	const op = "DashboardHandler.Create"

	var form productForm
	_ = c.ShouldBind(&form)

	draft, err := form.toDraft()
	if err != nil {
		h.renderCreateFailure(c, form, "price must be a number")
		return
	}

	if err := h.editor.Create(c.Request.Context(), draft); err != nil {
		slog.With("op", op).Error("failed to create product", "err", err)
		h.renderCreateFailure(c, form, "failed to create product")
		return
	}

	redirectNotice(c, "product created")
}

func (h DashboardHandler) renderCreateFailure(c *gin.Context, form productForm, alert string) {
	data := toDashboardData(h.browser.View())
	data.Form = form
	data.Alert = alert
	c.HTML(http.StatusOK, "dashboard", data)
}

// Update submits the edit form. On failure the edit view re-renders
// with the entered values intact.
func (h DashboardHandler) Update(c *gin.Context) {
	const op = "DashboardHandler.Update"

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		redirectAlert(c, "invalid product id")
		return
	}

	var form productForm
	_ = c.ShouldBind(&form)

	draft, err := form.toDraft()
	if err != nil {
		c.HTML(http.StatusOK, "edit", editData{ID: id, Form: form, Alert: "price must be a number"})
		return
	}

	if err := h.editor.Update(c.Request.Context(), id, draft); err != nil {
		slog.With("op", op).Error("failed to update product", "err", err)
		c.HTML(http.StatusOK, "edit", editData{ID: id, Form: form, Alert: "failed to update product"})
		return
	}

	redirectNotice(c, "product updated")
}

func (h DashboardHandler) ExportCSV(c *gin.Context) {
	const op = "DashboardHandler.ExportCSV"

	fe, err := h.exporter.ExportCSV(c.Request.Context())
	if err != nil {
		slog.With("op", op).Error("failed to export csv", "err", err)
		redirectAlert(c, "failed to export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fe.Filename))
	c.Data(http.StatusOK, fe.MIME, fe.Data)
}

// ExportXLSX offers the visible page window as a spreadsheet, same
// columns as the CSV export.
func (h DashboardHandler) ExportXLSX(c *gin.Context) {
	const op = "DashboardHandler.ExportXLSX"

	page, header, rows := h.exporter.PageRows()

	f := excelize.NewFile()
	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		h.xlsxFail(c, op, err)
		return
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			h.xlsxFail(c, op, err)
			return
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			h.xlsxFail(c, op, err)
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.xlsxFail(c, op, err)
		return
	}

	filename := fmt.Sprintf("products_page_%d.xlsx", page)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(
		http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

func (h DashboardHandler) xlsxFail(c *gin.Context, op string, err error) {
	slog.With("op", op).Error("failed to export xlsx", "err", err)
	redirectAlert(c, "failed to export")
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func redirectNotice(c *gin.Context, notice string) {
	c.Redirect(http.StatusSeeOther, "/?notice="+url.QueryEscape(notice))
}

func redirectAlert(c *gin.Context, alert string) {
	c.Redirect(http.StatusSeeOther, "/?alert="+url.QueryEscape(alert))
}
