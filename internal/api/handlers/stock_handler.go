package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/service"
)

type StockHandler struct {
	service *service.StockService
}

func NewStockHandler(service *service.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// parseFilter reads the filter dimensions and search term from the
// query string. Absent dimensions keep their current session value.
func (h *StockHandler) parseFilter(c *gin.Context) domain.FilterState {
	state := h.service.Filters()

	for _, d := range domain.Dimensions {
		if v, ok := c.GetQuery(string(d)); ok {
			state.SetValue(d, strings.TrimSpace(v))
		}
	}
	if v, ok := c.GetQuery("search"); ok {
		state.Search = strings.TrimSpace(v)
	}

	return state
}

func (h *StockHandler) applyView(c *gin.Context) domain.FilterState {
	effective := h.service.ApplyFilters(h.parseFilter(c))

	// With an explicit order the sort is idempotent; without one the
	// sort param follows column-click semantics, where repeating the
	// same column flips the direction.
	if col := strings.TrimSpace(c.Query("sort")); col != "" {
		switch strings.ToLower(strings.TrimSpace(c.Query("order"))) {
		case "asc":
			h.service.SetSort(col, false)
		case "desc":
			h.service.SetSort(col, true)
		default:
			h.service.SortBy(col)
		}
	}

	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 {
		h.service.SetPageSize(size)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		h.service.SetPage(page)
	}

	return effective
}

// GetItems returns one page of the filtered, sorted grouped rows.
func (h *StockHandler) GetItems(c *gin.Context) {
	effective := h.applyView(c)
	page := h.service.Page()

	c.JSON(http.StatusOK, gin.H{
		"filters": effective,
		"page":    page,
	})
}

// GetOptions returns the selectable values per filter dimension for the
// current selection.
func (h *StockHandler) GetOptions(c *gin.Context) {
	effective := h.service.ApplyFilters(h.parseFilter(c))

	c.JSON(http.StatusOK, gin.H{
		"filters": effective,
		"options": h.service.Options(),
	})
}

// GetSummary returns the header rollup over the filtered rows.
func (h *StockHandler) GetSummary(c *gin.Context) {
	h.service.ApplyFilters(h.parseFilter(c))
	c.JSON(http.StatusOK, h.service.Summary(c.Request.Context()))
}

// GetTreemap returns quantity per category over the filtered rows.
func (h *StockHandler) GetTreemap(c *gin.Context) {
	h.service.ApplyFilters(h.parseFilter(c))
	c.JSON(http.StatusOK, gin.H{"nodes": h.service.Treemap()})
}

// Reload fetches the latest snapshot and swaps the dataset.
func (h *StockHandler) Reload(c *gin.Context) {
	result, err := h.service.Reload(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Reload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
