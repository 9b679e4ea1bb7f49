// Package heroes serves the browser over HTTP. Every list request starts
// from a default view state and applies the URL parameters on top, so any
// address the browser syncs to can be replayed here.
package heroes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"herodex/internal/catalog"
	"herodex/internal/dataset"
	"herodex/internal/options"
	"herodex/internal/query"
	"herodex/internal/urlcodec"
	"herodex/internal/viewstate"
)

type Handler struct {
	Data    *dataset.Dataset
	Options options.Index
}

func NewHandler(data *dataset.Dataset, idx options.Index) *Handler {
	return &Handler{Data: data, Options: idx}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/heroes", h.list)        // GET /heroes?q=&field=&sort=...
	r.GET("/heroes/:id", h.getByID) // GET /heroes/70
	r.GET("/options", h.options) // GET /options?category=race&value=Human
	r.GET("/fields", h.fields)
}

// ListResponse is one evaluated page plus the state that produced it.
type ListResponse struct {
	Items     []dataset.Record `json:"items"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	PageCount int              `json:"page_count"`
	PageSize  string           `json:"page_size"`
	State     viewstate.State  `json:"state"`
	Query     string           `json:"query"`
}

func (h *Handler) list(c *gin.Context) {
	st := viewstate.New()
	urlcodec.FromValues(c.Request.URL.Query()).Apply(st)

	res := query.Evaluate(h.Data.Records(), st)
	c.JSON(http.StatusOK, ListResponse{
		Items:     res.Items,
		Total:     res.Total,
		Page:      res.Page,
		PageCount: res.PageCount,
		PageSize:  st.PageSize.String(),
		State:     *st,
		Query:     urlcodec.Encode(st),
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}
	r, ok := h.Data.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) options(c *gin.Context) {
	if cat := c.Query("category"); cat != "" {
		info, ok := catalog.Lookup(catalog.Category(cat))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		if v, ok := c.GetQuery("value"); ok {
			c.JSON(http.StatusOK, gin.H{
				"category": info.Category,
				"value":    v,
				"known":    h.Options.Has(info.Category, v),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"category": info.Category,
			"label":    info.Label,
			"values":   h.Options.Values(info.Category),
		})
		return
	}
	if _, ok := c.GetQuery("value"); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value needs a category"})
		return
	}
	c.JSON(http.StatusOK, h.Options)
}

func (h *Handler) fields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sort":       catalog.SortFields,
		"table":      catalog.TableFields,
		"groups":     catalog.Groups,
		"categories": catalog.Categories,
	})
}
