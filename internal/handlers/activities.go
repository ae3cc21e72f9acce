package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
)

type Activities struct {
	svc *service.ActivityService
}

func NewActivities(svc *service.ActivityService) *Activities {
	return &Activities{svc: svc}
}

// ListCategories GET /api/v1/categories（软删除的不在里面）
func (h *Activities) ListCategories(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	cats, err := h.svc.ListCategories(c.Request.Context(), vid)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, cats)
}

// CreateCategory POST /api/v1/categories
func (h *Activities) CreateCategory(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.Err(c, http.StatusBadRequest, "bad body")
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), vid, in)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, cat)
}

// UpdateCategory PUT /api/v1/categories/:id
func (h *Activities) UpdateCategory(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.Err(c, http.StatusBadRequest, "bad body")
		return
	}
	cat, err := h.svc.UpdateCategory(c.Request.Context(), vid, c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, cat)
}

// DeleteCategory DELETE /api/v1/categories/:id
// 软删除并级联到分类下的事项，数据不会真的消失
func (h *Activities) DeleteCategory(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), vid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"ok": true})
}

// ListItems GET /api/v1/items?category_id=
func (h *Activities) ListItems(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	items, err := h.svc.ListItems(c.Request.Context(), vid, c.Query("category_id"))
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, items)
}

// CreateItem POST /api/v1/items
func (h *Activities) CreateItem(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var in service.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.Err(c, http.StatusBadRequest, "bad body")
		return
	}
	it, err := h.svc.CreateItem(c.Request.Context(), vid, in)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, it)
}

// UpdateItem PUT /api/v1/items/:id
func (h *Activities) UpdateItem(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var in service.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.Err(c, http.StatusBadRequest, "bad body")
		return
	}
	it, err := h.svc.UpdateItem(c.Request.Context(), vid, c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, it)
}

// DeleteItem DELETE /api/v1/items/:id
func (h *Activities) DeleteItem(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), vid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"ok": true})
}
