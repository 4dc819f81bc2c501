package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
	"github.com/perkhub/loyalty/internal/service"
)

type vendorHandler struct {
	vendors *service.VendorService
}

type vendorRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *vendorHandler) create(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeMissingInput, "invalid request body"))
		return
	}

	vendor, err := h.vendors.Create(c.Request.Context(), req.Name, model.VendorType(req.Type))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vendor)
}

func (h *vendorHandler) list(c *gin.Context) {
	vendors, err := h.vendors.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if vendors == nil {
		vendors = []model.Vendor{}
	}
	c.JSON(http.StatusOK, gin.H{"data": vendors})
}

// view serves the connection-style paginated surface.
func (h *vendorHandler) view(c *gin.Context) {
	var args pagination.Args
	if raw, ok := c.GetQuery("first"); ok {
		first, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, apperr.New(apperr.CodePagination, "Invalid first"))
			return
		}
		args.First = &first
	}
	if raw, ok := c.GetQuery("after"); ok {
		args.After = &raw
	}

	conn, err := h.vendors.List(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": conn})
}

func (h *vendorHandler) get(c *gin.Context) {
	vendor, err := h.vendors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, vendor)
}

func (h *vendorHandler) update(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeMissingInput, "invalid request body"))
		return
	}

	if _, err := h.vendors.Update(c.Request.Context(), c.Param("id"), req.Name, model.VendorType(req.Type)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *vendorHandler) remove(c *gin.Context) {
	deleted, err := h.vendors.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		writeError(c, apperr.Newf(apperr.CodeVendorNotFound, "vendor %s not found", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, true)
}
