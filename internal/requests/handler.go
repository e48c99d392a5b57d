package requests

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/requests", h.CreateRequest)
	r.GET("/requests", h.ListRequests)
	r.GET("/requests/:request_id", h.GetRequest)
	r.PATCH("/requests/:request_id", h.UpdateRequest)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.Header("Location", "/requests/"+strconv.FormatUint(res.RequestID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListRequests(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	limit := atoiDef(c.Query("limit"), DefaultPageLimit)
	items, err := h.svc.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "request_id must be a number"))
		return
	}
	res, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "request_id must be a number"))
		return
	}
	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}
