package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/activity", h.Recent)
	r.GET("/activity/summary", h.Summary)
}

func (h *Handler) Recent(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	limit := DefaultFeedLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	items, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Summary(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	res, err := h.svc.GetSummary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
