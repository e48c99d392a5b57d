package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/attendance/check-in", h.CheckIn)
	r.POST("/attendance/:attendance_id/check-out", h.CheckOut)
	r.GET("/attendance/today", h.GetToday)
	r.GET("/attendance", h.List)
	r.GET("/attendance/stats", h.Stats)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CheckIn(c.Request.Context(), req)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.Header("Location", "/attendance/"+strconv.FormatUint(res.AttendanceID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("attendance_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "attendance_id must be a number"))
		return
	}
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetToday(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	res, err := h.svc.GetToday(c.Request.Context(), userID)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) List(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	limit := atoiDef(c.Query("limit"), DefaultPageLimit)
	items, err := h.svc.List(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Stats(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	res, err := h.svc.Stats(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
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
