package tasklogs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/tasks", h.CreateTask)
	r.GET("/tasks", h.ListTasks)
	r.GET("/tasks/:task_id", h.GetTask)
	r.PATCH("/tasks/:task_id", h.UpdateTask)
	r.DELETE("/tasks/:task_id", h.DeleteTask)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.Header("Location", "/tasks/"+strconv.FormatUint(res.TaskID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	var taskDate *string
	if v := c.Query("date"); v != "" {
		taskDate = &v
	}
	limit := atoiDef(c.Query("limit"), DefaultPageLimit)
	items, err := h.svc.ListForUser(c.Request.Context(), userID, taskDate, limit)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "task_id must be a number"))
		return
	}
	res, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "task_id must be a number"))
		return
	}
	var req UpdateTaskRequest
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

func (h *Handler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "task_id must be a number"))
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
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
