package files

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/files", h.Upload)
	r.GET("/files/:file_id", h.GetFile)
	r.GET("/files/:file_id/content", h.Download)
}

// multipart/form-data: file, user_id, file_type(任意)
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "file is required"))
		return
	}
	uploadedBy, err := strconv.ParseUint(c.PostForm("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "user_id must be a number"))
		return
	}
	kind := c.PostForm("file_type")

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, webapi.Err(webapi.CodeInternal, "cannot open upload"))
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, webapi.Err(webapi.CodeInternal, "cannot read upload"))
		return
	}

	res, err := h.svc.Save(c.Request.Context(), content, fh.Filename, uploadedBy, kind)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.Header("Location", "/files/"+strconv.FormatUint(res.FileID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("file_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "file_id must be a number"))
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("file_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, webapi.Err(webapi.CodeInvalidArgument, "file_id must be a number"))
		return
	}
	rec, err := h.svc.GetRecord(c.Request.Context(), id)
	if err != nil {
		c.JSON(webapi.ToHTTPStatus(err), webapi.ErrFrom(err))
		return
	}
	c.Header("Content-Type", rec.MimeType)
	c.FileAttachment(rec.FilePath, rec.OriginalFilename)
}
