package api

import (
	"net/http"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/service"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateFrame(c *gin.Context) {
	var req createFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if *req.StartTime >= *req.EndTime {
		badRequest(c, "start_time must be less than end_time")
		return
	}
	if req.Number != nil && *req.Number <= 0 {
		badRequest(c, "number must be greater than 0")
		return
	}

	f, err := s.frames.Create(c.Request.Context(), service.CreateFrameInput{
		ProjectID:     req.ProjectID,
		StartTime:     *req.StartTime,
		EndTime:       *req.EndTime,
		Description:   req.Description,
		Number:        req.Number,
		ConnectedPage: req.Connected,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFrameResponse(f))
}

func (s *Server) handleGetFrame(c *gin.Context) {
	f, err := s.frames.GetByID(c.Request.Context(), c.Param("frame_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFrameResponse(f))
}

func (s *Server) handleDeleteFrame(c *gin.Context) {
	if err := s.frames.Delete(c.Request.Context(), c.Param("frame_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindNumber reads the target position of a reorder request.
func bindNumber(c *gin.Context) (int, bool) {
	var req numberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return 0, false
	}
	if *req.Number <= 0 {
		badRequest(c, "number must be greater than 0")
		return 0, false
	}
	return *req.Number, true
}

func (s *Server) handleReorderFrame(c *gin.Context) {
	number, ok := bindNumber(c)
	if !ok {
		return
	}
	order, err := s.frames.Reorder(c.Request.Context(), c.Param("project_id"), c.Param("frame_id"), number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"frames": toFrameList(order)})
}

func (s *Server) handleReorderFrameByID(c *gin.Context) {
	number, ok := bindNumber(c)
	if !ok {
		return
	}
	order, err := s.frames.ReorderByFrameID(c.Request.Context(), c.Param("frame_id"), number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"frames": toFrameList(order)})
}

// respondFrame writes the result of a single-frame edit.
func respondFrame(c *gin.Context, f *domain.Frame, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFrameResponse(f))
}

func (s *Server) handleSetStartTime(c *gin.Context) {
	var req startTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := s.frames.SetStartTime(c.Request.Context(), c.Param("frame_id"), *req.StartTime)
	respondFrame(c, f, err)
}

func (s *Server) handleSetEndTime(c *gin.Context) {
	var req endTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := s.frames.SetEndTime(c.Request.Context(), c.Param("frame_id"), *req.EndTime)
	respondFrame(c, f, err)
}

func (s *Server) handleSetDescription(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := s.frames.SetDescription(c.Request.Context(), c.Param("frame_id"), req.Description)
	respondFrame(c, f, err)
}

func (s *Server) handleConnectPage(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := s.frames.ConnectPage(c.Request.Context(), c.Param("frame_id"), req.PageID)
	respondFrame(c, f, err)
}

func (s *Server) handleDisconnectPage(c *gin.Context) {
	f, err := s.frames.DisconnectPage(c.Request.Context(), c.Param("frame_id"))
	respondFrame(c, f, err)
}

func (s *Server) handleUploadImage(c *gin.Context) {
	header, err := c.FormFile("picture")
	if err != nil {
		badRequest(c, "multipart field \"picture\" is required")
		return
	}
	if header.Size > s.config.MaxUploadBytes {
		abortWithError(c, http.StatusRequestEntityTooLarge, "image is too large")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	f, err := s.frames.UploadImage(c.Request.Context(), c.Param("frame_id"), file)
	respondFrame(c, f, err)
}

func (s *Server) handleGetImage(c *gin.Context) {
	path, err := s.frames.ImagePath(c.Request.Context(), c.Param("frame_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.File(path)
}

func (s *Server) handleDeleteImage(c *gin.Context) {
	if err := s.frames.DeleteImage(c.Request.Context(), c.Param("frame_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
