package api

import (
	"net/http"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreatePage(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Number < 0 {
		badRequest(c, "number must be greater than 0")
		return
	}
	p := &domain.Page{ProjectID: req.ProjectID, Number: req.Number, Text: req.Text}
	if err := s.pages.Create(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPageResponse(p))
}

func (s *Server) handleGetPage(c *gin.Context) {
	p, err := s.pages.GetByID(c.Request.Context(), c.Param("page_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(p))
}

func (s *Server) handleUpdatePage(c *gin.Context) {
	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := s.pages.UpdateText(c.Request.Context(), c.Param("page_id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(p))
}

func (s *Server) handleDeletePage(c *gin.Context) {
	if err := s.pages.Delete(c.Request.Context(), c.Param("page_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
