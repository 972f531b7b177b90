package api

import (
	"net/http"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p := &domain.Project{Name: req.Name, Owner: req.Owner}
	if err := s.projects.Create(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(p))
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.projects.List(c.Request.Context(), c.Query("owner"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"projects": out})
}

func (s *Server) handleGetProject(c *gin.Context) {
	p, err := s.projects.GetByID(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(p))
}

func (s *Server) handleRenameProject(c *gin.Context) {
	var req renameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := s.projects.Rename(c.Request.Context(), c.Param("project_id"), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(p))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.projects.Delete(c.Request.Context(), c.Param("project_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteScript(c *gin.Context) {
	n, err := s.projects.DeleteScript(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *Server) handleDeleteStoryboard(c *gin.Context) {
	n, err := s.projects.DeleteFrames(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *Server) handleListPages(c *gin.Context) {
	pages, err := s.pages.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]pageResponse, len(pages))
	for i, p := range pages {
		out[i] = toPageResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

func (s *Server) handleListFrames(c *gin.Context) {
	frames, err := s.frames.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"frames": toFrameList(frames)})
}

func (s *Server) handleExportStoryboard(c *gin.Context) {
	sb, err := s.frames.ExportStoryboard(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sb)
}
