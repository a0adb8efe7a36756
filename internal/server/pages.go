package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/catalog"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/seo"
)

func (s *Server) meta(page, description string) seo.Meta {
	return seo.Resolve(
		seo.Meta{Title: seo.PageTitle(page, s.site.Title), Description: description},
		seo.Meta{Title: s.site.Title, Description: s.site.Description},
	)
}

// Home page route
func (s *Server) home(c *gin.Context) {
	projects, err := s.catalog.List(c.Request.Context(), "")
	if err != nil {
		s.logger.Error("loading projects", "err", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"meta":  s.meta("Error", ""),
			"error": "Failed to load projects",
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"meta":     s.meta("Home", s.site.Description),
		"site":     s.site,
		"Projects": projects,
		"Kind":     "",
	})
}

// Timeline fragment filtered by ?kind=professional|personal
func (s *Server) projectList(c *gin.Context) {
	kind := c.Query("kind")
	switch kind {
	case "", content.KindProfessional, content.KindPersonal:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown project kind"})
		return
	}

	projects, err := s.catalog.List(c.Request.Context(), kind)
	if err != nil {
		s.logger.Error("listing projects", "kind", kind, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"Projects": projects,
		"Kind":     kind,
	})
}

// Project details modal; mounts its own preview-capable carousel on load.
func (s *Server) projectDetail(c *gin.Context) {
	p, err := s.catalog.Get(c.Request.Context(), c.Param("uid"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"meta":  s.meta("Not found", ""),
			"error": "Project not found",
		})
		return
	}
	if err != nil {
		s.logger.Error("loading project", "uid", c.Param("uid"), "err", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"meta":  s.meta("Error", ""),
			"error": "Failed to load project",
		})
		return
	}

	c.HTML(http.StatusOK, "project-modal.html", gin.H{
		"project": p,
	})
}

// Closing the modal swaps #modal with nothing. The swap runs htmx cleanup,
// which unmounts the carousels inside it.
func (s *Server) closeModal(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", nil)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"carousels": s.mounts.Stats().Active,
	})
}
