package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/content"
)

// AdminStats is the payload of /admin/api/stats.
type AdminStats struct {
	Carousels      Stats `json:"carousels"`
	Projects       int   `json:"projects"`
	Professional   int   `json:"professional"`
	Personal       int   `json:"personal"`
	CardInterval   int64 `json:"card_interval_ms"`
	DetailInterval int64 `json:"detail_interval_ms"`
}

// Admin routes exist only when FOLIO_ADMIN_TOKEN is set.
func (s *Server) adminRoutes(r *gin.Engine) {
	if s.cfg.AdminToken == "" {
		return
	}
	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/api/stats", func(c *gin.Context) {
		ctx := c.Request.Context()
		stats := AdminStats{
			Carousels:      s.mounts.Stats(),
			CardInterval:   s.cfg.CardInterval.Milliseconds(),
			DetailInterval: s.cfg.DetailInterval.Milliseconds(),
		}
		var err error
		if stats.Projects, err = s.catalog.Count(ctx, ""); err == nil {
			if stats.Professional, err = s.catalog.Count(ctx, content.KindProfessional); err == nil {
				stats.Personal, err = s.catalog.Count(ctx, content.KindPersonal)
			}
		}
		if err != nil {
			s.logger.Error("loading admin stats", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Dispose every live carousel, e.g. after swapping content.
	admin.POST("/carousels/reset", func(c *gin.Context) {
		before := s.mounts.Stats().Active
		s.mounts.Close()
		s.logger.Info("admin reset carousels", "disposed", before, "client", hashIP(c.ClientIP(), s.salt))
		c.JSON(http.StatusOK, gin.H{"disposed": before})
	})
}
