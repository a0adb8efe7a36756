// Package server is the web host for the portfolio. Pages are rendered with
// html/template through gin and enhanced with HTMX; every carousel gesture is
// a request that invokes the carousel engine, and state changes, including
// auto-advance, are pushed back over Server-Sent Events.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/animation"
	"github.com/Zachkp/folio/internal/carousel"
	"github.com/Zachkp/folio/internal/catalog"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 5 * time.Second
)

// Options wires a Server.
type Options struct {
	Site       *content.Site
	Catalog    *catalog.Catalog
	Config     *config.Config
	Logger     *log.Logger
	Clock      carousel.Clock      // defaults to carousel.SystemClock()
	Animations *animation.Registry // defaults to animation.Init()
}

type Server struct {
	site       *content.Site
	catalog    *catalog.Catalog
	cfg        *config.Config
	logger     *log.Logger
	animations *animation.Registry
	mounts     *Mounts
	tmpl       *template.Template
	router     *gin.Engine
	salt       string
}

func New(opts Options) (*Server, error) {
	if opts.Site == nil || opts.Catalog == nil || opts.Config == nil {
		return nil, errors.New("server: site, catalog and config are required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = carousel.SystemClock()
	}
	if opts.Animations == nil {
		opts.Animations = animation.Init()
	}

	s := &Server{
		site:       opts.Site,
		catalog:    opts.Catalog,
		cfg:        opts.Config,
		logger:     opts.Logger,
		animations: opts.Animations,
		mounts:     NewMounts(opts.Clock, opts.Config.MountTTL, opts.Config.MaxCarousels, opts.Logger),
		salt:       uuid.NewString(),
	}

	tmpl, err := template.New("").Funcs(s.funcs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.tmpl = tmpl

	if opts.Config.Mode != "" {
		gin.SetMode(opts.Config.Mode)
	}
	s.router = gin.New()
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.router.SetHTMLTemplate(tmpl)
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	if dir := filepath.Join(s.cfg.StaticDir, "assets"); isDir(dir) {
		r.Static("/assets", dir)
	}
	if favicon := filepath.Join(s.cfg.StaticDir, "favicon.ico"); fileExists(favicon) {
		r.StaticFile("/favicon.ico", favicon)
	}

	r.GET("/", s.home)
	r.GET("/healthz", s.health)
	r.GET("/projects", s.projectList)
	r.GET("/projects/:uid", s.projectDetail)
	r.GET("/modal/close", s.closeModal)
	r.POST("/projects/:uid/carousel", s.mountCarousel)

	c := r.Group("/carousels/:id")
	c.GET("", s.carouselFragment)
	c.DELETE("", s.unmountCarousel)
	c.POST("/unmount", s.unmountCarousel) // navigator.sendBeacon can only POST
	c.POST("/next", s.carouselNext)
	c.POST("/previous", s.carouselPrevious)
	c.POST("/goto/:index", s.carouselGoto)
	c.POST("/overlay", s.openOverlay)
	c.DELETE("/overlay", s.closeOverlay)
	c.GET("/events", s.carouselEvents)

	s.adminRoutes(r)
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Mounts() *Mounts { return s.mounts }

// Run serves on addr until ctx is cancelled. Live carousels are disposed
// before the listener shuts down so their event streams end.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.mounts.Run(sweepCtx, sweepInterval)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving portfolio", "addr", addr, "projects", len(s.site.Projects))

	select {
	case err := <-errc:
		s.mounts.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.mounts.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"animate": s.animations.Attrs,
		"inc":     func(i int) int { return i + 1 },
		"ms":      func(d time.Duration) int64 { return d.Milliseconds() },
		"indexes": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
		"upper": strings.ToUpper,
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
