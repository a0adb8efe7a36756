package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/carousel"
	"github.com/Zachkp/folio/internal/catalog"
)

const sseHeartbeat = 15 * time.Second

// carouselView is what the carousel templates render.
type carouselView struct {
	ID          string
	ProjectUID  string
	Title       string
	Profile     string
	AutoAdvance time.Duration
	Images      []string
	State       carousel.State
}

func newCarouselView(m *Mount, st carousel.State) carouselView {
	engine := m.Engine()
	return carouselView{
		ID:          m.ID,
		ProjectUID:  m.Project.UID,
		Title:       m.Project.Title,
		Profile:     m.Profile,
		AutoAdvance: engine.Options().AutoAdvance,
		Images:      engine.Images(),
		State:       st,
	}
}

func (s *Server) profileOptions(profile string) (carousel.Options, bool) {
	switch profile {
	case "", ProfileCard:
		return carousel.Options{AutoAdvance: s.cfg.CardInterval}, true
	case ProfileDetail:
		return carousel.Options{AutoAdvance: s.cfg.DetailInterval, Preview: true}, true
	}
	return carousel.Options{}, false
}

// POST /projects/:uid/carousel?profile=card|detail
func (s *Server) mountCarousel(c *gin.Context) {
	profile := c.DefaultQuery("profile", ProfileCard)
	opts, ok := s.profileOptions(profile)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown carousel profile"})
		return
	}

	p, err := s.catalog.Get(c.Request.Context(), c.Param("uid"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		s.logger.Error("loading project", "uid", c.Param("uid"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		return
	}

	m, err := s.mounts.Mount(p, profile, opts)
	if errors.Is(err, ErrTooManyMounts) {
		s.logger.Warn("carousel mount refused", "uid", p.UID, "client", hashIP(c.ClientIP(), s.salt), "err", err)
		c.Header("Retry-After", strconv.Itoa(int(sweepInterval.Seconds())))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many carousels, try again later"})
		return
	}
	if err != nil {
		s.logger.Error("mounting carousel", "uid", p.UID, "err", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": carousel.CodeOf(err)})
		return
	}
	c.HTML(http.StatusOK, "carousel.html", newCarouselView(m, m.Engine().State()))
}

// lookup resolves :id or writes a 404.
func (s *Server) lookup(c *gin.Context) (*Mount, bool) {
	m, ok := s.mounts.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carousel not found"})
		return nil, false
	}
	return m, true
}

func (s *Server) renderBody(c *gin.Context, m *Mount, st carousel.State) {
	c.HTML(http.StatusOK, "carousel-body.html", newCarouselView(m, st))
}

func (s *Server) carouselFragment(c *gin.Context) {
	if m, ok := s.lookup(c); ok {
		s.renderBody(c, m, m.Engine().State())
	}
}

func (s *Server) carouselNext(c *gin.Context) {
	if m, ok := s.lookup(c); ok {
		s.renderBody(c, m, m.Engine().Next())
	}
}

func (s *Server) carouselPrevious(c *gin.Context) {
	if m, ok := s.lookup(c); ok {
		s.renderBody(c, m, m.Engine().Previous())
	}
}

func (s *Server) carouselGoto(c *gin.Context) {
	m, ok := s.lookup(c)
	if !ok {
		return
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	st, err := m.Engine().Goto(i)
	if err != nil {
		s.logger.Warn("carousel goto rejected", "id", m.ID, "index", i, "err", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": carousel.CodeOf(err)})
		return
	}
	s.renderBody(c, m, st)
}

func (s *Server) openOverlay(c *gin.Context) {
	m, ok := s.lookup(c)
	if !ok {
		return
	}
	st, err := m.Engine().OpenOverlay()
	if err != nil {
		s.logger.Warn("carousel overlay rejected", "id", m.ID, "err", err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": carousel.CodeOf(err)})
		return
	}
	s.renderBody(c, m, st)
}

func (s *Server) closeOverlay(c *gin.Context) {
	if m, ok := s.lookup(c); ok {
		s.renderBody(c, m, m.Engine().CloseOverlay())
	}
}

// DELETE /carousels/:id, sent when the view holding the carousel goes away.
func (s *Server) unmountCarousel(c *gin.Context) {
	if !s.mounts.Unmount(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carousel not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /carousels/:id/events streams the rendered carousel body on every
// state change until the client leaves or the carousel is unmounted.
func (s *Server) carouselEvents(c *gin.Context) {
	m, ok := s.lookup(c)
	if !ok {
		return
	}
	engine := m.Engine()

	// Coalesce bursts: the stream always renders the latest state.
	changed := make(chan struct{}, 1)
	cancel := engine.Subscribe(func(carousel.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	var lastSeq uint64
	send := func(st carousel.State) bool {
		if lastSeq != 0 && st.Seq <= lastSeq {
			return true
		}
		var buf bytes.Buffer
		if err := s.tmpl.ExecuteTemplate(&buf, "carousel-body.html", newCarouselView(m, st)); err != nil {
			s.logger.Error("rendering carousel event", "id", m.ID, "err", err)
			return false
		}
		c.SSEvent("carousel", buf.String())
		c.Writer.Flush()
		lastSeq = st.Seq
		s.mounts.Touch(m.ID)
		return true
	}

	if !send(engine.State()) {
		return
	}

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-engine.Done():
			return
		case <-changed:
			if !send(engine.State()) {
				return
			}
		case <-heartbeat.C:
			s.mounts.Touch(m.ID)
			c.SSEvent("ping", strconv.FormatInt(time.Now().Unix(), 10))
			c.Writer.Flush()
		}
	}
}
