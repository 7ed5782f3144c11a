// Package web serves the landing page as HTML: the themed navbar, the theme
// toggle and the contact form, all backed by the same core as the terminal UI.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	g "maragu.dev/gomponents"

	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/logger"
	"github.com/balkashynov/landing/internal/theme"
)

// FlowFactory builds a submission flow reporting to notifier. The server
// creates one flow per request so each response gets its own notification.
type FlowFactory func(notifier contact.Notifier) *contact.Flow

// Server is the HTTP surface
type Server struct {
	echo    *echo.Echo
	pref    *theme.Preference
	newFlow FlowFactory
	log     *logger.Logger
}

// NewServer wires routes and middleware
func NewServer(pref *theme.Preference, newFlow FlowFactory, log *logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, pref: pref, newFlow: newFlow, log: log}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.WithFields(map[string]any{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Debug("request")
			return nil
		},
	}))

	e.GET("/", s.handleIndex)
	e.POST("/theme", s.handleThemeToggle)
	e.POST("/contact", s.handleContact)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.With("addr", addr).Info("serving landing page")
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return s.echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(c echo.Context) error {
	return render(c, http.StatusOK, PageData{Theme: s.pref.Current()})
}

func (s *Server) handleThemeToggle(c echo.Context) error {
	if _, err := s.pref.Toggle(); err != nil {
		// The session keeps the new theme even if it could not be saved
		s.log.Error(err, "theme toggle not persisted")
	}
	return c.Redirect(http.StatusSeeOther, "/#contact-us")
}

func (s *Server) handleContact(c echo.Context) error {
	values := map[string]string{
		contact.FieldName:    c.FormValue(contact.FieldName),
		contact.FieldEmail:   c.FormValue(contact.FieldEmail),
		contact.FieldMessage: c.FormValue(contact.FieldMessage),
	}

	notice := &toastNotifier{}
	ev := contact.NewFormEvent(values, nil)
	flow := s.newFlow(notice)

	// The relay's verdict is reported through the toast, so the page is
	// rendered with 200 either way.
	_ = flow.Submit(c.Request().Context(), ev)

	return render(c, http.StatusOK, PageData{
		Theme: s.pref.Current(),
		Toast: notice.toast(),
		Form:  ev.Fields(),
	})
}

func render(c echo.Context, status int, data PageData) error {
	return renderNode(c, status, Page(data))
}

func renderNode(c echo.Context, status int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response())
}

// toastNotifier keeps the last notification for the rendered page
type toastNotifier struct {
	mu   sync.Mutex
	last *Toast
}

func (n *toastNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = &Toast{Success: true, Text: message}
}

func (n *toastNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = &Toast{Success: false, Text: message}
}

func (n *toastNotifier) toast() *Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
