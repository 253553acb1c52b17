package relay

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"sealbox/internal/domain"
	"sealbox/internal/services/directory"
	"sealbox/internal/services/mailbox"
	"sealbox/internal/services/session"
)

// Server maps the wire surface onto the directory, session and mailbox
// services. It owns envelope encoding and status translation; the services
// stay transport-free.
type Server struct {
	dir      *directory.Service
	sessions *session.Manager
	mail     *mailbox.Service
	log      *slog.Logger
}

// NewServer wires the handler set.
func NewServer(dir *directory.Service, sessions *session.Manager, mail *mailbox.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{dir: dir, sessions: sessions, mail: mail, log: log}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/signup", s.handleSignup)
	e.POST("/prelogin", s.handlePrelogin)
	e.POST("/login", s.handleLogin)
	e.POST("/send", s.handleSend, s.sessionAuth)
	e.POST("/pull", s.handlePull, s.sessionAuth)
}

// sessionAuth resolves the session secret header to a username and stores it
// on the request context.
func (s *Server) sessionAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := c.Request().Header.Get(domain.SessionSecretHeader)
		username, err := s.sessions.Authenticate(secret)
		if err != nil {
			return s.fail(c, err)
		}
		c.Set("username", username)
		return next(c)
	}
}

func (s *Server) handleSignup(c echo.Context) error {
	var req domain.SignupRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, domain.ErrValidation)
	}
	if _, err := s.dir.Register(req.Username, req.PublicKey); err != nil {
		return s.fail(c, err)
	}
	s.log.Info("user registered", "username", req.Username)
	return c.JSON(http.StatusOK, domain.Envelope{Status: http.StatusOK})
}

func (s *Server) handlePrelogin(c echo.Context) error {
	var req domain.PreloginRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, domain.ErrValidation)
	}
	encrypted, err := s.sessions.BeginChallenge(req.Username)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, domain.PreloginResponse{
		Envelope:  domain.Envelope{Status: http.StatusOK},
		Encrypted: encrypted,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, domain.ErrValidation)
	}
	secret, err := s.sessions.VerifyChallenge(req.Username, req.Decrypted)
	if err != nil {
		return s.fail(c, err)
	}
	s.log.Info("login verified", "username", req.Username)
	return c.JSON(http.StatusOK, domain.LoginResponse{
		Envelope: domain.Envelope{Status: http.StatusOK},
		Secret:   secret,
	})
}

func (s *Server) handleSend(c echo.Context) error {
	from := c.Get("username").(string)
	var req domain.SendRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, domain.ErrValidation)
	}
	if err := s.mail.Enqueue(from, req.ToUsername, req.Text, req.ClientTime); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, domain.Envelope{Status: http.StatusOK})
}

func (s *Server) handlePull(c echo.Context) error {
	username := c.Get("username").(string)
	pending, err := s.mail.DrainFor(username)
	if err != nil {
		return s.fail(c, err)
	}
	if pending == nil {
		pending = []domain.PendingMessage{}
	}
	return c.JSON(http.StatusOK, domain.PullResponse{
		Envelope: domain.Envelope{Status: http.StatusOK},
		Pending:  pending,
	})
}

// fail writes the error envelope. Client errors carry only their short
// message; anything unexpected is logged in full and reported generically.
func (s *Server) fail(c echo.Context, err error) error {
	status := domain.StatusOf(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		message = "internal error"
	}
	return c.JSON(status, domain.Envelope{Status: status, Message: message})
}
