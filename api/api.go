package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/m0rozov/versetrack/api/auth"
	"github.com/m0rozov/versetrack/api/handler"
	"github.com/m0rozov/versetrack/config"
	"github.com/m0rozov/versetrack/database"
	"github.com/m0rozov/versetrack/web"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        *database.Client
}

func New(cfg *config.Config, db *database.Client, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	engine.SetHTMLTemplate(web.Templates())

	s := &Server{
		cfg:       cfg,
		ginEngine: engine,
		db:        db,
	}
	s.setupRoutes()
	return s
}

// ServeHTTP dispatches a request to the router. It makes the server
// usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ginEngine.ServeHTTP(w, r)
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.Session.Key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.Session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("versetrack_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()

	h := handler.New(s.db)

	s.ginEngine.GET("/", auth.LoadUser(), h.Home)
	s.ginEngine.GET("/register", h.RegisterPage)
	s.ginEngine.POST("/register", h.Register)
	s.ginEngine.GET("/login", h.LoginPage)
	s.ginEngine.POST("/login", h.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(auth.RequireAuth())
	protected.GET("/logout", h.Logout)
	protected.GET("/profile", h.ProfilePage)
	protected.POST("/profile", h.ProfileUpdate)

	ajax := s.ginEngine.Group("/")
	ajax.Use(auth.RequireAuthJSON())
	ajax.POST("/toggle_read", h.ToggleRead)
	ajax.POST("/toggle_pin", h.TogglePin)

	admin := s.ginEngine.Group("/")
	admin.Use(auth.RequireAuth(), auth.RequireAdmin())
	admin.GET("/admin_panel", h.AdminPanel)
	admin.GET("/add_poem", h.AddPoemPage)
	admin.POST("/add_poem", h.AddPoem)
	admin.GET("/edit_poem/:title", h.EditPoemPage)
	admin.POST("/edit_poem/:title", h.EditPoem)
	admin.POST("/delete_poem/:title", h.DeletePoem)

	adminAPI := s.ginEngine.Group("/api")
	adminAPI.Use(auth.RequireAuthJSON(), auth.RequireAdminJSON())
	adminAPI.GET("/poems", h.APIPoems)
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
