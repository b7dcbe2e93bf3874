// Package web provides the HTTP server of the registration app: routing,
// templates, sessions and the background jobs.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ifsp/cadastro/config"
	"github.com/ifsp/cadastro/database"
	"github.com/ifsp/cadastro/database/repository"
	"github.com/ifsp/cadastro/logger"
	"github.com/ifsp/cadastro/util/common"
	"github.com/ifsp/cadastro/util/random"
	"github.com/ifsp/cadastro/web/cache"
	"github.com/ifsp/cadastro/web/controller"
	"github.com/ifsp/cadastro/web/job"
	"github.com/ifsp/cadastro/web/locale"
	"github.com/ifsp/cadastro/web/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html
var htmlFS embed.FS

//go:embed translation
var i18nFS embed.FS

const sessionName = "cadastro"

var startTime = time.Now()

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo reports the process start as modification time so
// embedded assets get a usable Last-Modified header.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

type Server struct {
	settings   *config.Settings
	httpServer *http.Server
	listener   net.Listener

	index    *controller.IndexController
	cadastro *controller.CadastroController
	profile  *controller.ProfileController
	api      *controller.APIController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(settings *config.Settings) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{settings: settings, ctx: ctx, cancel: cancel}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"i18n": locale.I18n,
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
		"formatTime": func(t time.Time) string {
			return t.Format("02/01/2006 15:04:05")
		},
		"isoTime": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
	}
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(htmlFS, path)
		if err != nil {
			return err
		}
		// Pages are looked up by base name, e.g. "index.html".
		_, err = t.New(d.Name()).Parse(string(data))
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Server) newSessionStore() (sessions.Store, error) {
	secret := s.settings.Web.SecretKey
	if secret == "" {
		logger.Warning("web.secretKey is not set, sessions will not survive a restart")
		secret = random.Seq(32)
	}

	var store sessions.Store
	switch s.settings.Web.SessionStore {
	case config.SessionStoreRedis:
		if cache.GetClient() == nil {
			if err := cache.InitRedis(s.ctx, s.settings.Redis); err != nil {
				return nil, err
			}
		}
		store = cache.NewRedisStore(cache.GetClient(), []byte(secret))
	default:
		store = cookie.NewStore([]byte(secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.settings.Web.SessionMaxAge * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// initRouter builds the gin engine. The database must be initialized.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.AccessLogMiddleware())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/"})))

	store, err := s.newSessionStore()
	if err != nil {
		return nil, err
	}
	engine.Use(sessions.Sessions(sessionName, store))
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.RecoveryMiddleware(func(c *gin.Context) {
		controller.ServerError(c, common.NewError("handler panicked"))
	}))

	funcMap := templateFuncs()
	engine.SetFuncMap(funcMap)
	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)
	engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsFS}))

	repos := repository.NewStore(database.GetDB())

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, repos)
	s.cadastro = controller.NewCadastroController(g, repos)
	s.profile = controller.NewProfileController(g)
	s.api = controller.NewAPIController(g, repos)

	engine.NoRoute(controller.NotFound)

	return engine, nil
}

func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithLocation(time.Local))
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(s.settings.Web.Listen, strconv.Itoa(s.settings.Web.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts the server down and releases the session backend.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	s.cancel()
	if s.settings.Web.SessionStore == config.SessionStoreRedis {
		err2 = cache.Close()
	}
	return common.Combine(err1, err2)
}

func (s *Server) GetCtx() context.Context { return s.ctx }

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
