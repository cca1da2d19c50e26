package setup

import (
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/postline-dev/postline/internal/cache"
	"github.com/postline-dev/postline/internal/config"
	"github.com/postline-dev/postline/internal/handler"
	"github.com/postline-dev/postline/internal/jwt"
	"github.com/postline-dev/postline/internal/logger"
	"github.com/postline-dev/postline/internal/markdown"
	mw "github.com/postline-dev/postline/internal/middleware"
	"github.com/postline-dev/postline/internal/service"
	"github.com/postline-dev/postline/internal/storage/fs"
	"github.com/postline-dev/postline/internal/storage/pg"
)

const baseTemplate = "base.html"

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Storage        *pg.Storage
	Media          *fs.Storage
	Public         config.Public

	redisCache *cache.Redis // nil when the memory cache is in use
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaPath)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	deps := &Dependencies{
		AuthMiddleware: mw.NewAuth(jwtSvc),
		Storage:        storage,
		Media:          media,
		Public:         cfg.Public,
	}

	var pageCache cache.Cache
	if cfg.Public.Redis.Addr != "" {
		deps.redisCache = cache.NewRedis(cfg.Public.Redis.Addr, cfg.Public.IndexCacheTTL)
		pageCache = deps.redisCache
	} else {
		logger.Log.Warn("redis not configured, using in-process page cache")
		pageCache = cache.NewMemory(cfg.Public.IndexCacheTTL)
	}

	posts := service.NewPost(storage, media)
	groups := service.NewGroup(storage)
	comments := service.NewComment(storage)
	auth := service.NewAuth(storage, jwtSvc)

	deps.Handler = handler.New(
		posts,
		groups,
		comments,
		auth,
		mustLoadTemplates(cfg.Public.TemplatePath),
		pageCache,
		markdown.New(),
		cfg.JwtTTL(),
		cfg.Public.SecureCookies,
	)
	return deps, nil
}

func (d *Dependencies) Cleanup() {
	if d.redisCache != nil {
		if err := d.redisCache.Close(); err != nil {
			logger.Log.Warn("closing redis", "error", err)
		}
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Warn("closing db", "error", err)
	}
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
				template.FuncMap{
					"sub": sub,
					"add": add,
				},
			).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
			))
		}
	}
	return templates
}
