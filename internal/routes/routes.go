package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bluntdao/blunt_frame/internal/audit"
	"github.com/bluntdao/blunt_frame/internal/catalog"
	"github.com/bluntdao/blunt_frame/internal/config"
	"github.com/bluntdao/blunt_frame/internal/farcaster"
	"github.com/bluntdao/blunt_frame/internal/frame"
	"github.com/bluntdao/blunt_frame/internal/identity"
	"github.com/bluntdao/blunt_frame/internal/metrics"
	"github.com/bluntdao/blunt_frame/internal/middleware"
	"github.com/bluntdao/blunt_frame/internal/ownership"
	"github.com/bluntdao/blunt_frame/internal/render"
)

// Deps aggregates shared dependencies required to wire routes. Directory,
// OwnerSource and Authenticator override the config-selected backends when set.
type Deps struct {
	Cfg           config.Config
	DB            *pgxpool.Pool
	Cache         *redis.Client
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Directory     identity.Directory
	OwnerSource   ownership.Source
	Authenticator farcaster.Authenticator
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.AccessLog(d.Logger))
	app.Use(middleware.FrameRateLimit(d.Cache, d.Cfg.RateLimitPerMinute))

	// Health and metrics
	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))

	// Services and handlers
	svc, err := buildFrameService(d)
	if err != nil {
		return err
	}
	auth, err := buildAuthenticator(d)
	if err != nil {
		return err
	}
	renderer := render.New(d.Cfg.PublicHost + "/frames")
	RegisterFrameRoutes(app, NewFrameHandler(svc, auth, renderer, d.Logger))

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.GetRequestID(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	return nil
}

func buildFrameService(d Deps) (*frame.Service, error) {
	client := &http.Client{Timeout: d.Cfg.ClientTimeout}

	cat, err := catalog.Load(d.Cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	dir := d.Directory
	if dir == nil {
		if d.Cfg.NeynarAPIKey == "" {
			d.Logger.Warn("NEYNAR_API_KEY not set, using empty in-memory identity directory")
			dir = identity.NewMemoryDirectory()
		} else {
			dir = identity.NewNeynarDirectory(d.Cfg.NeynarBaseURL, d.Cfg.NeynarAPIKey, client)
		}
	}

	source := d.OwnerSource
	if source == nil {
		switch d.Cfg.OwnershipBackend {
		case config.OwnershipPostgres:
			if d.DB == nil {
				return nil, fmt.Errorf("database is required when OWNERSHIP_BACKEND=%s", config.OwnershipPostgres)
			}
			source = ownership.NewPostgresSource(d.DB)
		case config.OwnershipMemory:
			source = ownership.NewMemorySource()
		default:
			source = ownership.NewAlchemySource(d.Cfg.AlchemyBaseURL, d.Cfg.AlchemyAPIKey, client)
		}
	}

	recorders := audit.Multi{audit.NewLoggerRecorder(d.Logger)}
	if d.DB != nil {
		recorders = append(recorders, audit.NewPostgresRecorder(d.DB))
	}

	return frame.NewService(frame.Deps{
		Catalog:  cat,
		Resolver: identity.NewResolver(dir, d.Logger),
		Ownership: ownership.NewService(source, ownership.Collection{
			Contract: d.Cfg.CollectionAddress,
			TokenIDs: d.Cfg.CollectionTokenIDs,
		}),
		Recorder: recorders,
		Metrics:  d.Metrics,
		Logger:   d.Logger,
		ShareURL: frame.ShareURL(d.Cfg.PublicHost),
	})
}

func buildAuthenticator(d Deps) (farcaster.Authenticator, error) {
	if d.Authenticator != nil {
		return d.Authenticator, nil
	}
	switch d.Cfg.FrameAuth {
	case config.AuthInsecure:
		if !d.Cfg.IsDev() {
			return nil, fmt.Errorf("FRAME_AUTH=%s is not allowed when APP_ENV=%s", config.AuthInsecure, d.Cfg.AppEnv)
		}
		d.Logger.Warn("frame messages are not verified (FRAME_AUTH=insecure)")
		return farcaster.InsecureAuthenticator{}, nil
	default:
		return farcaster.NewHubAuthenticator(d.Cfg.HubURL, d.Cfg.PublicHost, &http.Client{Timeout: d.Cfg.ClientTimeout}), nil
	}
}
