//
// storyshare
// ==========
// A small community story-sharing service: visitors submit short text
// stories through the embedded single-page client, submissions are
// validated and persisted to a flat JSON file, and the page lists them
// with aggregate metrics.
//
// Boot the server:
// ----------------
// $ go run main.go
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/api/stories
// []
//
// $ curl -X POST -H 'Content-Type: application/json' \
//     -d '{"title":"First frost","author":"Mara","tag":"winter","content":"..."}' \
//     http://localhost:3333/api/stories
// {"id":"...","title":"First frost",...}
//
// $ curl http://localhost:3333/api/stats
// {"stories":1,"contributors":1,"lastSubmission":"..."}
//
// Any other path serves the static single-page client. Prometheus metrics
// are exposed on the diag port: http://localhost:9999/metrics
//
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/metric/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"

	appconfig "github.com/commonfire/storyshare/internal/config"
	"github.com/commonfire/storyshare/internal/story"
)

const ServiceName = "storyshare"

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

type App struct {
	sugarLogger *zap.SugaredLogger
}

// nolint
func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	// nolint
	var (
		routes     = flag.Bool("routes", getEnvBool(ServiceName+"_ROUTES", false), "Generate router documentation")
		configPath = flag.String("config", getEnv(ServiceName+"_CONFIG", ""), "Path to configuration file")
		addr       = flag.String("addr", "", "application port (overrides config)")
		diagAddr   = flag.String("diag_addr", "", "diag port (overrides config)")
		dataFile   = flag.String("data_file", "", "path to the story data file (overrides config)")
	)

	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	a := App{
		sugarLogger: sugar,
	}

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		sugar.Fatalw("load config", "error", err)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *diagAddr != "" {
		cfg.Server.DiagAddr = *diagAddr
	}
	if *dataFile != "" {
		cfg.Storage.DataFile = *dataFile
	}

	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)
	exporter, err := prometheus.NewExporter(config, c)
	if err != nil {
		a.sugarLogger.Panicf("failed to initialize prometheus exporter %v", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	meter := global.Meter(ServiceName)
	labels := []attribute.KeyValue{
		attribute.String("status", "200")}
	ClientCompletedCount := metric.Must(meter).NewInt64Counter(
		"http/client/completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	).Bind(labels...)
	defer ClientCompletedCount.Unbind()

	store := story.NewStore(cfg.Storage.DataFile)
	stories := story.NewResource(store, sugar, cfg.Limits)

	r := chi.NewRouter()

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	r.Use(middleware.RequestID)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logger := r.Context().Value(CtxKeyLogger).(*zap.SugaredLogger)
		logger.Infow("ping with middle")
		ClientCompletedCount.Add(r.Context(), 1)
		_, err := w.Write([]byte("pong"))
		if err != nil {
			sugar.Errorw(err.Error())
		}
	})

	// RESTy routes for the "stories" resource plus the aggregate metrics
	// the landing page shows.
	r.Route("/api", func(r chi.Router) {
		r.Mount("/stories", stories.Routes())
		r.Get("/stats", stories.GetStats)
	})

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if *routes {
		// nolint
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/commonfire/storyshare",
			Intro:       "Welcome to the storyshare generated docs.",
		}))

		return
	}

	FileServer(r, "/static", WebAssets())

	// Unmatched routes fall back to the single-page client, not an error.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		page, err := embeddedFiles.ReadFile("web/index.html")
		if err != nil {
			sugar.Errorw(err.Error())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err = w.Write(page)
		if err != nil {
			sugar.Errorw(err.Error())
		}
	})

	sugar.Infow("starting", "addr", cfg.Server.Addr, "diag_addr", cfg.Server.DiagAddr,
		"data_file", cfg.Storage.DataFile)

	go func() {
		err := http.ListenAndServe(cfg.Server.Addr, r)
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	}()

	err = http.ListenAndServe(cfg.Server.DiagAddr, diagRouter)
	if err != nil {
		a.sugarLogger.Errorw(err.Error())
	}

}

func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, a.sugarLogger)))
	})
}

//go:embed web
var embeddedFiles embed.FS

func WebAssets() http.FileSystem {
	fsys, err := fs.Sub(embeddedFiles, "web")
	if err != nil {
		panic(err)
	}

	return http.FS(fsys)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return parsed
}
