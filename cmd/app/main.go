package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"social-service/configs"
	"social-service/internal/feedback"
	"social-service/internal/media"
	"social-service/internal/migrate"
	"social-service/internal/post"
	"social-service/internal/shared/httpx"
	"social-service/internal/user"
	"social-service/pkg/di"
)

func initOTEL(ctx context.Context, cfg *configs.Config) func(context.Context) error {
	if cfg.OTLPEndpoint == "" {
		return func(context.Context) error { return nil }
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	cfg := configs.LoadConfig()

	shutdown := initOTEL(ctx, cfg)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	container := di.BuildContainer(cfg)
	if container.Producer != nil {
		defer container.Producer.Close()
	}

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := migrate.AutoMigrateAll(container.DB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	uh := user.NewHandler(container.UserService)
	mux.Handle("POST /auth/sync", httpx.Wrap(uh.Sync))
	mux.Handle("GET /users/me", httpx.AuthMiddleware(cfg.JWTSecret, httpx.Wrap(uh.Me)))

	ph := post.NewHandler(container.PostService)
	mux.Handle("POST /posts", httpx.Wrap(ph.Create))
	mux.Handle("GET /posts", httpx.Wrap(ph.List))
	mux.Handle("GET /posts/{post_id}", httpx.Wrap(ph.GetByID))
	mux.Handle("GET /users/{user_id}/liked-posts", httpx.Wrap(ph.LikedBy))
	mux.Handle("GET /users/{user_id}/reposted-posts", httpx.Wrap(ph.RepostedBy))
	mux.Handle("GET /users/{user_id}/commented-posts", httpx.Wrap(ph.CommentedBy))

	fh := feedback.NewHandler(container.FeedbackService)
	mux.Handle("POST /posts/{post_id}/like", httpx.Wrap(fh.Like))
	mux.Handle("DELETE /posts/{post_id}/like", httpx.Wrap(fh.Unlike))
	mux.Handle("POST /posts/{post_id}/repost", httpx.Wrap(fh.Repost))
	mux.Handle("DELETE /posts/{post_id}/repost", httpx.Wrap(fh.Unrepost))
	mux.Handle("POST /posts/{post_id}/comments", httpx.Wrap(fh.CreateComment))
	mux.Handle("GET /posts/{post_id}/comments", httpx.Wrap(fh.ListComments))

	mh := media.NewHandler(container.MediaService)
	mux.Handle("POST /media", httpx.Wrap(mh.Upload))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("social-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
