package di

import (
	"context"
	"log"

	"gorm.io/gorm"

	"social-service/configs"
	"social-service/internal/counts"
	"social-service/internal/feedback"
	"social-service/internal/kafka"
	"social-service/internal/media"
	"social-service/internal/post"
	"social-service/internal/storage/s3"
	"social-service/internal/user"
	"social-service/pkg/cache"
	"social-service/pkg/db"
)

type Container struct {
	DB              *gorm.DB
	Producer        kafka.Producer
	UserService     user.Service
	PostService     post.Service
	FeedbackService feedback.Service
	MediaService    media.Service
}

func BuildContainer(cfg *configs.Config) *Container {
	dbConn := db.NewDb(cfg)
	rdb := cache.NewRedis(cfg)
	agg := counts.NewAggregator(dbConn.DB, rdb)

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	userRepo := user.NewRepository(dbConn.DB)
	userService := user.NewService(userRepo)

	postRepo := post.NewRepository(dbConn.DB)
	postService := post.NewService(postRepo, agg, producer)

	feedbackRepo := feedback.NewRepository(dbConn.DB, agg)
	feedbackService := feedback.NewService(feedbackRepo, postService, producer)

	store, err := s3.New(s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("Could not initialize media storage: %v", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Could not ensure media bucket: %v", err)
	}
	mediaService := media.NewService(store)

	return &Container{
		DB:              dbConn.DB,
		Producer:        producer,
		UserService:     userService,
		PostService:     postService,
		FeedbackService: feedbackService,
		MediaService:    mediaService,
	}
}
