package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dfryer1193/superheroes/internal/config"
	"github.com/dfryer1193/superheroes/shared/db"
	"github.com/dfryer1193/superheroes/shared/db/mysql"
	"github.com/dfryer1193/superheroes/shared/db/sqlite"
	"github.com/dfryer1193/superheroes/shared/imagestore/cloudinary"
	"github.com/dfryer1193/superheroes/shared/imagestore/s3"
	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func configureLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// openDatabase connects to the configured driver and applies pending migrations
func openDatabase(props config.DBProperties) (db.Database, error) {
	var database db.Database
	switch props.Driver {
	case config.DriverMySQL:
		database = mysql.NewMySQLDB(&mysql.MySQLConfig{
			Host:     props.Host,
			Port:     props.Port,
			User:     props.User,
			Password: props.Password,
			Name:     props.Name,
		})
	case config.DriverSQLite:
		database = sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: props.SQLitePath})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", props.Driver)
	}

	if err := database.Connect(); err != nil {
		return nil, err
	}
	return database, nil
}

func newImageStore(ctx context.Context, props *config.Properties) (domain.ImageStore, error) {
	switch props.ImageStore.Provider {
	case config.ProviderCloudinary:
		return cloudinary.New(cloudinary.Config{
			URL:       props.Cloudinary.URL,
			CloudName: props.Cloudinary.CloudName,
			APIKey:    props.Cloudinary.APIKey,
			APISecret: props.Cloudinary.APISecret,
			Folder:    props.ImageStore.Folder,
		})
	case config.ProviderS3:
		store, err := s3.New(s3.Config{
			Endpoint:  props.S3.Endpoint,
			AccessKey: props.S3.AccessKey,
			SecretKey: props.S3.SecretKey,
			Bucket:    props.S3.Bucket,
			UseSSL:    props.S3.UseSSL,
			PublicURL: props.S3.PublicURL,
			Folder:    props.ImageStore.Folder,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported image store provider %q", props.ImageStore.Provider)
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func registerPprof(router *gin.Engine) {
	pprof.Register(router)
	log.Warn().Msg("pprof endpoints enabled under /debug/pprof")
}
