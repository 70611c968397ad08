package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
)

type (
	Properties struct {
		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
		LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
		// FrontendURL is the single origin allowed by CORS
		FrontendURL string `env:"FRONTEND_URL"`

		Server     HttpServerProperties `envPrefix:"HTTP_"`
		DB         DBProperties         `envPrefix:"DB_"`
		ImageStore ImageStoreProperties `envPrefix:"IMAGE_STORE_"`
		Cloudinary CloudinaryProperties `envPrefix:"CLOUDINARY_"`
		S3         S3Properties         `envPrefix:"S3_"`
	}

	HttpServerProperties struct {
		Port            int           `env:"PORT" envDefault:"5000"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
		MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
		Pprof           bool          `env:"PPROF" envDefault:"false"`
	}

	DBProperties struct {
		Driver     string `env:"DRIVER" envDefault:"mysql"`
		Host       string `env:"HOST" envDefault:"localhost"`
		Port       int    `env:"PORT" envDefault:"3306"`
		User       string `env:"USER"`
		Password   string `env:"PASSWORD"`
		Name       string `env:"NAME"`
		SQLitePath string `env:"SQLITE_PATH" envDefault:"./superheroes.db"`
	}

	ImageStoreProperties struct {
		Provider string `env:"PROVIDER" envDefault:"cloudinary"`
		Folder   string `env:"FOLDER" envDefault:"superheroesImages"`
	}

	CloudinaryProperties struct {
		URL       string `env:"URL"`
		CloudName string `env:"CLOUD_NAME"`
		APIKey    string `env:"API_KEY"`
		APISecret string `env:"API_SECRET"`
	}

	S3Properties struct {
		Endpoint  string `env:"ENDPOINT"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"superheroes"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
		PublicURL string `env:"PUBLIC_URL"`
	}
)

// ReadProperties loads an optional .env file and then parses the environment.
// Variables already set in the environment win over the file.
func ReadProperties(files ...string) (*Properties, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	props := &Properties{}
	if err := env.Parse(props); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}

	return props, nil
}

func (p *Properties) Validate() error {
	switch p.DB.Driver {
	case DriverMySQL:
		if p.DB.Name == "" || p.DB.User == "" {
			return errors.New("DB_NAME and DB_USER are required for the mysql driver")
		}
	case DriverSQLite:
		if p.DB.SQLitePath == "" {
			return errors.New("DB_SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", p.DB.Driver)
	}

	switch p.ImageStore.Provider {
	case ProviderCloudinary:
		c := p.Cloudinary
		if c.URL == "" && (c.CloudName == "" || c.APIKey == "" || c.APISecret == "") {
			return errors.New("CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
		}
	case ProviderS3:
		if p.S3.Endpoint == "" || p.S3.Bucket == "" {
			return errors.New("S3_ENDPOINT and S3_BUCKET are required for the s3 provider")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORE_PROVIDER %q", p.ImageStore.Provider)
	}

	if p.Server.MaxUploadBytes <= 0 {
		return errors.New("HTTP_MAX_UPLOAD_BYTES must be positive")
	}

	return nil
}
