package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	GRPCServer GRPCServer
	Database   Database
	Prometheus Prometheus
	Storage    Storage
	Auth       Auth
}

type HTTPServer struct {
	Address string
	Port    int
}

type GRPCServer struct {
	Address string
	Port    int
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
	MaxConns       int32
}

// DSN returns the libpq style URL understood by pgx.
func (d Database) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		d.Username, d.Password, d.Host, d.Port, d.DbName)
}

type Prometheus struct {
	Address string
	Port    int
}

type Storage struct {
	RootDir        string
	MaxImageSizeKB int
}

type Auth struct {
	JWTSecret string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 8080)

	v.SetDefault("grpc_server.address", "0.0.0.0")
	v.SetDefault("grpc_server.port", 50054)

	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "blog-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "blog")
	v.SetDefault("database.migrations_path", "migrations")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9104)

	v.SetDefault("storage.root_dir", "storage/app/public")
	v.SetDefault("storage.max_image_size_kb", 500)

	v.SetDefault("auth.jwt_secret", "")
}

// Load reads config/config.yaml (when present) on top of the defaults.
// Every key can be overridden with a BLOG_ prefixed environment variable,
// e.g. BLOG_DATABASE_HOST.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("blog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address: v.GetString("http_server.address"),
			Port:    v.GetInt("http_server.port"),
		},
		GRPCServer: GRPCServer{
			Address: v.GetString("grpc_server.address"),
			Port:    v.GetInt("grpc_server.port"),
		},
		Database: Database{
			Username:       v.GetString("database.username"),
			Password:       v.GetString("database.password"),
			Host:           v.GetString("database.host"),
			Port:           v.GetString("database.port"),
			DbName:         v.GetString("database.db_name"),
			MigrationsPath: v.GetString("database.migrations_path"),
			MaxConns:       v.GetInt32("database.max_conns"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Storage: Storage{
			RootDir:        v.GetString("storage.root_dir"),
			MaxImageSizeKB: v.GetInt("storage.max_image_size_kb"),
		},
		Auth: Auth{
			JWTSecret: v.GetString("auth.jwt_secret"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != "dev" && cfg.Env != "test" {
			return nil, fmt.Errorf("auth.jwt_secret must be set outside dev")
		}
		cfg.Auth.JWTSecret = "unsecure"
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Printf("Error loading config: %s", err)
		os.Exit(1)
	}
	return cfg
}
