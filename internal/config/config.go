package config

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vango-dev/vimg/internal/errors"
	"github.com/vango-dev/vimg/pkg/img"
	"github.com/vango-dev/vimg/pkg/placeholder"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vimg.json"

	// EnvPrefix prefixes environment overrides: VIMG_IMAGE_FADEIN=1s.
	EnvPrefix = "VIMG"
)

// Placeholder source kinds.
const (
	SourceDir   = "dir"
	SourceS3    = "s3"
	SourceMinio = "minio"
)

// Config represents the complete vimg.json configuration.
//
// Each field carries its default in a `default` tag; Load registers every
// key with viper so environment overrides work for keys absent from the
// file.
type Config struct {
	// Image holds the image component defaults.
	Image ImageConfig `mapstructure:"image" json:"image"`

	// Placeholder holds placeholder generation settings.
	Placeholder PlaceholderConfig `mapstructure:"placeholder" json:"placeholder"`

	// Server holds the placeholder HTTP server settings.
	Server ServerConfig `mapstructure:"server" json:"server"`

	// Log holds logger settings.
	Log LogConfig `mapstructure:"log" json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// dir is the project directory passed to Load.
	dir string
}

// ImageConfig holds the image component defaults.
type ImageConfig struct {
	RootMargin       int           `mapstructure:"rootMargin" json:"rootMargin" default:"200"`
	FadeIn           time.Duration `mapstructure:"fadeIn" json:"fadeIn" default:"500ms"`
	FadeInSeen       time.Duration `mapstructure:"fadeInSeen" json:"fadeInSeen" default:"200ms"`
	PlaceholderFade  time.Duration `mapstructure:"placeholderFade" json:"placeholderFade" default:"200ms"`
	PlaceholderDelay time.Duration `mapstructure:"placeholderDelay" json:"placeholderDelay" default:"500ms"`
	ErrorMessage     string        `mapstructure:"errorMessage" json:"errorMessage" default:"Image not found"`
	ObjectPosition   string        `mapstructure:"objectPosition" json:"objectPosition" default:"center center"`
}

// PlaceholderConfig holds placeholder generation settings.
type PlaceholderConfig struct {
	Width   int     `mapstructure:"width" json:"width" default:"16"`
	Sigma   float64 `mapstructure:"sigma" json:"sigma" default:"1.5"`
	Quality int     `mapstructure:"quality" json:"quality" default:"60"`

	// Source is one of "dir", "s3" or "minio".
	Source string `mapstructure:"source" json:"source" default:"dir"`

	// Dir is the root directory of the dir source.
	Dir string `mapstructure:"dir" json:"dir" default:"public"`

	// Bucket and Prefix locate images in the s3 and minio sources.
	Bucket string `mapstructure:"bucket" json:"bucket,omitempty"`
	Prefix string `mapstructure:"prefix" json:"prefix,omitempty"`

	S3    S3Config    `mapstructure:"s3" json:"s3"`
	Minio MinioConfig `mapstructure:"minio" json:"minio"`
}

// S3Config holds S3 connection settings.
type S3Config struct {
	Region    string `mapstructure:"region" json:"region" default:"us-east-1"`
	Endpoint  string `mapstructure:"endpoint" json:"endpoint,omitempty"`
	AccessKey string `mapstructure:"accessKey" json:"-"`
	SecretKey string `mapstructure:"secretKey" json:"-"`
	PathStyle bool   `mapstructure:"pathStyle" json:"pathStyle" default:"false"`
}

// MinioConfig holds MinIO connection settings.
type MinioConfig struct {
	Endpoint  string        `mapstructure:"endpoint" json:"endpoint" default:"localhost:9000"`
	AccessKey string        `mapstructure:"accessKey" json:"-"`
	SecretKey string        `mapstructure:"secretKey" json:"-"`
	UseSSL    bool          `mapstructure:"useSSL" json:"useSSL" default:"false"`
	Region    string        `mapstructure:"region" json:"region,omitempty"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout" default:"30s"`
}

// ServerConfig holds the placeholder HTTP server settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr" json:"addr" default:":8080"`
	MetricsPath string `mapstructure:"metricsPath" json:"metricsPath" default:"/metrics"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" json:"level" default:"info"`
	// Format is "text" or "json".
	Format string `mapstructure:"format" json:"format" default:"text"`
}

// New creates a Config with default values.
func New() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults come from struct tags and always decode.
		panic(err)
	}
	return cfg
}

// Load reads configuration for the project in dir. The vimg.json file is
// optional; a .env file in dir and VIMG_ environment variables override it.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, ConfigFileName))
	if errors.HasCode(err, "E141") {
		loadDotEnv(dir)
		cfg, err = decode(newViper())
	}
	if err != nil {
		return nil, err
	}
	cfg.dir = dir
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. The file must
// exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or set VIMG_ environment variables")
		}
		return nil, errors.New("E120").Wrap(err)
	}
	loadDotEnv(filepath.Dir(path))

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// loadDotEnv loads dir/.env into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(dir string) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))
}

func newViper() *viper.Viper {
	v := viper.New()
	bindDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to decode configuration: " + err.Error())
	}
	return &cfg, nil
}

// bindDefaults walks the struct and registers every mapstructure key with
// its `default` tag. Registering empty defaults too makes AutomaticEnv see
// the key.
func bindDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Duration(0)) {
			bindDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path. Credentials are
// not written.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file, or the directory
// passed to Load when there was no file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return c.dir
	}
	return filepath.Dir(c.configPath)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(detail string) error {
		return errors.New("E120").WithDetail(detail)
	}

	if c.Image.RootMargin < 0 {
		return invalid("image.rootMargin must not be negative")
	}
	for name, d := range map[string]time.Duration{
		"image.fadeIn":           c.Image.FadeIn,
		"image.fadeInSeen":       c.Image.FadeInSeen,
		"image.placeholderFade":  c.Image.PlaceholderFade,
		"image.placeholderDelay": c.Image.PlaceholderDelay,
	} {
		if d < 0 {
			return invalid(name + " must not be negative")
		}
	}

	if c.Placeholder.Width < 1 || c.Placeholder.Width > 64 {
		return invalid("placeholder.width must be between 1 and 64")
	}
	if c.Placeholder.Sigma < 0 {
		return invalid("placeholder.sigma must not be negative")
	}
	if c.Placeholder.Quality < 1 || c.Placeholder.Quality > 100 {
		return invalid("placeholder.quality must be between 1 and 100")
	}
	switch c.Placeholder.Source {
	case SourceDir:
		if c.Placeholder.Dir == "" {
			return invalid("placeholder.dir is required for the dir source")
		}
	case SourceS3, SourceMinio:
		if c.Placeholder.Bucket == "" {
			return invalid("placeholder.bucket is required for the " + c.Placeholder.Source + " source")
		}
	default:
		return errors.New("E120").
			WithDetail("unknown placeholder.source " + `"` + c.Placeholder.Source + `"`).
			WithSuggestion("Use one of: dir, s3, minio")
	}

	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return invalid("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid(`log.format must be "text" or "json"`)
	}
	return nil
}

// ServiceConfig returns the image component defaults.
func (c ImageConfig) ServiceConfig() img.Config {
	return img.Config{
		RootMargin:       c.RootMargin,
		FadeIn:           c.FadeIn,
		FadeInSeen:       c.FadeInSeen,
		PlaceholderFade:  c.PlaceholderFade,
		PlaceholderDelay: c.PlaceholderDelay,
		ErrorMessage:     c.ErrorMessage,
		ObjectPosition:   c.ObjectPosition,
	}
}

// Options returns the placeholder generator options.
func (c PlaceholderConfig) Options() placeholder.Options {
	return placeholder.Options{
		Width:   c.Width,
		Sigma:   c.Sigma,
		Quality: c.Quality,
	}
}

// SourceDir resolves the dir source root against base when it is relative.
func (c PlaceholderConfig) SourceDir(base string) string {
	if filepath.IsAbs(c.Dir) || base == "" {
		return c.Dir
	}
	return filepath.Join(base, c.Dir)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds a logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[strings.ToLower(c.Level)]}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vimg.json, or an E141 error.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest directory holding
// vimg.json, or from the working directory with defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		root = wd
	}
	return Load(root)
}
