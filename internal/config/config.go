package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port             string         `validate:"required"`
	LogDir           string         `validate:"required"`
	KMLOutput        string         `validate:"required"`
	JWTSecret        string         // 为空时关闭鉴权
	RateLimitPerMin  int            `validate:"gt=0"`
	SkipCorruptFiles bool
	Pipeline         PipelineConfig
}

// PipelineConfig holds the route pipeline thresholds. It can be loaded from
// the YAML file named by CONFIG_FILE.
type PipelineConfig struct {
	JunkDistanceKm      float64 `yaml:"junk_distance_km" validate:"gt=0"`
	TimeThresholdMin    float64 `yaml:"time_threshold_min"`
	StopSpeedKnots      float64 `yaml:"stop_speed_knots" validate:"gt=0"`
	StopMergeRadiusKm   float64 `yaml:"stop_merge_radius_km" validate:"gte=0"`
	TurnMinAngleDelta   float64 `yaml:"turn_min_angle_delta" validate:"gt=0,lte=360"`
	TurnNoiseSpeedKnots float64 `yaml:"turn_noise_speed_knots" validate:"gte=0"`
	Weights             Weights `yaml:"weights"`
}

// Weights are the cost function coefficients
type Weights struct {
	Time     float64 `yaml:"time" validate:"gte=0"`
	LeftTurn float64 `yaml:"left_turn" validate:"gte=0"`
	Stop     float64 `yaml:"stop" validate:"gte=0"`
}

// DefaultPipeline returns the thresholds the route finder was tuned with
func DefaultPipeline() PipelineConfig {
	return PipelineConfig{
		JunkDistanceKm:      5,
		TimeThresholdMin:    22,
		StopSpeedKnots:      1.0,
		StopMergeRadiusKm:   10,
		TurnMinAngleDelta:   25,
		TurnNoiseSpeedKnots: 10,
		Weights: Weights{
			Time:     0.7,
			LeftTurn: 0.2,
			Stop:     0.1,
		},
	}
}

// Load 加载配置
func Load() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "FILES_TO_WORK"
	}

	kmlOutput := os.Getenv("KML_OUTPUT")
	if kmlOutput == "" {
		kmlOutput = "kml_file.kml"
	}

	cfg := &Config{
		Port:            port,
		LogDir:          logDir,
		KMLOutput:       kmlOutput,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RateLimitPerMin: 60,
		Pipeline:        DefaultPipeline(),
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", v)
		}
		cfg.RateLimitPerMin = n
	}

	if v := os.Getenv("SKIP_CORRUPT_FILES"); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			cfg.SkipCorruptFiles = true
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadPipelineFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPipelineFile overlays pipeline thresholds from a YAML file. Keys that
// are absent keep their current values.
func (c *Config) LoadPipelineFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &c.Pipeline); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the config against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
