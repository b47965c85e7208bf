package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Corpus        string         `mapstructure:"corpus"`
	Detector      string         `mapstructure:"detector"`
	SamplePerLang int            `mapstructure:"sample_per_lang"`
	Seed          int64          `mapstructure:"seed"`
	Limit         int            `mapstructure:"limit"`
	MinSamples    int            `mapstructure:"min_samples"`
	Workers       int            `mapstructure:"workers"`
	Output        string         `mapstructure:"output"`
	Format        string         `mapstructure:"format"`
	LogDir        string         `mapstructure:"log_dir"`
	LogFormat     string         `mapstructure:"log_format"`
	MappedOnly    bool           `mapstructure:"mapped_only"`
	CacheDir      string         `mapstructure:"cache_dir"`
	Lingua        LinguaConfig   `mapstructure:"lingua"`
	Whatlang      WhatlangConfig `mapstructure:"whatlang"`
	Remote        RemoteConfig   `mapstructure:"remote"`
}

type LinguaConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
}

type WhatlangConfig struct {
	ReliableOnly bool `mapstructure:"reliable_only"`
}

type RemoteConfig struct {
	BaseURL        string   `mapstructure:"base_url"`
	Codes          []string `mapstructure:"codes"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	MaxRetries     int      `mapstructure:"max_retries"`
	BackoffMillis  int      `mapstructure:"backoff_millis"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".lidbench")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
