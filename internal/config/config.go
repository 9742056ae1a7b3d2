package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"navboard/internal/nav"
)

type Config struct {
	Port            string
	DBPath          string
	NavSource       string // URL or file path of the NAV CSV
	ContentPath     string // empty means embedded content
	Range           nav.DateRange
	BenchmarkFactor float64
	LogLevel        string
	FetchTimeout    time.Duration
	ChartWidth      int
	ChartHeight     int
}

// Defaults applies the built-in values to v.
func Defaults(v *viper.Viper) {
	v.SetDefault("port", "9095")
	v.SetDefault("db_path", "data/navboard.db")
	v.SetDefault("nav_source", "assets/data/historical_nav_report.csv")
	v.SetDefault("content_path", "")
	v.SetDefault("range_from", "2019-01-01")
	v.SetDefault("range_to", "2024-04-24")
	v.SetDefault("benchmark_factor", 0.82)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("nav_fetch_timeout", "0s")
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 420)
}

// Load reads configuration from the environment (PORT, DB_PATH, NAV_SOURCE, ...)
// and, when file is not empty, from that YAML file. Environment wins.
func Load(file string) (Config, error) {
	v := viper.New()
	Defaults(v)
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	from, err := nav.ParseDate(v.GetString("range_from"))
	if err != nil {
		return Config{}, fmt.Errorf("RANGE_FROM: %w", err)
	}
	to, err := nav.ParseDate(v.GetString("range_to"))
	if err != nil {
		return Config{}, fmt.Errorf("RANGE_TO: %w", err)
	}
	factor := v.GetFloat64("benchmark_factor")
	if factor <= 0 {
		return Config{}, fmt.Errorf("BENCHMARK_FACTOR must be positive, got %v", factor)
	}
	src := v.GetString("nav_source")
	if src == "" {
		return Config{}, fmt.Errorf("missing NAV_SOURCE")
	}
	return Config{
		Port:            v.GetString("port"),
		DBPath:          v.GetString("db_path"),
		NavSource:       src,
		ContentPath:     v.GetString("content_path"),
		Range:           nav.DateRange{From: from, To: to},
		BenchmarkFactor: factor,
		LogLevel:        v.GetString("log_level"),
		FetchTimeout:    v.GetDuration("nav_fetch_timeout"),
		ChartWidth:      v.GetInt("chart_width"),
		ChartHeight:     v.GetInt("chart_height"),
	}, nil
}
