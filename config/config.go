package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DrawingPolicyAppendLog      = "append-log"
	DrawingPolicyLatestSnapshot = "latest-snapshot"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
		Mongo struct {
			Url string `mapstructure:"URL"`
		}
	}

	TICKET struct {
		TTLMinutes int `mapstructure:"TTL_MINUTES"`
	}

	BOARD struct {
		// DrawingPolicy selects how drawing updates are persisted:
		// "append-log" keeps every stroke as an immutable log entry,
		// "latest-snapshot" overwrites a single document on the room.
		// Exactly one mode is active; they are not equivalent (the log
		// supports replay, the snapshot discards history).
		DrawingPolicy string `mapstructure:"DRAWING_POLICY"`
		// CompactEvery folds the stroke log into the room snapshot
		// after this many strokes (append-log mode only).
		CompactEvery int `mapstructure:"COMPACT_EVERY"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SHAREBOARD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	if config.TICKET.TTLMinutes <= 0 {
		config.TICKET.TTLMinutes = 60
	}
	if config.BOARD.DrawingPolicy == "" {
		config.BOARD.DrawingPolicy = DrawingPolicyAppendLog
	}
	if config.BOARD.DrawingPolicy != DrawingPolicyAppendLog && config.BOARD.DrawingPolicy != DrawingPolicyLatestSnapshot {
		return fmt.Errorf("invalid BOARD.DRAWING_POLICY %q", config.BOARD.DrawingPolicy)
	}
	if config.BOARD.CompactEvery <= 0 {
		config.BOARD.CompactEvery = 200
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
