// Package config は .env・設定ファイル・環境変数・CLIフラグを viper に集約します。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the base name of the optional YAML config file.
const FileName = "coinstats"

// Load は設定を読み込みます。
// 優先順位は フラグ > 環境変数 > 設定ファイル > デフォルト値 です。
// configFile が空の場合は ./coinstats.yaml と ./configs/coinstats.yaml を探し、無ければ無視します。
func Load(configFile string) error {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// BindFlags は設定キーとフラグ名の対応を viper に登録します。
// 明示的に指定されたフラグだけが設定値を上書きします。
func BindFlags(flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("bind %s: flag --%s not defined", key, name)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("coin", "btc-bitcoin")
	viper.SetDefault("export.format", "csv")
	viper.SetDefault("export.file", "")

	viper.SetDefault("coinpaprika.base_url", "https://api.coinpaprika.com/v1")
	viper.SetDefault("coinpaprika.api_key", "")
	viper.SetDefault("coinpaprika.quote", "usd")
	viper.SetDefault("coinpaprika.timeout", 10*time.Second)
	viper.SetDefault("coinpaprika.rate_per_sec", 2)
	viper.SetDefault("coinpaprika.proxy", "")

	viper.SetDefault("cache.backend", "sqlite")
	viper.SetDefault("cache.ttl", 180*time.Second)
	viper.SetDefault("cache.sqlite_path", "coin_cache.db")

	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size", 50)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.cors", true)

	viper.SetDefault("prefetch.coins", []string{"btc-bitcoin", "eth-ethereum"})
	viper.SetDefault("prefetch.days", 366)
	viper.SetDefault("scheduler.purge_cron", "0 */10 * * * *")
	viper.SetDefault("scheduler.prefetch_cron", "")
}
