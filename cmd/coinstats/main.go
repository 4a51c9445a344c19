package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"coinstats/internal/app/cli"
	"coinstats/internal/app/di"
	"coinstats/internal/platform/config"
	"coinstats/internal/platform/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts cli.Options
	fs := cli.NewFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cli.ExitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return cli.ExitUsage
	}

	mode, err := opts.Mode()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return cli.ExitUsage
	}
	if mode == cli.ModeNone {
		fs.Usage()
		return cli.ExitOK
	}

	// 設定: .env → 設定ファイル → 環境変数 → フラグ
	if err := config.Load(opts.Config); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cli.ExitError
	}
	if err := config.BindFlags(fs, cli.ViperBindings); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cli.ExitError
	}
	opts.ApplyConfig(viper.GetViper())

	// ログ（実行ごとに run_id を付与）
	log, closer := logger.New(logger.LoadConfig())
	defer func() { _ = closer.Close() }()
	slog.SetDefault(log.With("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := di.NewCache(ctx)
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close cache", "error", err)
		}
	}()
	uc := di.NewPricesUsecases(c)

	app := cli.NewApp(uc.Stats, uc.History, uc.Export, stdin, stdout)
	if err := app.Run(ctx, mode, opts); err != nil {
		slog.Error("coinstats failed", "mode", mode.String(), "error", err)
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return cli.ExitError
	}
	return cli.ExitOK
}
