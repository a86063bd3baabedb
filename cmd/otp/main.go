package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/shiroemons/go-onetimepad/internal/otp/app"
	"github.com/shiroemons/go-onetimepad/internal/otp/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// コマンドライン引数の解析
	cfg, err := config.ParseArgs(args, os.Stderr)
	if err != nil {
		if config.IsHelp(err) {
			return app.ExitOK
		}
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return app.ExitUsage
	}

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// アプリケーションの実行
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return app.ExitUsage
	}
	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return app.ExitCode(err)
	}
	return app.ExitOK
}
