// Package app はotpコマンドのサブコマンドを実行します
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shiroemons/go-onetimepad/internal/otp/config"
	otperrors "github.com/shiroemons/go-onetimepad/internal/otp/errors"
	"github.com/shiroemons/go-onetimepad/internal/otp/interfaces"
	"github.com/shiroemons/go-onetimepad/internal/otp/store"
	"github.com/shiroemons/go-onetimepad/pkg/otp"
)

// 終了コード
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App はサブコマンドとコアの処理を結び付けます
type App struct {
	config    *config.Config
	logger    interfaces.Logger
	store     interfaces.TextStore
	newSource func(worker int) otp.RandomSource
	stdout    io.Writer
}

// Options はAppの設定オプション
type Options struct {
	Store     interfaces.TextStore
	Logger    interfaces.Logger
	NewSource func(worker int) otp.RandomSource
	Stdout    io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) (*App, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) (*App, error) {
	// デフォルトのTextStoreを設定
	textStore := opts.Store
	if textStore == nil {
		s, err := store.New(store.NewOSFileSystem(), cfg.Charset)
		if err != nil {
			return nil, err
		}
		textStore = s
	}

	logger := opts.Logger
	if logger == nil {
		logger = config.NewDebugLogger(cfg.DebugMode)
	}

	newSource := opts.NewSource
	if newSource == nil {
		newSource = cfg.NewSource
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &App{
		config:    cfg,
		logger:    logger,
		store:     textStore,
		newSource: newSource,
		stdout:    stdout,
	}, nil
}

// Run は設定されたサブコマンドを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.logger.Printf("コマンド: %s %v (乱数源: %s, 文字コード: %s)\n", a.config.Command, a.config.Args, a.config.Source, a.config.Charset)

	switch a.config.Command {
	case "enc":
		return a.runEnc(a.config.Args)
	case "dec":
		return a.runDec(a.config.Args)
	case "keygen":
		return a.runKeyGen(a.config.Args)
	case "keyfreq":
		return a.runKeyFreq(a.config.Args)
	case "encruntime":
		return a.runEncRuntime(a.config.Args)
	case "":
		return otperrors.NewUsageError("", "コマンドが指定されていません (enc, dec, keygen, keyfreq, encruntime)")
	default:
		return otperrors.NewUsageError("", "不明なコマンドです: %s", a.config.Command)
	}
}

// runEnc は鍵と平文を読み込み、暗号文を書き込みます
func (a *App) runEnc(args []string) error {
	if len(args) != 3 {
		return otperrors.NewUsageError("enc", "使用方法: enc <keyPath> <plaintextPath> <ciphertextPath>")
	}
	keyPath, plaintextPath, ciphertextPath := args[0], args[1], args[2]

	key, err := a.store.ReadLine(keyPath)
	if err != nil {
		return err
	}
	plaintext, err := a.store.ReadLine(plaintextPath)
	if err != nil {
		return err
	}
	a.logger.Printf("鍵 %d ビット, 平文 %d 文字を読み込みました\n", len(key), len([]rune(plaintext)))

	ciphertext, err := otp.Encrypt(key, plaintext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncrypt, err)
	}

	fmt.Fprintf(a.stdout, "暗号文 (テキスト表示): %s\n", otp.DecodeView(ciphertext))

	if err := a.store.WriteLine(ciphertextPath, ciphertext); err != nil {
		return err
	}
	a.logger.Printf("暗号文を %s に保存しました\n", ciphertextPath)
	return nil
}

// runDec は鍵と暗号文を読み込み、復号した平文を書き込みます
func (a *App) runDec(args []string) error {
	if len(args) != 3 {
		return otperrors.NewUsageError("dec", "使用方法: dec <keyPath> <ciphertextPath> <resultPath>")
	}
	keyPath, ciphertextPath, resultPath := args[0], args[1], args[2]

	key, err := a.store.ReadLine(keyPath)
	if err != nil {
		return err
	}
	ciphertext, err := a.store.ReadLine(ciphertextPath)
	if err != nil {
		return err
	}
	a.logger.Printf("鍵 %d ビット, 暗号文 %d ビットを読み込みました\n", len(key), len(ciphertext))

	plaintext, err := otp.Decrypt(key, ciphertext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	fmt.Fprintf(a.stdout, "復号した平文: %s\n", plaintext)

	if err := a.store.WriteLine(resultPath, plaintext); err != nil {
		return err
	}
	a.logger.Printf("平文を %s に保存しました\n", resultPath)
	return nil
}

// runKeyGen は指定ビット長の鍵を生成して書き込みます
func (a *App) runKeyGen(args []string) error {
	if len(args) != 2 {
		return otperrors.NewUsageError("keygen", "使用方法: keygen <nBits> <outPath>")
	}

	n, err := otp.ParseBitLength(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyGen, err)
	}
	key, err := otp.NewKeyGenerator(a.newSource(0)).Generate(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyGen, err)
	}

	fmt.Fprintf(a.stdout, "%d ビットの鍵: %s\n", n, key)

	if err := a.store.WriteLine(args[1], key); err != nil {
		return err
	}
	a.logger.Printf("鍵を %s に保存しました\n", args[1])
	return nil
}

// runKeyFreq は鍵の出現頻度を集計して表示します
func (a *App) runKeyFreq(args []string) error {
	if len(args) != 0 {
		return otperrors.NewUsageError("keyfreq", "引数は指定できません")
	}
	cfg := a.config.KeyFreq

	var table otp.FrequencyTable
	var err error
	start := time.Now()
	if cfg.Workers > 1 {
		table, err = otp.KeyDistributionParallel(a.newSource, cfg.Samples, cfg.KeyBits, cfg.Workers)
	} else {
		table, err = otp.KeyDistribution(otp.NewKeyGenerator(a.newSource(0)), cfg.Samples, cfg.KeyBits)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyFreq, err)
	}
	a.logger.Printf("%d 個の %d ビット鍵を %v で集計しました (ワーカー数: %d)\n", cfg.Samples, cfg.KeyBits, time.Since(start), max(cfg.Workers, 1))

	fmt.Fprintf(a.stdout, "鍵の出現頻度: %s\n", table)
	a.logger.Printf("パターン数: %d / %d, カイ二乗値: %.4f\n", len(table), uint64(1)<<min(cfg.KeyBits, 63), table.ChiSquare(cfg.KeyBits))
	return nil
}

// runEncRuntime は Transform の処理時間を計測して表示します
func (a *App) runEncRuntime(args []string) error {
	if len(args) != 0 {
		return otperrors.NewUsageError("encruntime", "引数は指定できません")
	}
	cfg := a.config.EncRuntime
	gen := otp.NewKeyGenerator(a.newSource(0))

	elapsed, err := otp.MeasureTransformLatency(gen, cfg.KeyBits, cfg.SampleText)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncRuntime, err)
	}
	fmt.Fprintf(a.stdout, "%d ビット鍵での暗号化処理時間 (1回): %.4f ms\n", cfg.KeyBits, float64(elapsed)/float64(time.Millisecond))

	report, err := otp.MeasureTransformLatencyTrials(gen, cfg.KeyBits, cfg.SampleText, cfg.Trials)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncRuntime, err)
	}
	fmt.Fprintf(a.stdout, "%d ビット鍵での暗号化処理時間 (%d 回): %s\n", cfg.KeyBits, report.Trials, report)
	return nil
}

// ExitCode はエラーに対応する終了コードを返します
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, otperrors.ErrUsage), errors.Is(err, config.ErrInvalidConfig):
		return ExitUsage
	default:
		return ExitFailure
	}
}
