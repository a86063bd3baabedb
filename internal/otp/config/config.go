// Package config はotpコマンドの設定管理を行います
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-onetimepad/pkg/otp"
)

const Version = "0.1.0"

// 乱数源の種類
const (
	SourceCrypto = "crypto"
	SourceMath   = "math"
	SourceMT     = "mt"
)

// 文字コードの種類
const (
	CharsetUTF8   = "utf8"
	CharsetLatin1 = "latin1"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	ConfigPath string `yaml:"-"`
	Charset    string `yaml:"charset"`
	Source     string `yaml:"source"` // 空なら Seed に応じて決める
	Seed       int64  `yaml:"seed"`   // 0以上なら MT19937 をこのシードで使う

	KeyFreq    KeyFreqConfig    `yaml:"keyfreq"`
	EncRuntime EncRuntimeConfig `yaml:"encruntime"`

	DebugMode   bool `yaml:"debug"`
	ShowVersion bool `yaml:"-"`

	// サブコマンドとその引数
	Command string   `yaml:"-"`
	Args    []string `yaml:"-"`
}

// KeyFreqConfig は keyfreq コマンドの設定
type KeyFreqConfig struct {
	Samples int `yaml:"samples"`
	KeyBits int `yaml:"key_bits"`
	Workers int `yaml:"workers"` // 1以下なら逐次実行
}

// EncRuntimeConfig は encruntime コマンドの設定
type EncRuntimeConfig struct {
	KeyBits    int    `yaml:"key_bits"`
	Trials     int    `yaml:"trials"`
	SampleText string `yaml:"sample_text"`
}

// Default は既定の設定を返します
func Default() Config {
	return Config{
		Charset: CharsetUTF8,
		Seed:    -1,
		KeyFreq: KeyFreqConfig{
			Samples: otp.DefaultSampleCount,
			KeyBits: otp.DefaultDistributionBits,
			Workers: 1,
		},
		EncRuntime: EncRuntimeConfig{
			KeyBits:    otp.DefaultLatencyBits,
			Trials:     otp.DefaultLatencyTrials,
			SampleText: otp.DefaultLatencySample,
		},
	}
}

// ParseArgs はコマンドライン引数を解析して設定を返します。
// 優先順位は 既定値 < 設定ファイル (-config) < コマンドラインフラグ です。
func ParseArgs(args []string, output io.Writer) (*Config, error) {
	flags := flag.NewFlagSet("otp", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "Usage: otp [options] <command> [args]")
		fmt.Fprintln(flags.Output(), "Commands:")
		fmt.Fprintln(flags.Output(), "  enc <keyPath> <plaintextPath> <ciphertextPath>")
		fmt.Fprintln(flags.Output(), "  dec <keyPath> <ciphertextPath> <resultPath>")
		fmt.Fprintln(flags.Output(), "  keygen <nBits> <outPath>")
		fmt.Fprintln(flags.Output(), "  keyfreq")
		fmt.Fprintln(flags.Output(), "  encruntime")
		fmt.Fprintln(flags.Output(), "Options:")
		flags.PrintDefaults()
	}

	fv := Default()

	// 設定ファイル
	flags.StringVar(&fv.ConfigPath, "config", "", "path to YAML config file")

	// 文字コード
	flags.StringVar(&fv.Charset, "charset", fv.Charset, "charset of plaintext/result files (utf8, latin1)")

	// 乱数源
	flags.StringVar(&fv.Source, "source", SourceCrypto, "random source for keys (crypto, math, mt)")
	flags.Int64Var(&fv.Seed, "seed", fv.Seed, "seed for the deterministic MT19937 source (implies -source mt)")

	// keyfreq
	flags.IntVar(&fv.KeyFreq.Samples, "samples", fv.KeyFreq.Samples, "number of keys sampled by keyfreq")
	flags.IntVar(&fv.KeyFreq.KeyBits, "bits", fv.KeyFreq.KeyBits, "key length in bits for keyfreq")
	flags.IntVar(&fv.KeyFreq.Workers, "workers", fv.KeyFreq.Workers, "number of workers for keyfreq")

	// encruntime
	flags.IntVar(&fv.EncRuntime.KeyBits, "latency-bits", fv.EncRuntime.KeyBits, "key length in bits for encruntime")
	flags.IntVar(&fv.EncRuntime.Trials, "trials", fv.EncRuntime.Trials, "number of timed transforms for encruntime")

	// デバッグモード
	flags.BoolVar(&fv.DebugMode, "debug", false, "enable debug output")
	flags.BoolVar(&fv.DebugMode, "d", false, "enable debug output (shorthand)")

	// バージョン表示
	flags.BoolVar(&fv.ShowVersion, "version", false, "show version information")
	flags.BoolVar(&fv.ShowVersion, "v", false, "show version information (shorthand)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()
	if fv.ConfigPath != "" {
		if err := LoadFile(&cfg, fv.ConfigPath); err != nil {
			return nil, err
		}
		cfg.ConfigPath = fv.ConfigPath
	}

	// 明示的に指定されたフラグのみ上書き
	visited := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
		switch f.Name {
		case "charset":
			cfg.Charset = fv.Charset
		case "source":
			cfg.Source = fv.Source
		case "seed":
			cfg.Seed = fv.Seed
		case "samples":
			cfg.KeyFreq.Samples = fv.KeyFreq.Samples
		case "bits":
			cfg.KeyFreq.KeyBits = fv.KeyFreq.KeyBits
		case "workers":
			cfg.KeyFreq.Workers = fv.KeyFreq.Workers
		case "latency-bits":
			cfg.EncRuntime.KeyBits = fv.EncRuntime.KeyBits
		case "trials":
			cfg.EncRuntime.Trials = fv.EncRuntime.Trials
		case "debug", "d":
			cfg.DebugMode = fv.DebugMode
		case "version", "v":
			cfg.ShowVersion = fv.ShowVersion
		}
	})

	// 乱数源とシードはフラグで指定された側を設定ファイルより優先する
	switch {
	case visited["source"] && !visited["seed"] && !strings.EqualFold(cfg.Source, SourceMT):
		cfg.Seed = -1
	case visited["seed"] && !visited["source"]:
		cfg.Source = ""
	}

	if rest := flags.Args(); len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile はYAML設定ファイルを読み込んで cfg に反映します
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadConfig, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParseConfig, path, err)
	}
	return nil
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	c.Charset = strings.ToLower(c.Charset)
	switch c.Charset {
	case CharsetUTF8, CharsetLatin1:
	default:
		return fmt.Errorf("%w: charset %q", ErrInvalidConfig, c.Charset)
	}

	if c.Seed > int64(^uint32(0)) {
		return fmt.Errorf("%w: seed %d は32ビットを超えています", ErrInvalidConfig, c.Seed)
	}

	c.Source = strings.ToLower(c.Source)
	switch c.Source {
	case "":
		c.Source = SourceCrypto
		if c.Seed >= 0 {
			c.Source = SourceMT
		}
	case SourceMT:
		if c.Seed < 0 {
			c.Seed = 5489 // MT19937 の標準シード
		}
	case SourceCrypto, SourceMath:
		if c.Seed >= 0 {
			return fmt.Errorf("%w: seed は source %q と同時に指定できません", ErrInvalidConfig, c.Source)
		}
	default:
		return fmt.Errorf("%w: source %q", ErrInvalidConfig, c.Source)
	}
	return nil
}

// NewSource は設定に応じた乱数源を返します。
// worker はワーカーごとにシードをずらすために使います。
func (c *Config) NewSource(worker int) otp.RandomSource {
	switch c.Source {
	case SourceMT:
		return otp.NewMTSource(uint32(c.Seed) + uint32(worker))
	case SourceMath:
		return otp.MathSource{}
	default:
		return otp.NewCryptoSource()
	}
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("otp version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	out     io.Writer
}

// NewDebugLogger は標準エラー出力に書き込む新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerWithWriter(enabled, os.Stderr)
}

// NewDebugLoggerWithWriter は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerWithWriter(enabled bool, out io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: out}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(d.out, format, a...)
	}
}

// IsHelp はエラーが -h/-help の指定によるものか判定します
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
