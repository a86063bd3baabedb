package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shiroemons/go-onetimepad/pkg/otp"
)

func TestParseArgs(t *testing.T) {
	var out bytes.Buffer
	cfg, err := ParseArgs([]string{"-d", "-charset", "LATIN1", "-samples", "100", "-bits", "3", "enc", "k.txt", "p.txt", "c.txt"}, &out)
	if err != nil {
		t.Fatalf("ParseArgs error: %v", err)
	}

	if !cfg.DebugMode {
		t.Error("Expected DebugMode to be true")
	}
	if cfg.Charset != CharsetLatin1 {
		t.Errorf("Expected Charset 'latin1', got '%s'", cfg.Charset)
	}
	if cfg.KeyFreq.Samples != 100 || cfg.KeyFreq.KeyBits != 3 {
		t.Errorf("Expected keyfreq 100/3, got %d/%d", cfg.KeyFreq.Samples, cfg.KeyFreq.KeyBits)
	}
	if cfg.Command != "enc" {
		t.Errorf("Expected Command 'enc', got '%s'", cfg.Command)
	}
	if strings.Join(cfg.Args, ",") != "k.txt,p.txt,c.txt" {
		t.Errorf("Expected Args [k.txt p.txt c.txt], got %v", cfg.Args)
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"keyfreq"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs error: %v", err)
	}
	if cfg.Charset != CharsetUTF8 {
		t.Errorf("Charset = %s", cfg.Charset)
	}
	if cfg.Source != SourceCrypto || cfg.Seed != -1 {
		t.Errorf("Source/Seed = %s/%d", cfg.Source, cfg.Seed)
	}
	if cfg.KeyFreq.Samples != otp.DefaultSampleCount || cfg.KeyFreq.KeyBits != otp.DefaultDistributionBits {
		t.Errorf("KeyFreq = %+v", cfg.KeyFreq)
	}
	if cfg.EncRuntime.KeyBits != otp.DefaultLatencyBits || cfg.EncRuntime.SampleText != otp.DefaultLatencySample {
		t.Errorf("EncRuntime = %+v", cfg.EncRuntime)
	}
	if len(cfg.Args) != 0 {
		t.Errorf("Args = %v", cfg.Args)
	}
}

func TestParseArgs_SeedImpliesMT(t *testing.T) {
	cfg, err := ParseArgs([]string{"-seed", "7", "keygen", "8", "out.txt"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != SourceMT {
		t.Errorf("Source = %s, want mt", cfg.Source)
	}

	// 同じシードなら同じ乱数列
	a, _ := otp.NewKeyGenerator(cfg.NewSource(0)).Generate(64)
	b, _ := otp.NewKeyGenerator(otp.NewMTSource(7)).Generate(64)
	if a != b {
		t.Error("NewSource(0) should be seeded with 7")
	}
}

func TestParseArgs_MTWithoutSeed(t *testing.T) {
	cfg, err := ParseArgs([]string{"-source", "mt"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 5489 {
		t.Errorf("Seed = %d, want 5489", cfg.Seed)
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"未知の文字コード", []string{"-charset", "ebcdic"}},
		{"未知の乱数源", []string{"-source", "dice"}},
		{"32ビットを超えるシード", []string{"-seed", "4294967296"}},
		{"未知のフラグ", []string{"-unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args, &bytes.Buffer{}); err == nil {
				t.Error("Expected error but got none")
			}
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseArgs([]string{"-h"}, &out)
	if !IsHelp(err) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "keygen <nBits> <outPath>") {
		t.Errorf("Usage output = %q", out.String())
	}
}

func TestParseArgs_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "otp.yml")
	content := `charset: latin1
seed: 11
keyfreq:
  samples: 200
  key_bits: 2
  workers: 4
encruntime:
  trials: 5
  sample_text: "ab"
  key_bits: 16
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// フラグは設定ファイルより優先される
	cfg, err := ParseArgs([]string{"-config", path, "-samples", "50", "keyfreq"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs error: %v", err)
	}

	if cfg.Charset != CharsetLatin1 {
		t.Errorf("Charset = %s", cfg.Charset)
	}
	if cfg.Seed != 11 || cfg.Source != SourceMT {
		t.Errorf("Seed/Source = %d/%s", cfg.Seed, cfg.Source)
	}
	if cfg.KeyFreq.Samples != 50 {
		t.Errorf("Samples = %d, want 50 (flag)", cfg.KeyFreq.Samples)
	}
	if cfg.KeyFreq.KeyBits != 2 || cfg.KeyFreq.Workers != 4 {
		t.Errorf("KeyFreq = %+v", cfg.KeyFreq)
	}
	if cfg.EncRuntime.Trials != 5 || cfg.EncRuntime.SampleText != "ab" || cfg.EncRuntime.KeyBits != 16 {
		t.Errorf("EncRuntime = %+v", cfg.EncRuntime)
	}
	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath = %s", cfg.ConfigPath)
	}
}

func TestParseArgs_SourceAndSeedPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		args       []string
		wantSource string
		wantSeed   int64
		wantErr    bool
	}{
		{
			name:       "フラグの乱数源はファイルのシードより優先",
			file:       "seed: 7\n",
			args:       []string{"-source", "crypto"},
			wantSource: SourceCrypto,
			wantSeed:   -1,
		},
		{
			name:       "フラグのmathもファイルのシードより優先",
			file:       "seed: 7\n",
			args:       []string{"-source", "math"},
			wantSource: SourceMath,
			wantSeed:   -1,
		},
		{
			name:       "フラグのmtはファイルのシードを使う",
			file:       "seed: 7\n",
			args:       []string{"-source", "MT"},
			wantSource: SourceMT,
			wantSeed:   7,
		},
		{
			name:       "フラグのシードはファイルの乱数源より優先",
			file:       "source: crypto\n",
			args:       []string{"-seed", "3"},
			wantSource: SourceMT,
			wantSeed:   3,
		},
		{
			name:       "ファイルのシードのみ",
			file:       "seed: 11\n",
			wantSource: SourceMT,
			wantSeed:   11,
		},
		{
			name:    "ファイル内で乱数源とシードが矛盾",
			file:    "source: crypto\nseed: 7\n",
			wantErr: true,
		},
		{
			name:    "フラグで乱数源とシードが矛盾",
			file:    "charset: utf8\n",
			args:    []string{"-source", "crypto", "-seed", "7"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "otp.yml")
			if err := os.WriteFile(path, []byte(tt.file), 0644); err != nil {
				t.Fatal(err)
			}
			args := append([]string{"-config", path}, tt.args...)
			cfg, err := ParseArgs(append(args, "keygen", "8", "key.txt"), &bytes.Buffer{})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("ParseArgs error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs error: %v", err)
			}
			if cfg.Source != tt.wantSource || cfg.Seed != tt.wantSeed {
				t.Errorf("Source/Seed = %s/%d, want %s/%d", cfg.Source, cfg.Seed, tt.wantSource, tt.wantSeed)
			}
		})
	}
}

func TestParseArgs_CryptoFlagIgnoresFileSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otp.yml")
	if err := os.WriteFile(path, []byte("seed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ParseArgs([]string{"-config", path, "-source", "crypto", "keygen", "8", "k"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs error: %v", err)
	}
	if _, ok := cfg.NewSource(0).(*otp.CryptoSource); !ok {
		t.Errorf("NewSource(0) = %T, want *otp.CryptoSource", cfg.NewSource(0))
	}
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, ErrReadConfig) {
		t.Errorf("missing file error = %v, want ErrReadConfig", err)
	}

	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("keyfreq: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadFile(&cfg, path); !errors.Is(err, ErrParseConfig) {
		t.Errorf("broken file error = %v, want ErrParseConfig", err)
	}
}

func TestNewSource(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.NewSource(0).(*otp.CryptoSource); !ok {
		t.Error("default source should be CryptoSource")
	}
	cfg.Source = SourceMath
	if _, ok := cfg.NewSource(0).(otp.MathSource); !ok {
		t.Error("math source should be MathSource")
	}
	cfg.Source = SourceMT
	cfg.Seed = 1
	a, _ := otp.NewKeyGenerator(cfg.NewSource(0)).Generate(64)
	b, _ := otp.NewKeyGenerator(cfg.NewSource(1)).Generate(64)
	if a == b {
		t.Error("workers should get different seeds")
	}
}

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer

	// デバッグモード有効
	logger := NewDebugLoggerWithWriter(true, &buf)
	logger.Printf("test message %d\n", 123)
	if !strings.Contains(buf.String(), "test message 123") {
		t.Errorf("Expected debug output to contain 'test message 123', got '%s'", buf.String())
	}

	// デバッグモード無効
	buf.Reset()
	logger = NewDebugLoggerWithWriter(false, &buf)
	logger.Printf("should not appear\n")
	if buf.Len() != 0 {
		t.Error("Debug output should not appear when debug mode is disabled")
	}
}
