// Package interfaces はotpコマンドで使用するインターフェースを定義します
package interfaces

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
}

// TextStore は1行のテキストをファイルに読み書きするインターフェース
type TextStore interface {
	ReadLine(path string) (string, error)
	WriteLine(path string, text string) error
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
