package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
)

// サポートするエクスポート形式
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// DefaultFormat はフォーマット未指定時に使用される形式です。
const DefaultFormat = FormatCSV

// RecordWriter は価格履歴を1つの形式で w に書き出す関数です。
type RecordWriter func(w io.Writer, records []entity.PriceRecord) error

// ExportUsecase は価格履歴をファイルへ書き出すユースケースです。
type ExportUsecase struct {
	writers map[string]RecordWriter
}

// NewExportUsecase は形式名（小文字）ごとの RecordWriter を受け取り、新しい ExportUsecase を作成します。
func NewExportUsecase(writers map[string]RecordWriter) *ExportUsecase {
	ws := make(map[string]RecordWriter, len(writers))
	for format, w := range writers {
		ws[strings.ToLower(format)] = w
	}
	return &ExportUsecase{writers: ws}
}

// CheckFormat は format が書き出し可能な形式かを確認します。空文字は DefaultFormat として扱います。
func (eu *ExportUsecase) CheckFormat(format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultFormat
	}
	if _, ok := eu.writers[format]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return nil
}

// DefaultFileName はファイル名未指定時のファイル名 "{coin}_data.{format}" を返します。
func DefaultFileName(coin, format string) string {
	return fmt.Sprintf("%s_data.%s", coin, format)
}

// Export は records を format 形式で fileName に書き出し、書き出したパスを返します。
//
// format が空の場合は csv、fileName が空の場合は DefaultFileName(coin, format) を使用します。
// csv/json 以外の形式は domain.ErrUnsupportedFormat を返し、ファイルは作成しません。
func (eu *ExportUsecase) Export(records []entity.PriceRecord, coin, format, fileName string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultFormat
	}
	if err := eu.CheckFormat(format); err != nil {
		return "", err
	}
	write := eu.writers[format]
	if fileName == "" {
		fileName = DefaultFileName(coin, format)
	}

	f, err := os.Create(fileName)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fileName, err)
	}
	if err := write(f, records); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", fileName, err)
	}

	slog.Info("exported price history", "file", fileName, "format", format, "records", len(records))
	return fileName, nil
}
