package testutils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// GenerateOverBytesUnderRunes генерирует строку, длина которой в рунах будет всегда меньше длины в байтах.
func GenerateOverBytesUnderRunes(count int) string {
	symbol := "😁" // 4 байта, 1 руна
	return strings.Repeat(symbol, count)
}

// FormFile файл для multipart формы.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody собирает multipart/form-data тело запроса. Возвращает тело и значение заголовка Content-Type.
func MultipartBody(fields map[string]string, files ...FormFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %s", k, err.Error())
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %s", f.Field, err.Error())
		}
		if _, err = part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %s", f.Field, err.Error())
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %s", err.Error())
	}
	return &buf, w.FormDataContentType(), nil
}

// PNGHeader минимальная сигнатура png, достаточная для определения mime типа.
var PNGHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'} //nolint:gochecknoglobals
