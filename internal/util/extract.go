package util

import (
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// ExtractTranscript reads an uploaded plain-text transcript. The file is
// never written to disk.
func ExtractTranscript(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", errs.ErrMissingInput
	}
	if !isPlainText(file.Filename, file.Header.Get("Content-Type")) {
		return "", errs.ErrUnsupportedFile
	}
	f, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open transcript")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, "read transcript")
	}
	return DecodeTranscript(raw)
}

// DecodeTranscript validates raw as UTF-8 and drops a leading byte order mark.
// The rest of the text is returned verbatim.
func DecodeTranscript(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errs.ErrInvalidEncoding
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errs.Wrap(errs.ErrInvalidEncoding, err)
	}
	return string(out), nil
}

// browsers send .txt files as text/plain, but some send octet-stream or nothing
func isPlainText(name, contentType string) bool {
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/plain"
}
