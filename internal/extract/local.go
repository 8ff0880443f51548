package extract

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
}

var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
	".xml":  true,
	".html": true,
	".log":  true,
}

// localParser extracts text in-process: PDFs via the pdf library, plain-text
// formats verbatim, images as a fixed placeholder. Everything else, and any
// parse failure, degrades to an empty string.
type localParser struct{}

// NewLocalParser creates the default in-process Parser.
func NewLocalParser() Parser {
	return &localParser{}
}

func (p *localParser) Parse(_ context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if imageExtensions[ext] {
		return ImagePlaceholder, nil
	}
	if len(data) == 0 {
		return "", nil
	}

	switch {
	case ext == ".pdf":
		return pdfText(data), nil
	case textExtensions[ext]:
		if utf8.Valid(data) {
			return string(data), nil
		}
		return "", nil
	default:
		return "", nil
	}
}

// pdfText returns the PDF's plain text, or "" if the bytes are not a
// readable PDF. The pdf library panics on some malformed inputs, so the
// recover here is part of the degrade-to-empty contract.
func pdfText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return ""
	}
	return string(out)
}
