// ABOUTME: Text extraction from policy document files (PDF, DOCX)
// ABOUTME: Sniffs magic bytes before parsing so mislabeled files fail with a clear error
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// TextExtractor turns a document file into raw text.
type TextExtractor interface {
	// ExtractText reads the file at path and returns its full text.
	ExtractText(path string) (string, error)
	// Recognizes reports whether this extractor handles the file's extension.
	Recognizes(path string) bool
}

// FileExtractor extracts text from PDF and DOCX files on disk.
type FileExtractor struct{}

// NewFileExtractor creates a FileExtractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Recognizes reports whether the file extension is one we can extract.
func (e *FileExtractor) Recognizes(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// ExtractText reads and extracts the file's text content.
func (e *FileExtractor) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty file: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))

	// Sniff magic bytes first, they are more reliable than the extension
	if isPDF(data) {
		return extractPDF(data)
	}
	if isZip(data) {
		return extractDOCX(data)
	}

	switch ext {
	case ".pdf":
		return "", fmt.Errorf("%s claims pdf but is missing the %%PDF header", path)
	case ".docx":
		return "", fmt.Errorf("%s claims docx but is not a valid zip container", path)
	}
	return "", fmt.Errorf("unsupported file type: %s", path)
}

func isPDF(b []byte) bool {
	// PDF starts with "%PDF-"
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	// ZIP local file header: PK\x03\x04
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

// extractDOCX harvests the <w:t> text runs from word/document.xml.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx zip: %w", err)
	}

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("docx missing word/document.xml")
	}

	rc, err := docXML.Open()
	if err != nil {
		return "", fmt.Errorf("docx open document.xml: %w", err)
	}
	defer rc.Close()

	var out strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "p":
				// paragraph boundary
				if out.Len() > 0 {
					out.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return out.String(), nil
}

var multiBlankRe = regexp.MustCompile(`\n{3,}`)

// tidyText trims trailing space per line and collapses runs of blank lines,
// keeping paragraph breaks intact for the chunker.
func tidyText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return multiBlankRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}
