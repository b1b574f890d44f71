// Package extract pulls plain text out of résumé documents. PDF, DOCX, and
// plain-text files are supported; anything else, and any file that fails to
// parse, yields an error the caller downgrades to a per-file warning.
package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages caps how many pages of a PDF are read. Résumés past page 30
// are almost certainly exports gone wrong.
const maxPDFPages = 30

// Error reports a failed extraction for one file.
type Error struct {
	File    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return "extraction failed for " + e.File + ": " + e.Message + ": " + e.Cause.Error()
	}
	return "extraction failed for " + e.File + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FromFile extracts the plain text of the document at path. The format is
// chosen by extension.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{File: path, Message: "failed to read file", Cause: err}
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes extracts the plain text of a document given its filename (for
// format detection) and raw bytes.
func FromBytes(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return fromPDF(filename, data)
	case ".docx":
		return fromDOCX(filename, data)
	case ".txt", ".md", ".text":
		return normalizeWhitespace(string(data)), nil
	default:
		return "", &Error{File: filename, Message: "unsupported file format"}
	}
}

// fromPDF walks the document page by page, bounded to maxPDFPages.
func fromPDF(filename string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{File: filename, Message: "failed to open PDF", Cause: err}
	}

	pages := reader.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A torn page is skipped; the rest of the document still counts.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := normalizeWhitespace(sb.String())
	if result == "" {
		return "", &Error{File: filename, Message: "PDF contained no extractable text"}
	}
	return result, nil
}

// fromDOCX reads word/document.xml out of the zip container and strips the
// markup, turning paragraph ends into newlines.
func fromDOCX(filename string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{File: filename, Message: "failed to open DOCX container", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &Error{File: filename, Message: "failed to open document.xml", Cause: err}
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return "", &Error{File: filename, Message: "failed to read document.xml", Cause: err}
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", &Error{File: filename, Message: "no document.xml found in DOCX"}
	}

	content := string(docXML)
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = xmlTags.ReplaceAllString(content, " ")

	result := normalizeWhitespace(content)
	if result == "" {
		return "", &Error{File: filename, Message: "DOCX contained no extractable text"}
	}
	return result, nil
}

var (
	xmlTags          = regexp.MustCompile(`<[^>]+>`)
	horizontalSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns      = regexp.MustCompile(`\n+`)
)

// normalizeWhitespace collapses space runs and newline runs while keeping
// line structure, which the name resolver and section heuristics rely on.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = horizontalSpaces.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
