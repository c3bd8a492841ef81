package services

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	ErrNoText            = errors.New("no text content found")
)

// ResumeParser extracts plain text from an uploaded resume.
type ResumeParser interface {
	ExtractText(filename string, data []byte) (*ResumeContent, error)
}

type ResumeContent struct {
	Text        string
	ContentType string
	PageCount   int
}

type resumeParser struct{}

func NewResumeParser() ResumeParser {
	return &resumeParser{}
}

// ContentTypeFor maps a file name onto the MIME type the parser handles, or
// "" when the extension is not supported.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	}
	return ""
}

func (p *resumeParser) ExtractText(filename string, data []byte) (*ResumeContent, error) {
	contentType := ContentTypeFor(filename)

	var (
		text  string
		pages int
		err   error
	)

	switch contentType {
	case MimePDF:
		text, pages, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
		pages = 1
	case MimeText:
		text, pages = string(data), 1
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	text = CleanText(text)
	if text == "" {
		return nil, ErrNoText
	}

	return &ResumeContent{
		Text:        text,
		ContentType: contentType,
		PageCount:   pages,
	}, nil
}

func extractPDFText(data []byte) (string, int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTab          = regexp.MustCompile(`<w:tab/>|<w:br/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, " ")
	content = xmlTag.ReplaceAllString(content, "")

	return unescapeXML(content), nil
}

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
