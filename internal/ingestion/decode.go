package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a résumé file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
	FormatRTF  Format = "rtf"
	FormatODT  Format = "odt"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

var mimeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/msword":                      FormatDOC,
	"application/rtf":                         FormatRTF,
	"text/rtf":                                FormatRTF,
	"application/vnd.oasis.opendocument.text": FormatODT,
	"text/html":                               FormatHTML,
	"text/plain":                              FormatText,
}

var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".doc":  FormatDOC,
	".rtf":  FormatRTF,
	".odt":  FormatODT,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".txt":  FormatText,
	".md":   FormatText,
}

var docconvMime = map[Format]string{
	FormatDOC: "application/msword",
	FormatRTF: "application/rtf",
	FormatODT: "application/vnd.oasis.opendocument.text",
}

// DetectFormat picks a format from the MIME type, falling back to the file extension.
func DetectFormat(filename, mimeType string) (Format, bool) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if f, ok := mimeFormats[mimeType]; ok {
		return f, true
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(filename))]; ok {
		return f, true
	}
	return "", false
}

// Decode converts document bytes to raw text. The result is not normalized.
func Decode(filename, mimeType string, data []byte) (string, error) {
	format, ok := DetectFormat(filename, mimeType)
	if !ok {
		return "", &UnsupportedFormatError{Filename: filename, MimeType: mimeType}
	}

	switch format {
	case FormatPDF:
		return decodePDF(data)
	case FormatDOCX:
		return decodeDOCX(data)
	case FormatDOC, FormatRTF, FormatODT:
		return decodeWithDocconv(format, data)
	case FormatHTML:
		return decodeHTML(data)
	default:
		if !utf8.Valid(data) {
			return "", &DecodeError{Format: string(FormatText), Cause: fmt.Errorf("content is not valid UTF-8")}
		}
		return string(data), nil
	}
}

// decodePDF concatenates the plain text of every page in order.
func decodePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: string(FormatPDF), Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &DecodeError{Format: string(FormatPDF), Cause: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	docxBreakRe = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTabRe   = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
)

// decodeDOCX reads document.xml and strips the WordprocessingML markup.
func decodeDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: string(FormatDOCX), Cause: err}
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxBreakRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, " ")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// decodeWithDocconv handles the legacy formats docconv supports.
func decodeWithDocconv(format Format, data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), docconvMime[format], false)
	if err != nil {
		return "", &DecodeError{Format: string(format), Cause: err}
	}
	return res.Body, nil
}

// decodeHTML keeps visible body text, one block element per line.
func decodeHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &DecodeError{Format: string(FormatHTML), Cause: err}
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, section, header").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
