// Package extract pulls plain text out of uploaded documents so the chat
// pipeline can inline it into prompts instead of sending raw binaries.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const DocxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// IsDocument reports whether a file should be represented by extracted text
// rather than inline binary data.
func IsDocument(mimeType, name string) bool {
	if mimeType == DocxMimeType {
		return true
	}
	return strings.HasSuffix(strings.ToLower(name), ".docx")
}

// DocxText extracts the paragraph text of a DOCX archive (word/document.xml).
func DocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid docx archive: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx archive has no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// HTMLText returns the visible text of an HTML document, scripts and styles
// stripped.
func HTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	text := doc.Text()

	// Collapse whitespace runs left behind by removed markup.
	fields := strings.Fields(text)
	return strings.Join(fields, " "), nil
}
