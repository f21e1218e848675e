package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// Extractor handles Office Open XML word-processor documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the document format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatDOCX
}

// Extract returns the body paragraphs in document order, each followed by a newline.
func (e *Extractor) Extract(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	// Open as ZIP archive
	reader, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: not a zip archive: %v", domain.ErrParse, err)
	}

	content, err := readPart(reader, documentPart)
	if err != nil {
		return "", err
	}

	return parseDocumentXML(content)
}

// readPart returns the bytes of a named archive member.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrParse, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrParse, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: missing %s", domain.ErrParse, name)
}

// parseDocumentXML walks word/document.xml and collects the text of every
// paragraph that is a direct child of the body. Table cells are skipped, as
// are text boxes anchored inside a body paragraph. Tabs and breaks count only
// inside runs; paragraph properties also use a tab element for tab stops.
func parseDocumentXML(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		result  strings.Builder
		stack   []string
		inPara  bool
		inText  bool
		sawBody bool
		// stack depth of the open w:txbxContent, 0 outside text boxes
		boxDepth int
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)

			switch {
			case boxDepth > 0:
			case name == "txbxContent":
				boxDepth = len(stack)
			case name == "body":
				sawBody = true
			case name == "p" && parent == "body":
				inPara = true
			case !inPara:
			case name == "t":
				inText = true
			case parent != "r":
			case name == "tab":
				result.WriteByte('\t')
			case name == "br" || name == "cr":
				result.WriteByte('\n')
			}

		case xml.EndElement:
			name := t.Name.Local
			if boxDepth > 0 {
				if len(stack) == boxDepth {
					boxDepth = 0
				}
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				continue
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch {
			case name == "t":
				inText = false
			case name == "p" && inPara && len(stack) > 0 && stack[len(stack)-1] == "body":
				result.WriteByte('\n')
				inPara = false
			}

		case xml.CharData:
			if inPara && inText && boxDepth == 0 {
				result.Write(t)
			}
		}
	}

	if !sawBody {
		return "", fmt.Errorf("%w: %s has no body", domain.ErrParse, documentPart)
	}
	return result.String(), nil
}
