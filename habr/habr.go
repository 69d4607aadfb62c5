// Package habr converts the Markdown dialect of the Rust book into the markup accepted by Habrahabr.
//
// The conversion has two stages. The Parser groups the lines of the document in blocks
// (headers, paragraphs, source code, lists, anchors and reference definitions), and the
// Formatter renders each block, rewriting inline code, bold, italics and links.
// A Variant adapts the output to a concrete publication.
package habr

import (
	"go.uber.org/zap"
)

// Convert parses src and renders it with variant v.
// fileName is for logging/tracing purposes.
func Convert(fileName string, src []byte, v *Variant, logger *zap.SugaredLogger) ([]byte, error) {

	doc, err := ParseFromBytes(fileName, src, v, logger)
	if err != nil {
		return nil, err
	}

	return NewFormatter(doc, v, logger).Format()
}

// ConvertFile reads fileName and renders it with variant v
func ConvertFile(fileName string, v *Variant, logger *zap.SugaredLogger) ([]byte, error) {

	doc, err := ParseFromFile(fileName, v, logger)
	if err != nil {
		return nil, err
	}

	return NewFormatter(doc, v, logger).Format()
}
