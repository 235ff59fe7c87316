// Package vue parses VUE mind-map documents into an in-memory element tree.
//
// VUE (.vue) files carry a non-XML preamble before the actual document; this
// package strips everything up to the <LW-MAP opening tag and decodes the
// remainder with encoding/xml into [Element] values that preserve child order,
// attributes, and raw text. Graph semantics live in pkg/extract; this package
// is purely the document boundary.
package vue

import (
	"bufio"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/vuegraph/vuegraph/pkg/errors"
)

// rootTag is the document root element of a VUE map.
const rootTag = "LW-MAP"

// ReadDocument strips the non-XML preamble from r and parses the remaining
// XML into an element tree rooted at the LW-MAP element.
func ReadDocument(r io.Reader) (*Element, error) {
	br := bufio.NewReader(r)

	// Skip preamble lines until the root element opens.
	var found bool
	var xmlText strings.Builder
	for {
		line, err := br.ReadString('\n')
		if strings.HasPrefix(line, "<"+rootTag) {
			found = true
			xmlText.WriteString(line)
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
		}
	}
	if !found {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no <%s> root element found", rootTag)
	}
	if _, err := io.Copy(&xmlText, br); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
	}

	root := &Element{}
	if err := xml.Unmarshal([]byte(xmlText.String()), root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse XML")
	}
	if root.Tag != rootTag {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unexpected root element <%s>", root.Tag)
	}
	return root, nil
}

// ReadDocumentFile opens and parses a .vue file.
// The path must carry the .vue extension; see [errors.ValidateDocumentPath].
func ReadDocumentFile(path string) (*Element, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f)
}
