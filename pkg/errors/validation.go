package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentPath validates a VUE document path.
// The extraction pipeline only accepts .vue files; anything else is rejected
// before the file is opened so the caller gets a clear message instead of a
// parse failure on arbitrary content.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "document path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "document path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "document path contains invalid control characters")
		}
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "document path contains null bytes")
	}

	if !strings.HasSuffix(strings.ToLower(path), ".vue") {
		return New(ErrCodeInvalidPath, "expected a .vue file, got %q", path)
	}

	return nil
}

// ValidateRelationshipType validates a Neo4j relationship type name.
// Relationship types are interpolated into Cypher, so only a conservative
// identifier character set is accepted.
func ValidateRelationshipType(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "relationship type cannot be empty")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return New(ErrCodeInvalidInput, "relationship type contains invalid character %q", r)
		}
	}
	if unicode.IsDigit(rune(name[0])) {
		return New(ErrCodeInvalidInput, "relationship type cannot start with a digit")
	}
	return nil
}
