package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "element %d: missing ID", 42)

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDocument)
	}
	if err.Message != "element 42: missing ID" {
		t.Errorf("Message = %q, want %q", err.Message, "element 42: missing ID")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "merge nodes")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	want := "STORE_ERROR: merge nodes: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeInvalidMetadata, "bad tag"), ErrCodeInvalidMetadata, true},
		{"DifferentCode", New(ErrCodeInvalidMetadata, "bad tag"), ErrCodeStore, false},
		{"PlainError", stderrors.New("plain"), ErrCodeInternal, false},
		{"WrappedInFmt", fmt.Errorf("outer: %w", New(ErrCodeNotFound, "gone")), ErrCodeNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeConfig, "bad config")); got != ErrCodeConfig {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeConfig)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidPath, "expected a .vue file")); got != "expected a .vue file" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain message")); got != "plain message" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Valid", "maps/concepts.vue", false},
		{"ValidUppercase", "MAP.VUE", false},
		{"Empty", "", true},
		{"WrongExtension", "graph.json", true},
		{"NoExtension", "graph", true},
		{"ControlChars", "bad\x01.vue", true},
		{"NullByte", "bad\x00.vue", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelationshipType(t *testing.T) {
	tests := []struct {
		name    string
		relType string
		wantErr bool
	}{
		{"Simple", "RELATES_TO", false},
		{"Lowercase", "directed", false},
		{"Digits", "REL_2", false},
		{"Empty", "", true},
		{"LeadingDigit", "2REL", true},
		{"Space", "RELATES TO", true},
		{"Injection", "X]->(n) DETACH DELETE n//", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelationshipType(tt.relType)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelationshipType(%q) error = %v, wantErr %v", tt.relType, err, tt.wantErr)
			}
		})
	}
}
