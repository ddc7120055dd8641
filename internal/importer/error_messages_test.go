package importer

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"duplicate key", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"foreign key", errors.New("insert: violates foreign key constraint"), "DB003"},
		{"connection refused", errors.New("dial tcp: connection refused"), "DB004"},
		{"context deadline", errors.New("context deadline exceeded"), "DB006"},
		{"empty file", ErrEmptyFile, "FILE001"},
		{"blank header", ErrBlankHeader, "FILE002"},
		{"unknown kind", fmt.Errorf("%w: %q", ErrUnknownKind, "droni"), "IMP001"},
		{"unmatched falls back", errors.New("something exotic"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.code {
				t.Errorf("MapError(%v).Code = %s, want %s", tt.err, got.Code, tt.code)
			}
		})
	}

	if got := MapError(nil); got.Code != "" {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrEmptyFile)
	if !strings.Contains(got, "FILE001") || !strings.Contains(got, "Code:") {
		t.Errorf("FormatUserError = %q, want message with code", got)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}
