package router

import (
	"errors"
	"testing"
)

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		input   string
		path    string
		query   string
		changed bool
	}{
		{"", "/", "", true},
		{"/", "/", "", false},
		{"about", "/about", "", true},
		{"/about/", "/about", "", true},
		{"/a//b", "/a/b", "", true},
		{"/a/./b", "/a/b", "", true},
		{"/a/b/../c", "/a/c", "", true},
		{"/a?x=1&y=2", "/a", "x=1&y=2", false},
		{"/caf%C3%A9", "/caf%C3%A9", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := CanonicalizePath(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Path != tt.path || got.Query != tt.query || got.Changed != tt.changed {
				t.Errorf("CanonicalizePath(%q) = %+v, want {%s %s %v}", tt.input, got, tt.path, tt.query, tt.changed)
			}
		})
	}
}

func TestCanonicalizePathErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{`/a\b`, ErrBackslashInPath},
		{"/a\x00b", ErrNullByteInPath},
		{"/a%00b", ErrNullByteInPath},
		{"/a%GG", ErrInvalidPercentEscape},
		{"/a%2", ErrInvalidPercentEscape},
		{"/..", ErrPathEscapesRoot},
		{"/a/../../b", ErrPathEscapesRoot},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := CanonicalizePath(tt.input)
			if !errors.Is(err, tt.err) {
				t.Errorf("CanonicalizePath(%q) error = %v, want %v", tt.input, err, tt.err)
			}
		})
	}
}
