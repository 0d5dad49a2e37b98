package inspect

import (
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestReadBody(t *testing.T) {
	got, err := ReadBody(strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("ReadBody() error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("ReadBody() = %q, want %q", got, "hello world")
	}
}

func TestReadBody_Empty(t *testing.T) {
	got, err := ReadBody(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadBody() error = %v", err)
	}
	if got != "" {
		t.Errorf("ReadBody() = %q, want empty", got)
	}
}

func TestReadBody_NilReader(t *testing.T) {
	got, err := ReadBody(nil)
	if err != nil {
		t.Fatalf("ReadBody() error = %v", err)
	}
	if got != "" {
		t.Errorf("ReadBody() = %q, want empty", got)
	}
}

func TestReadBody_ReadError(t *testing.T) {
	got, err := ReadBody(failingReader{})
	if err == nil {
		t.Fatal("ReadBody() expected error for failing reader, got nil")
	}
	if got != "" {
		t.Errorf("ReadBody() = %q, want no partial body on error", got)
	}
}
