package errors

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("store is locked"), "Error: store is locked"},
		{"wrapped", fmt.Errorf("saving task: %w", errors.New("disk full")), "Error: saving task: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("task %s not found", "abc"); got != "Error: task abc not found" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	if Report(&buf, nil) || buf.Len() != 0 {
		t.Errorf("Report(nil) wrote %q", buf.String())
	}
	if !Report(&buf, errors.New("boom")) {
		t.Fatal("Report() = false for a non-nil error")
	}
	if buf.String() != "Error: boom\n" {
		t.Errorf("Report() wrote %q", buf.String())
	}
}

func TestFatalExitsOnError(t *testing.T) {
	code := -1
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })

	Fatal(nil)
	if code != -1 {
		t.Errorf("Fatal(nil) exited with %d", code)
	}
	Fatalf("bad input %q", "x")
	if code != 1 {
		t.Errorf("Fatalf() exit code = %d, want 1", code)
	}
}
