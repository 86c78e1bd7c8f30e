package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"QUIET", LevelOff, false},
		{"", LevelNormal, false},
		{"info", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{" verbose ", LevelVerbose, false},
		{"loud", LevelNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLevelsFilterOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug line leaked at normal level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[INF] ") {
		t.Fatalf("expected info prefix, got %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(LevelOff)
	log.Error("silenced")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when off, got %q", buf.String())
	}

	log.SetLevel(LevelVerbose)
	log.Debug("now visible")
	if !strings.HasPrefix(buf.String(), "[DBG] ") || !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestWithTagsComponentAndSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelNormal, &buf)
	wiz := root.With("wizard")

	wiz.Info("step %s", "roast")
	if !strings.Contains(buf.String(), "wizard: step roast") {
		t.Fatalf("expected component tag, got %q", buf.String())
	}

	buf.Reset()
	root.SetLevel(LevelOff)
	wiz.Warn("dropped")
	if buf.Len() != 0 {
		t.Fatalf("child should follow the root level, got %q", buf.String())
	}
	if wiz.GetLevel() != LevelOff {
		t.Fatalf("expected off, got %s", wiz.GetLevel())
	}

	root.SetLevel(LevelVerbose)
	root.With("a").With("b").Debug("nested")
	if !strings.Contains(buf.String(), "a: b: nested") {
		t.Fatalf("expected nested tags, got %q", buf.String())
	}
}
