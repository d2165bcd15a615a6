package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/sirupsen/logrus"
)

func TestLogToFileCapturesLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")

	f, err := logToFile(path)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		log.SetOutput(os.Stderr)
		f.Close()
	})

	logger.LogErr(serr.New("backend down"), "title", "Inception")
	log.Print("stdlib line")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	for _, want := range []string{"backend down", "stdlib line"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
}
