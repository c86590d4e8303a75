package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/m4bmerge/internal/config"
)

func TestConfigure(t *testing.T) {
	Configure(config.ColorAlways)
	if !Enabled() || Red == "" {
		t.Error("ColorAlways should enable colors")
	}
	Configure(config.ColorNever)
	if Enabled() || Red != "" || Magenta != "" {
		t.Error("ColorNever should clear all colors")
	}
}

func TestResolveAutoOnRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
	if resolve(config.ColorAuto, f) {
		t.Error("auto mode should not color output going to a file")
	}
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}
}
