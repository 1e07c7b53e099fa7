package term

import (
	"os"
	"testing"

	"github.com/backmassage/jpgfromraw/internal/config"
)

func TestConfigure(t *testing.T) {
	defer Configure(config.ColorNever)

	Configure(config.ColorAlways)
	if !Enabled() || Red == "" || NC == "" {
		t.Errorf("ColorAlways: Enabled()=%v Red=%q NC=%q", Enabled(), Red, NC)
	}

	Configure(config.ColorNever)
	if Enabled() || Red != "" || Magenta != "" {
		t.Errorf("ColorNever: Enabled()=%v Red=%q Magenta=%q", Enabled(), Red, Magenta)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true")
	}
	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
}
