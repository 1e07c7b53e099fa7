package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/backmassage/jpgfromraw/internal/rawscan"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/photos/2024", "/photos/2024"},
		{"single trailing slash", "/photos/2024/", "/photos/2024"},
		{"multiple trailing slashes", "/photos/2024///", "/photos/2024"},
		{"root path", "/", "/"},
		{"relative path", "previews", "previews"},
		{"relative with slash", "previews/", "previews"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dcr", "dcr"},
		{".DCR", "dcr"},
		{" 3fr ", "3fr"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeExtension(tt.in); got != tt.want {
			t.Errorf("NormalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtensions(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Extensions(); len(got) != len(DefaultExtensions) {
		t.Errorf("no extra: got %d extensions, want %d", len(got), len(DefaultExtensions))
	}

	cfg.Extension = ".DCR"
	got := cfg.Extensions()
	if len(got) != len(DefaultExtensions)+1 || got[len(got)-1] != "dcr" {
		t.Errorf("extra dcr: got %v", got)
	}

	cfg.Extension = "NEF"
	if got := cfg.Extensions(); len(got) != len(DefaultExtensions) {
		t.Errorf("duplicate extra should not be appended twice, got %v", got)
	}

	// The package-level list must not be mutated by appends.
	if DefaultExtensions[len(DefaultExtensions)-1] != "x3f" {
		t.Errorf("DefaultExtensions mutated: %v", DefaultExtensions)
	}
}

func TestValidate_Transfers(t *testing.T) {
	tests := []struct {
		name      string
		transfers int
		wantErr   bool
	}{
		{"one", 1, false},
		{"default", 8, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/in"
			cfg.Transfers = tt.transfers
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Enums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Select = rawscan.Selection(7)
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an unknown selection")
	}

	cfg = DefaultConfig()
	cfg.CheckOnly = true
	cfg.ColorMode = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an unknown color mode")
	}
}

func TestValidate_Extension(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		want    string
		wantErr bool
	}{
		{"bare", "dcr", "dcr", false},
		{"dotted upper", ".3FR", "3fr", false},
		{"empty", "", "", false},
		{"path separator", "a/b", "", true},
		{"double extension", "tar.gz", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/in"
			cfg.Extension = tt.ext
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Extension != tt.want {
				t.Errorf("Extension = %q, want %q", cfg.Extension, tt.want)
			}
		})
	}
}

func TestValidate_RequiresInput(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without an input dir")
	}

	cfg.InputDir = "/in"
	cfg.OutputDir = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("empty OutputDir should default to \".\", got %q", cfg.OutputDir)
	}
}

func TestValidate_CheckOnlySkipsPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass with empty paths when CheckOnly is true, got: %v", err)
	}
}

func TestOutputNested(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   bool
	}{
		{"separate directories", "/photos/raw", "/photos/jpg", false},
		{"output equals input", "/photos", "/photos", false},
		{"output inside input", "/photos", "/photos/previews", true},
		{"output is parent of input", "/photos/raw", "/photos", false},
		{"similar prefix not nested", "/photos/raw", "/photos/raw2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputNested(tt.input, tt.output); got != tt.want {
				t.Errorf("OutputNested(%q, %q) = %v, want %v", tt.input, tt.output, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Transfers != 8 {
		t.Errorf("default Transfers = %d, want 8", cfg.Transfers)
	}
	if cfg.OutputDir != "." {
		t.Errorf("default OutputDir = %q, want \".\"", cfg.OutputDir)
	}
	if cfg.Select != rawscan.Largest {
		t.Errorf("default Select = %v, want largest", cfg.Select)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.DryRun || cfg.SkipExisting || cfg.ListOnly {
		t.Error("behavior flags should default to off")
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name: "input only",
			args: []string{"/raw/"},
			check: func(t *testing.T, cfg Config) {
				if cfg.InputDir != "/raw" || cfg.OutputDir != "." {
					t.Errorf("paths = %q, %q", cfg.InputDir, cfg.OutputDir)
				}
			},
		},
		{
			name: "short flags",
			args: []string{"-t", "2", "-e", "dcr", "-s", "smallest", "/raw", "/out"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Transfers != 2 || cfg.Extension != "dcr" || cfg.Select != rawscan.Smallest {
					t.Errorf("got transfers=%d ext=%q select=%v", cfg.Transfers, cfg.Extension, cfg.Select)
				}
				if cfg.OutputDir != "/out" {
					t.Errorf("OutputDir = %q, want /out", cfg.OutputDir)
				}
			},
		},
		{
			name: "long flags",
			args: []string{"--transfers", "16", "--extension", ".3fr", "--dry-run", "--skip-existing", "--no-color", "/raw"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Transfers != 16 || cfg.Extension != ".3fr" || !cfg.DryRun || !cfg.SkipExisting {
					t.Errorf("got %+v", cfg)
				}
				if cfg.ColorMode != ColorNever {
					t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
				}
			},
		},
		{
			name: "list and log file",
			args: []string{"--list", "-l", "/tmp/run.log", "-v", "/raw"},
			check: func(t *testing.T, cfg Config) {
				if !cfg.ListOnly || cfg.LogFile != "/tmp/run.log" || !cfg.Verbose {
					t.Errorf("got %+v", cfg)
				}
			},
		},
		{
			name: "check mode needs no paths",
			args: []string{"--check"},
			check: func(t *testing.T, cfg Config) {
				if !cfg.CheckOnly {
					t.Error("CheckOnly not set")
				}
			},
		},
		{name: "missing input", args: []string{}, wantErr: true},
		{name: "too many paths", args: []string{"a", "b", "c"}, wantErr: true},
		{name: "bad selection", args: []string{"--select", "median", "/raw"}, wantErr: true},
		{name: "unknown flag", args: []string{"--frobnicate", "/raw"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			var out bytes.Buffer
			_, err := parseArgs(&cfg, "test", tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	n, err := parseArgs(&cfg, "9.9.9", []string{"-h"}, &out)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !n.showHelp {
		t.Error("showHelp not set")
	}
	text := out.String()
	for _, want := range []string{"jpgfromraw v9.9.9", "--transfers", "--extension", "x3f"} {
		if !strings.Contains(text, want) {
			t.Errorf("usage missing %q:\n%s", want, text)
		}
	}
}
