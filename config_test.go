package whitespace_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zephyrtronium/whitespace"
)

// TestParseConfig tests YAML configuration.
func TestParseConfig(t *testing.T) {
	cases := map[string]struct {
		yaml string
		want whitespace.Config
		bad  bool
	}{
		"Empty": {
			yaml: "",
			want: *whitespace.DefaultConfig(),
		},
		"All": {
			yaml: "limit: 1000\nencoding: utf8\ntrace: true\nraw_terminal: true\nbackend: translate\npackage: hello\n",
			want: whitespace.Config{
				Limit:       1000,
				Encoding:    "utf8",
				Trace:       true,
				RawTerminal: true,
				Backend:     whitespace.Translate,
				Package:     "hello",
			},
		},
		"Partial": {
			yaml: "limit: 5\n",
			want: whitespace.Config{Limit: 5, Encoding: "latin1", Backend: whitespace.Interpret, Package: "main"},
		},
		"Unknown":     {yaml: "limt: 5\n", bad: true},
		"BadEncoding": {yaml: "encoding: ebcdic\n", bad: true},
		"BadBackend":  {yaml: "backend: jit\n", bad: true},
		"Negative":    {yaml: "limit: -1\n", bad: true},
		"BadType":     {yaml: "limit: lots\n", bad: true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := whitespace.ParseConfig([]byte(c.yaml))
			if c.bad {
				if err == nil {
					t.Errorf("%q parsed to %+v", c.yaml, cfg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if *cfg != c.want {
				t.Errorf("wanted %+v, got %+v", c.want, *cfg)
			}
		})
	}
}

// TestLoadConfig tests reading configuration from a file and writing it back.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.yaml")
	cfg := whitespace.DefaultConfig()
	cfg.Limit = 42
	cfg.Encoding = "windows1252"
	b, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := whitespace.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("wanted %+v, got %+v", *cfg, *got)
	}
	if _, err := whitespace.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}

// TestApply tests configuring a VM.
func TestApply(t *testing.T) {
	p, err := whitespace.Parse([]byte("   \t\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := whitespace.DefaultConfig()
	cfg.Limit = 7
	cfg.Encoding = "utf8"
	cfg.Trace = true
	vm, err := whitespace.NewVM(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var trace bytes.Buffer
	if err := cfg.Apply(vm, &trace); err != nil {
		t.Fatal(err)
	}
	if vm.Limit != 7 || vm.Encoding != whitespace.UTF8 {
		t.Errorf("wrong settings: limit %d, encoding %v", vm.Limit, vm.Encoding)
	}
	if err := vm.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(trace.String(), "trace: ") || !strings.Contains(trace.String(), "push 1") {
		t.Errorf("wrong trace %q", trace.String())
	}

	vm, err = whitespace.NewVM(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Apply(vm, nil); err != nil {
		t.Fatal(err)
	}
	if vm.Trace != nil {
		t.Error("trace logger installed without a writer")
	}
	cfg.Encoding = "ebcdic"
	if err := cfg.Apply(vm, nil); err == nil {
		t.Error("bad encoding applied")
	}
}
