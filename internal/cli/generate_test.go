package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"gds", []string{"gds"}},
		{"gds,svg", []string{"gds", "svg"}},
		{" gds , svg ", []string{"gds", "svg"}},
		{"gds,,svg", []string{"gds", "svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "chip")
	artifacts := map[string][]byte{
		"gds": []byte{0x00, 0x06},
		"svg": []byte("<svg/>"),
	}

	paths, err := writeArtifacts(base, artifacts, []string{"gds", "svg"})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d paths, want 2", len(paths))
	}
	for i, ext := range []string{"gds", "svg"} {
		want := base + "." + ext
		if paths[i] != want {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want)
		}
		data, err := os.ReadFile(want)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, artifacts[ext]) {
			t.Errorf("%s content mismatch", want)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "qf8")

	root := testRoot(t)
	root.SetArgs([]string{"generate", "-o", base, "-f", "gds,svg", "--write-config"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	for _, ext := range []string{"gds", "svg", "toml"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing artifact %s.%s: %v", base, ext, err)
		}
	}

	// GDS artifact starts with a HEADER record.
	data, err := os.ReadFile(base + ".gds")
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || data[2] != 0x00 || data[3] != 0x02 {
		t.Error("generated file is not a GDS stream")
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	root := testRoot(t)
	root.SetArgs([]string{"generate", "-f", "png", "-o", filepath.Join(t.TempDir(), "x")})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestGenerateMissingConfig(t *testing.T) {
	root := testRoot(t)
	root.SetArgs([]string{"generate", "-c", filepath.Join(t.TempDir(), "absent.toml")})
	if err := root.Execute(); err == nil {
		t.Error("expected error for missing design file")
	}
}
