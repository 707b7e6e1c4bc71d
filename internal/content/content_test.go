package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Logo != "Turma do Cricas" || c.LogoCompact != "Turminha do Cricas" {
		t.Errorf("logos = %q / %q", c.Logo, c.LogoCompact)
	}
	if len(c.Headlines) != 5 {
		t.Errorf("got %d headlines, want 5", len(c.Headlines))
	}
	if len(c.Members) == 0 {
		t.Error("default content has no members")
	}
	if len(c.Ranking) == 0 || len(c.Rules) == 0 || len(c.Jobs) == 0 {
		t.Error("default content has empty sections")
	}
}

func TestParseFillsLogos(t *testing.T) {
	c, err := Parse([]byte("title: Grupo\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Logo != "Grupo" || c.LogoCompact != "Grupo" {
		t.Errorf("logos = %q / %q, want title", c.Logo, c.LogoCompact)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("title: Grupo\nmembrs: []\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "membrs") {
		t.Errorf("error %q does not name the bad key", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := "title: Grupo\nmembers:\n  - name: Ana\n    emoji: \"🎯\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Members) != 1 || c.Members[0].Name != "Ana" {
		t.Errorf("members = %+v", c.Members)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if c.Title == "" {
		t.Error("empty path did not load default content")
	}
}
