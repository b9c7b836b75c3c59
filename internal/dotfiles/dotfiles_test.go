package dotfiles

import (
	"os"
	"path/filepath"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestEnsureGitignoreEntry_Appends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, GITIGNORE_FILE_NAME)
	if err := os.WriteFile(path, []byte("build/\nPods/"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := EnsureGitignoreEntry(dir, CLIRC_FILE_NAME)
	if err != nil || !changed {
		t.Fatalf("EnsureGitignoreEntry() = %v, %v", changed, err)
	}
	if got, want := readFile(t, path), "build/\nPods/\n.sentryclirc\n"; got != want {
		t.Errorf(".gitignore = %q, want %q", got, want)
	}

	changed, err = EnsureGitignoreEntry(dir, CLIRC_FILE_NAME)
	if err != nil || changed {
		t.Errorf("second EnsureGitignoreEntry() = %v, %v, want no change", changed, err)
	}
}

func TestEnsureGitignoreEntry_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := EnsureGitignoreEntry(dir, CLIRC_FILE_NAME); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, GITIGNORE_FILE_NAME)); got != ".sentryclirc\n" {
		t.Errorf(".gitignore = %q", got)
	}
}

func TestWriteCLIRC_New(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCLIRC(dir, "sntrys_abc", "https://sentry.example.com/")
	if err != nil {
		t.Fatal(err)
	}
	want := "[auth]\ntoken=sntrys_abc\n\n[defaults]\nurl=https://sentry.example.com/\n"
	if got := readFile(t, path); got != want {
		t.Errorf(".sentryclirc = %q, want %q", got, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteCLIRC_ReplacesToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, CLIRC_FILE_NAME)
	existing := "[defaults]\norg=acme\n\n[auth]\ntoken=old\n"
	if err := os.WriteFile(path, []byte(existing), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteCLIRC(dir, "new", ""); err != nil {
		t.Fatal(err)
	}
	if got, want := readFile(t, path), "[defaults]\norg=acme\n\n[auth]\ntoken=new\n"; got != want {
		t.Errorf(".sentryclirc = %q, want %q", got, want)
	}
}

func TestWriteCLIRC_AddsKeyToExistingSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, CLIRC_FILE_NAME)
	if err := os.WriteFile(path, []byte("[auth]\n\n[defaults]\norg=acme\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteCLIRC(dir, "tok", ""); err != nil {
		t.Fatal(err)
	}
	if got, want := readFile(t, path), "[auth]\ntoken=tok\n\n[defaults]\norg=acme\n"; got != want {
		t.Errorf(".sentryclirc = %q, want %q", got, want)
	}
}

func TestSetEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("# local\nexport SENTRY_DSN=old\nOTHER=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SetEnvVar(path, "SENTRY_DSN", "https://key@o1.ingest.sentry.io/2"); err != nil {
		t.Fatal(err)
	}
	if err := SetEnvVar(path, "SENTRY_ORG", "acme"); err != nil {
		t.Fatal(err)
	}
	want := "# local\nSENTRY_DSN=https://key@o1.ingest.sentry.io/2\nOTHER=1\nSENTRY_ORG=acme\n"
	if got := readFile(t, path); got != want {
		t.Errorf(".env = %q, want %q", got, want)
	}
}
