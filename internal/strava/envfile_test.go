package strava

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRewriteTokensPreservesOtherLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	original := "# strava credentials\nSTRAVA_CLIENT_ID=12345\nSTRAVA_ACCESS_TOKEN=old_access\nSTRAVA_REFRESH_TOKEN=old_refresh\nPORT=8080\n"
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := RewriteTokensInEnvFile(path, "new_access", "new_refresh"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# strava credentials\nSTRAVA_CLIENT_ID=12345\nSTRAVA_ACCESS_TOKEN=new_access\nSTRAVA_REFRESH_TOKEN=new_refresh\nPORT=8080\n"
	if string(data) != want {
		t.Errorf("unexpected file content:\n%s", string(data))
	}
}

func TestRewriteTokensAppendsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := RewriteTokensInEnvFile(path, "acc", "ref"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	access, refresh, err := ReadTokensFromEnvFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if access != "acc" || refresh != "ref" {
		t.Errorf("expected appended tokens, got access=%q refresh=%q", access, refresh)
	}
}

func TestRewriteTokensCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if err := RewriteTokensInEnvFile(path, "acc", "ref"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	access, refresh, err := ReadTokensFromEnvFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if access != "acc" || refresh != "ref" {
		t.Errorf("expected tokens in new file, got access=%q refresh=%q", access, refresh)
	}
}

func TestReadTokensMissingFileIsNotAnError(t *testing.T) {
	access, refresh, err := ReadTokensFromEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if access != "" || refresh != "" {
		t.Errorf("expected empty tokens, got access=%q refresh=%q", access, refresh)
	}
}
