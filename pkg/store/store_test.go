package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return s
}

func TestGetPutDelete(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Put("k", "v1"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put("k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, ok, err := s.Get("k")
	if err != nil || !ok || value != "v2" {
		t.Errorf("get after overwrite: value=%q ok=%v err=%v", value, ok, err)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key should be gone after delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	settings, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("fresh store should yield defaults, got %+v", settings)
	}

	settings.SaveHistory = false
	settings.ResultsPerPage = 25
	settings.SafeSearch = SafeSearchStrict
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded != settings {
		t.Errorf("loaded = %+v, want %+v", loaded, settings)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("fresh store should yield an empty list, got %v", entries)
	}

	want := []string{"rust", "golang", "react"}
	if err := s.SaveHistory(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTheme(t *testing.T) {
	s := openTestStore(t)

	theme, err := s.Theme()
	if err != nil || theme != ThemeLight {
		t.Errorf("default theme = %q err=%v, want light", theme, err)
	}

	if err := s.SetTheme(ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	theme, err = s.Theme()
	if err != nil || theme != ThemeDark {
		t.Errorf("theme = %q err=%v, want dark", theme, err)
	}

	if err := s.SetTheme("solarized"); err == nil {
		t.Error("unknown theme should be rejected")
	}
}
