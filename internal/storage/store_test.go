package storage

// Notes:
// - Every driver runs the same contract table; files live in t.TempDir().

import (
	"errors"
	"path/filepath"
	"testing"
)

func openDrivers(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()
	bolt, err := OpenBolt(filepath.Join(dir, "kv.db"))
	if err != nil {
		t.Fatalf("OpenBolt() unexpected error: %v", err)
	}
	sqlite, err := OpenSQLite(filepath.Join(dir, "kv.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite() unexpected error: %v", err)
	}
	sqliteMem, err := OpenSQLiteMemory()
	if err != nil {
		t.Fatalf("OpenSQLiteMemory() unexpected error: %v", err)
	}

	stores := map[string]Store{
		"bolt":          bolt,
		"sqlite":        sqlite,
		"sqlite memory": sqliteMem,
		"memory":        NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

// ---------------------------------------------------------------------------
// TestStoreContract - Shared behaviour of all drivers
// ---------------------------------------------------------------------------

func TestStoreContract(t *testing.T) {
	t.Parallel()

	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := s.Set("k", "1"); err != nil {
				t.Fatalf("Set() unexpected error: %v", err)
			}
			if err := s.Set("k", "2"); err != nil {
				t.Fatalf("Set() overwrite unexpected error: %v", err)
			}
			got, err := s.Get("k")
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if got != "2" {
				t.Errorf("Get() = %q, want %q", got, "2")
			}
		})
	}
}

func TestBoltStore_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "kv.db")
	s, err := Open(DriverBolt, path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if err := s.Set("mdark.pdfCount", "7"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(DriverBolt, path)
	if err != nil {
		t.Fatalf("reopen unexpected error: %v", err)
	}
	defer s.Close()

	got, err := s.Get("mdark.pdfCount")
	if err != nil || got != "7" {
		t.Errorf("Get() = %q, %v; want %q", got, err, "7")
	}
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kv.sqlite")
	s, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if err := s.Set("a", "b"); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("reopen unexpected error: %v", err)
	}
	defer s.Close()

	if got, _ := s.Get("a"); got != "b" {
		t.Errorf("Get() = %q, want %q", got, "b")
	}
}

// ---------------------------------------------------------------------------
// TestOpen - Driver selection
// ---------------------------------------------------------------------------

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		driver  string
		path    string
		wantErr error
	}{
		{name: "memory ignores path", driver: "memory"},
		{name: "driver is case insensitive", driver: " Memory "},
		{name: "unknown driver", driver: "redis", path: "x", wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Open(tt.driver, tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() unexpected error: %v", err)
			}
			_ = s.Close()
		})
	}
}

func TestOpen_BoltRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(DriverBolt, ""); err == nil {
		t.Error("Open(bolt, \"\") should fail")
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	_ = s.Close()
	if err := s.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Get("k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
}
