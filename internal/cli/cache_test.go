package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheUsage(t *testing.T) {
	dir := t.TempDir()

	count, size := cacheUsage(dir)
	if count != 0 || size != 0 {
		t.Errorf("empty dir usage = %d/%d, want 0/0", count, size)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.cache"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.cache"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	count, size = cacheUsage(dir)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size != 150 {
		t.Errorf("size = %d, want 150", size)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
