package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writePackFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packs.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pack file: %v", err)
	}
	return path
}

func TestLoadPacksRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "nope"},
		{name: "empty index", content: "[]"},
		{name: "nameless pack", content: `[{"white": ["a"], "black": []}]`},
		{name: "pack with no cards", content: `[{"name": "Empty"}]`},
		{name: "zero pick", content: `[{"name": "P", "white": ["a"], "black": [{"text": "b", "pick": 0}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePackFile(t, tt.content)
			if err := loadPacks(path); err == nil {
				t.Fatalf("loadPacks accepted %s", tt.name)
			}
		})
	}
}

func TestLoadPacksMissingFile(t *testing.T) {
	if err := loadPacks(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("loadPacks accepted a missing file")
	}
}

func TestLoadAndListPacks(t *testing.T) {
	path := writePackFile(t, `[
		{"name": "Base", "official": true, "description": "starter",
		 "white": ["w1", "w2"], "black": [{"text": "b1", "pick": 1}]},
		{"name": "Extra", "white": ["w3"], "black": [{"text": "b2", "pick": 2}]}
	]`)
	if err := loadPacks(path); err != nil {
		t.Fatalf("loadPacks: %v", err)
	}

	infos := ListPacks()
	if len(infos) != 2 {
		t.Fatalf("ListPacks() = %d packs, want 2", len(infos))
	}
	if infos[0].Name != "Base" || !infos[0].Official || infos[0].WhiteCount != 2 || infos[0].BlackCount != 1 {
		t.Fatalf("pack summary unexpected: %+v", infos[0])
	}
	if infos[1].ID != 1 {
		t.Fatalf("pack id = %d, want 1", infos[1].ID)
	}
}

func TestGetPacks(t *testing.T) {
	seedTestPacks()

	t.Run("empty indexes means all packs", func(t *testing.T) {
		whites, blacks, err := GetPacks(nil)
		if err != nil {
			t.Fatalf("GetPacks(nil): %v", err)
		}
		if len(whites) == 0 || len(blacks) == 0 {
			t.Fatalf("GetPacks(nil) = %d white, %d black", len(whites), len(blacks))
		}
	})

	t.Run("unknown index is an error", func(t *testing.T) {
		if _, _, err := GetPacks([]int{99}); err == nil {
			t.Fatal("GetPacks accepted an out-of-range pack id")
		}
	})

	t.Run("card ids are unique per call", func(t *testing.T) {
		whites, blacks, err := GetPacks(nil)
		if err != nil {
			t.Fatalf("GetPacks(nil): %v", err)
		}
		seen := make(map[string]bool)
		for _, c := range whites {
			if seen[c.ID] {
				t.Fatalf("duplicate white card id %s", c.ID)
			}
			seen[c.ID] = true
		}
		for _, c := range blacks {
			if seen[c.ID] {
				t.Fatalf("duplicate black card id %s", c.ID)
			}
			seen[c.ID] = true
		}
	})
}
