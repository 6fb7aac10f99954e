package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDocumentKey(t *testing.T) {
	key1 := DocumentKey("פרוטוקול מליאה מספר 12")
	key2 := DocumentKey("פרוטוקול מליאה מספר 12")
	key3 := DocumentKey("פרוטוקול מליאה מספר 13")

	if key1 != key2 {
		t.Error("same content should produce the same key")
	}
	if key1 == key3 {
		t.Error("different content should produce different keys")
	}
	if !strings.HasPrefix(key1, "protokol:v1:") {
		t.Errorf("key missing version prefix: %s", key1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache reported a hit")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("Get = %q, %v; want v, true", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCachePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	key := DocumentKey("ישיבת מועצה")

	first := NewDiskCache(dir, time.Hour)
	if err := first.Set(key, []byte(`{"quality":80}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second := NewDiskCache(dir, time.Hour)
	val, found := second.Get(key)
	if !found {
		t.Fatal("entry not found by a fresh instance")
	}
	if string(val) != `{"quality":80}` {
		t.Errorf("Get = %s", val)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry reported as hit")
	}
	// Lazy removal: the stale file should be gone after the miss
	if _, found := c.Get("k"); found {
		t.Error("expired entry survived lazy removal")
	}
}

func TestDiskCacheClear(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("entry survived Clear")
	}
}

func TestLayeredCachePromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only, then read through a layered cache
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := layered.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Get = %q, %v; want v, true", val, found)
	}

	// The miss path promoted the entry to memory
	if _, found := layered.memory.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestLayeredCacheSetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := layered.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := layered.disk.Get("k"); !found {
		t.Error("Set did not reach the disk layer")
	}
	if err := layered.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("deleted key still present")
	}
}
