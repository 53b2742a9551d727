package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCompressDecompressFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "sample.txt")
	content := []byte("the engine reads a file, compresses it and writes it back\n")
	if err := os.WriteFile(original, content, 0644); err != nil {
		t.Fatalf("writing sample file failed: %v", err)
	}

	CompressFiles([]string{"huffman"}, []string{original}, "hpr")
	compressed := original + ".hpr"
	if _, err := os.Stat(compressed); err != nil {
		t.Fatalf("compressed file missing: %v", err)
	}

	if err := os.Remove(original); err != nil {
		t.Fatalf("removing original failed: %v", err)
	}
	DecompressFiles([]string{"huffman"}, []string{compressed}, "hpr")

	restored, err := os.ReadFile(original)
	if err != nil {
		t.Fatalf("restored file missing: %v", err)
	}
	if !bytes.Equal(restored, content) {
		t.Errorf("round trip mismatch:\n\texpect: %q\n\tactual: %q", content, restored)
	}
}

func TestDecompressUnknownExtensionFallsBackToOut(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "sample.txt")
	content := []byte("short sample")
	if err := os.WriteFile(original, content, 0644); err != nil {
		t.Fatalf("writing sample file failed: %v", err)
	}

	CompressFiles([]string{"huffman"}, []string{original}, "hpr")
	DecompressFiles([]string{"huffman"}, []string{original + ".hpr"}, "zzz")

	restored, err := os.ReadFile(original + ".hpr.out")
	if err != nil {
		t.Fatalf("restored file missing: %v", err)
	}
	if !bytes.Equal(restored, content) {
		t.Errorf("round trip mismatch:\n\texpect: %q\n\tactual: %q", content, restored)
	}
}
