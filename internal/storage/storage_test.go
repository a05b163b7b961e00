package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskUploadDeleteRoundTrip(t *testing.T) {
	root := t.TempDir()
	d, err := NewDisk(root, "/uploads/")
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}

	url, err := d.Upload("tasks/photo.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "/uploads/tasks/photo.jpg" {
		t.Errorf("Upload() url = %q, want /uploads/tasks/photo.jpg", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "tasks", "photo.jpg"))
	if err != nil {
		t.Fatalf("reading stored object: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q, want image-bytes", data)
	}

	if err := d.Delete(url); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "tasks", "photo.jpg")); !os.IsNotExist(err) {
		t.Error("object still on disk after Delete()")
	}
}

func TestDiskDeleteRejectsForeignURL(t *testing.T) {
	d, err := NewDisk(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}
	if err := d.Delete("https://elsewhere.example/x.jpg"); err == nil {
		t.Error("Delete() of a foreign URL: want error, got nil")
	}
}

func TestCleanNameStripsEscapes(t *testing.T) {
	d, err := NewDisk(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}
	if got := d.PublicURL("../../etc/passwd"); got != "/uploads/etc/passwd" {
		t.Errorf("PublicURL(../../etc/passwd) = %q, escape not stripped", got)
	}
}
