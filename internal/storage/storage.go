// Package storage keeps uploaded objects (task photos, avatars) on local disk
// and hands out the public URLs they are served under.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the object storage contract used by the upload handlers
type Storage interface {
	// Upload stores the object under name and returns its public URL
	Upload(name string, r io.Reader) (string, error)
	// Delete removes a previously uploaded object by its public URL.
	// Used as the compensating action when a record write fails after upload.
	Delete(url string) error
	// PublicURL returns the URL an object name is served under
	PublicURL(name string) string
}

// Disk stores objects under a root directory served as static files
type Disk struct {
	root    string // Filesystem root for stored objects
	baseURL string // URL prefix the root is mounted at
}

// NewDisk creates the root directory if needed and returns a disk store
func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Disk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the object to disk and returns its public URL
func (d *Disk) Upload(name string, r io.Reader) (string, error) {
	name = cleanName(name)
	path := filepath.Join(d.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path) // Do not leave partial objects behind
		return "", err
	}
	return d.PublicURL(name), nil
}

// Delete removes the object a public URL points at
func (d *Disk) Delete(url string) error {
	name := strings.TrimPrefix(url, d.baseURL+"/")
	if name == url {
		return fmt.Errorf("url %q is not under %q", url, d.baseURL)
	}
	return os.Remove(filepath.Join(d.root, filepath.FromSlash(cleanName(name))))
}

// PublicURL maps an object name to the URL it is served under
func (d *Disk) PublicURL(name string) string {
	return d.baseURL + "/" + cleanName(name)
}

// cleanName normalizes the object name and strips any path escape attempts
func cleanName(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+name)), "/")
}
