// Package storage is the durable client-side state store: the Go stand-in
// for a browser's localStorage. Each key is one JSON document, written
// wholesale and removed independently.
package storage

import (
	"os"
	"path/filepath"
)

type Store interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Dir stores each key as a file under a directory, usually somewhere in
// the user config dir.
type Dir struct {
	path string
}

func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, key+".json")
}

func (d *Dir) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(d.file(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (d *Dir) Set(key string, value []byte) error {
	return os.WriteFile(d.file(key), value, 0o600)
}

func (d *Dir) Remove(key string) error {
	err := os.Remove(d.file(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
