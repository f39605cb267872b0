// Package util is a grab bag for stuff that needs to go elsewhere.
package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadConfig decodes yaml, or toml when path ends in .toml.
func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	if isToml(path) {
		err = toml.Unmarshal(data, cfg)
		err = errors.Wrapf(err, "failed to unmarshal toml")
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal")
	return
}

// WriteConfig encodes cfg in the format path's extension calls for.
func WriteConfig(cfg any, path string, mode os.FileMode) (err error) {

	var data []byte
	if isToml(path) {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// SampleConfig writes data to path unless something is already there.
func SampleConfig(data []byte, path string, mode os.FileMode) (err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// NewID returns a fresh, time ordered id.
func NewID() string {
	return strings.ToLower(ulid.Make().String())
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
