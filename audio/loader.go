// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// FileLoader loads sounds from a file system, picking the decoder by extension.
// When the named file is missing, the same base name is tried with every
// registered format in Fallback order (or sorted order when Fallback is empty).
type FileLoader struct {
	FS       fs.FS
	Registry *Registry
	Fallback []string
}

func NewFileLoader(fsys fs.FS, reg *Registry) *FileLoader {
	return &FileLoader{FS: fsys, Registry: reg}
}

func (l *FileLoader) Load(name string) (*PCM, error) {
	name = strings.TrimLeft(strings.ReplaceAll(name, "\\", "/"), "/")
	if name == "" {
		return nil, fs.ErrInvalid
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	base := strings.TrimSuffix(name, path.Ext(name))

	if ext != "" {
		pcm, err := l.loadAs(name, ext)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return pcm, err
		}
	}

	formats := l.Fallback
	if len(formats) == 0 {
		formats = l.Registry.Formats()
	}

	for _, f := range formats {
		if f == ext {
			continue
		}

		alt := base + "." + f
		pcm, err := l.loadAs(alt, f)
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"function": "FileLoader.Load",
				"name":     name,
				"resolved": alt,
			}).Debug("loaded alternate format")
			return pcm, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}

func (l *FileLoader) loadAs(name, format string) (*PCM, error) {
	dec, ok := l.Registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	pcm, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return pcm, nil
}
