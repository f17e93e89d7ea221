// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/ik5/sndcore/audio"
)

// MapLoader is an audio.Loader backed by a map, with failure injection.
type MapLoader struct {
	mtx    sync.Mutex
	sounds map[string]*audio.PCM
	fail   map[string]error
	calls  map[string]int
}

func NewMapLoader() *MapLoader {
	return &MapLoader{
		sounds: make(map[string]*audio.PCM),
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (l *MapLoader) Add(name string, p *audio.PCM) *MapLoader {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.sounds[audio.NormalizeName(name)] = p
	return l
}

// Fail makes every load of name return err.
func (l *MapLoader) Fail(name string, err error) *MapLoader {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.fail[audio.NormalizeName(name)] = err
	return l
}

func (l *MapLoader) Load(name string) (*audio.PCM, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	key := audio.NormalizeName(name)
	l.calls[key]++

	if err, ok := l.fail[key]; ok {
		return nil, err
	}

	p, ok := l.sounds[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}

	// callers may keep the result; hand out a copy of the bytes
	cp := *p
	cp.Data = append([]byte(nil), p.Data...)
	return &cp, nil
}

// Calls reports how many times name was requested.
func (l *MapLoader) Calls(name string) int {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.calls[audio.NormalizeName(name)]
}
