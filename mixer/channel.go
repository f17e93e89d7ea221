// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/sndcore/sound"

// UnityVolume is full channel volume.
const UnityVolume = 256

// Channel is one playing instance of a sound.
type Channel struct {
	Handle sound.Handle

	// LeftVol and RightVol are 0..UnityVolume.
	LeftVol, RightVol int

	// Doppler enables resampled playback at DopplerScale. OldDopplerScale is the
	// scale the sound has been playing at, used to map elapsed time to a
	// source position.
	Doppler         bool
	DopplerScale    float32
	OldDopplerScale float32

	// StartSample is the paint time of the first frame. A negative value
	// starts the sound at the current painted time.
	StartSample int64

	// smoothing filter state, kept across slices
	prevL, prevR int32

	active bool
}

// Active reports whether the slot holds a playing sound.
func (c *Channel) Active() bool { return c.active }

func (c *Channel) silent() bool {
	return c.LeftVol == 0 && c.RightVol == 0
}

func (c *Channel) normalize() {
	c.LeftVol = clampVolume(c.LeftVol)
	c.RightVol = clampVolume(c.RightVol)
	if c.DopplerScale <= 0 {
		c.DopplerScale = 1
	}
	if c.OldDopplerScale <= 0 {
		c.OldDopplerScale = 1
	}
	c.prevL, c.prevR = 0, 0
}

func (c *Channel) shifted() bool {
	return c.Doppler && c.DopplerScale != 1
}

func clampVolume(v int) int {
	return max(0, min(v, UnityVolume))
}
