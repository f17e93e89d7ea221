// SPDX-License-Identifier: EPL-2.0

// Package sndcore is the sample memory and mixing core of a game sound system.
//
// A System ties together:
//   - sound.Manager: the fixed chunk arena, the asset table, the name cache
//     and the rate-limited load queue
//   - mixer.Mixer: per-channel painting (PCM16, ADPCM, mu-law, wavelet,
//     doppler), the raw stream and the device transfer
//
// Sounds are registered by name, decoded through an audio.Loader (see
// DefaultRegistry for the bundled WAV, MP3, Ogg Vorbis and AIFF decoders),
// resampled to the native rate and stored in chunks. Playing channels hold a
// reference on their sound, so an in-use sound is never evicted.
//
// # Quick Start
//
//	cfg := config.Default()
//	loader := audio.NewFileLoader(os.DirFS("baseq3"), sndcore.DefaultRegistry())
//
//	sys, err := sndcore.New(cfg, loader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Shutdown()
//
//	h, _ := sys.Register("sound/weapons/machinegun/machgf1b.wav", true)
//	sys.StartSound(mixer.Channel{Handle: h, LeftVol: 256, RightVol: 256, StartSample: -1})
//
//	dev, _ := mixer.NewDevice(mixer.Format{SampleBits: 16, Channels: 2, Samples: 16384})
//	sys.Update(sys.PaintedTime()+1024, dev)
//
// Every System method takes the same lock, so a device callback and the game
// loop may call in from different goroutines.
package sndcore
