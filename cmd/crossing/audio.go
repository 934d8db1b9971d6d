package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/crossing/game"
)

const sampleRate = 44100

type tone struct {
	freq     float64
	seconds  float64
	volume   float64
	sweep    float64
	loopable bool
}

var tones = map[game.Sound]tone{
	game.SoundCollision:      {freq: 180, seconds: 0.35, volume: 0.5, sweep: -120},
	game.SoundPowerUp:        {freq: 660, seconds: 0.15, volume: 0.4, sweep: 440},
	game.SoundBackgroundLoop: {freq: 110, seconds: 2, volume: 0.08, loopable: true},
}

// pcm renders t as 16-bit little-endian stereo samples, the format
// audio.Context expects.
func pcm(t tone) []byte {
	n := int(t.seconds * sampleRate)
	buf := make([]byte, n*4)
	phase := 0.0
	for i := range n {
		progress := float64(i) / float64(n)
		freq := t.freq + t.sweep*progress
		phase += 2 * math.Pi * freq / sampleRate

		env := 1.0
		if !t.loopable {
			env = 1 - progress
		}
		v := int16(math.Sin(phase) * env * t.volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// beeper plays generated tones through an ebiten audio context.
type beeper struct {
	log     *slog.Logger
	players map[game.Sound]*audio.Player
}

func newBeeper(log *slog.Logger) (*beeper, error) {
	ctx := audio.NewContext(sampleRate)
	b := &beeper{log: log, players: make(map[game.Sound]*audio.Player)}
	for s, t := range tones {
		data := pcm(t)
		if !t.loopable {
			b.players[s] = ctx.NewPlayerFromBytes(data)
			continue
		}
		p, err := ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data))))
		if err != nil {
			return nil, fmt.Errorf("create %s player: %w", s, err)
		}
		b.players[s] = p
	}
	return b, nil
}

func (b *beeper) PlaySound(s game.Sound) {
	p, ok := b.players[s]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		b.log.Warn("rewind sound", slog.String("sound", s.String()), slog.Any("error", err))
		return
	}
	p.Play()
}

// resume continues s from where stop left it.
func (b *beeper) resume(s game.Sound) {
	if p, ok := b.players[s]; ok {
		p.Play()
	}
}

func (b *beeper) stop(s game.Sound) {
	if p, ok := b.players[s]; ok {
		p.Pause()
	}
}
