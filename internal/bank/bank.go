// Package bank loads patch definitions from YAML files and applies
// them to an engine through its parameter surface, so every derived
// cache refreshes exactly as it would from live edits.
package bank

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	snth "github.com/soniclab/snth-go"
)

// File is the top-level bank document.
type File struct {
	Patches []Patch `yaml:"patches"`
}

// Patch describes one patch slot. Omitted tones and fields keep their
// defaults.
type Patch struct {
	Slot  uint8  `yaml:"slot"`
	Name  string `yaml:"name"`
	Tones []Tone `yaml:"tones"`
}

type Tone struct {
	Wave  string `yaml:"wave"`
	Mode  string `yaml:"mode"`
	Level *uint8 `yaml:"level"`
	Pan   *uint8 `yaml:"pan"`
	Delay *uint8 `yaml:"delay"`

	Pitch  *Pitch     `yaml:"pitch"`
	Filter *Filter    `yaml:"filter"`
	Env    []Envelope `yaml:"env"`
	LFO    []LFO      `yaml:"lfo"`
}

type Pitch struct {
	Coarse *uint8 `yaml:"coarse"`
	Fine   *uint8 `yaml:"fine"`
	Env    *uint8 `yaml:"env"`
}

type Filter struct {
	Mode *string `yaml:"mode"`
	Cut  *uint8  `yaml:"cut"`
	Res  *uint8  `yaml:"res"`
	Env  *uint8  `yaml:"env"`
	Key  *uint8  `yaml:"key"`
}

type Envelope struct {
	A *uint8 `yaml:"a"`
	D *uint8 `yaml:"d"`
	S *uint8 `yaml:"s"`
	R *uint8 `yaml:"r"`
}

type LFO struct {
	Wave   string `yaml:"wave"`
	Sync   *bool  `yaml:"sync"`
	Rate   *uint8 `yaml:"rate"`
	Delay  *uint8 `yaml:"delay"`
	Level  *uint8 `yaml:"level"`
	Pan    *uint8 `yaml:"pan"`
	Pitch  *uint8 `yaml:"pitch"`
	Phase  *uint8 `yaml:"phase"`
	Filter *uint8 `yaml:"filter"`
}

// Load reads a bank document.
func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}
	return &f, nil
}

// LoadFile reads a bank document from disk.
func LoadFile(path string) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Load(fp)
}

// Apply writes the bank's patches into the engine. The engine's
// current channel is used to address each slot and restored afterward
// only in the sense that the last slot applied stays selected, as a
// front panel would behave.
func (f *File) Apply(e *snth.Engine) error {
	for pi := range f.Patches {
		p := &f.Patches[pi]
		if p.Slot >= snth.MaxPatch {
			return fmt.Errorf("bank: patch slot %d out of range", p.Slot)
		}
		if len(p.Tones) > snth.MaxTone {
			return fmt.Errorf("bank: patch %d has %d tones", p.Slot, len(p.Tones))
		}

		e.SetPatch(p.Slot)
		if p.Name != "" {
			e.SetPatchName(p.Name)
		}

		for ti := range p.Tones {
			if err := applyTone(e, uint8(ti), &p.Tones[ti]); err != nil {
				return fmt.Errorf("bank: patch %d tone %d: %w", p.Slot, ti, err)
			}
		}
	}
	return nil
}

func applyTone(e *snth.Engine, ti uint8, t *Tone) error {
	if t.Wave != "" {
		w, err := parseWave(t.Wave)
		if err != nil {
			return err
		}
		e.SetToneWave(ti, w)
	}
	if t.Mode != "" {
		m, err := parseMode(t.Mode)
		if err != nil {
			return err
		}
		e.SetToneMode(ti, m)
	}
	if t.Level != nil {
		e.SetToneLevel(ti, *t.Level)
	}
	if t.Pan != nil {
		e.SetTonePan(ti, *t.Pan)
	}
	if t.Delay != nil {
		e.SetToneDelay(ti, *t.Delay)
	}

	if t.Pitch != nil {
		if t.Pitch.Coarse != nil {
			e.SetTonePitchCoarse(ti, *t.Pitch.Coarse)
		}
		if t.Pitch.Fine != nil {
			e.SetTonePitchFine(ti, *t.Pitch.Fine)
		}
		if t.Pitch.Env != nil {
			e.SetTonePitchEnv(ti, *t.Pitch.Env)
		}
	}

	if t.Filter != nil {
		if t.Filter.Mode != nil {
			m, err := parseFilterMode(*t.Filter.Mode)
			if err != nil {
				return err
			}
			e.SetToneFilterMode(ti, m)
		}
		if t.Filter.Cut != nil {
			e.SetToneFilterCut(ti, *t.Filter.Cut)
		}
		if t.Filter.Res != nil {
			e.SetToneFilterRes(ti, *t.Filter.Res)
		}
		if t.Filter.Env != nil {
			e.SetToneFilterEnv(ti, *t.Filter.Env)
		}
		if t.Filter.Key != nil {
			e.SetToneFilterKey(ti, *t.Filter.Key)
		}
	}

	if len(t.Env) > snth.MaxEnv {
		return fmt.Errorf("%d envelopes", len(t.Env))
	}
	for ei := range t.Env {
		en := &t.Env[ei]
		if en.A != nil {
			e.SetToneEnvA(ti, uint8(ei), *en.A)
		}
		if en.D != nil {
			e.SetToneEnvD(ti, uint8(ei), *en.D)
		}
		if en.S != nil {
			e.SetToneEnvS(ti, uint8(ei), *en.S)
		}
		if en.R != nil {
			e.SetToneEnvR(ti, uint8(ei), *en.R)
		}
	}

	if len(t.LFO) > snth.MaxLFO {
		return fmt.Errorf("%d LFOs", len(t.LFO))
	}
	for li := range t.LFO {
		l := &t.LFO[li]
		if l.Wave != "" {
			w, err := parseWave(l.Wave)
			if err != nil {
				return err
			}
			e.SetToneLFOWave(ti, uint8(li), w)
		}
		if l.Sync != nil {
			e.SetToneLFOSync(ti, uint8(li), *l.Sync)
		}
		if l.Rate != nil {
			e.SetToneLFORate(ti, uint8(li), *l.Rate)
		}
		if l.Delay != nil {
			e.SetToneLFODelay(ti, uint8(li), *l.Delay)
		}
		if l.Level != nil {
			e.SetToneLFOLevel(ti, uint8(li), *l.Level)
		}
		if l.Pan != nil {
			e.SetToneLFOPan(ti, uint8(li), *l.Pan)
		}
		if l.Pitch != nil {
			e.SetToneLFOPitch(ti, uint8(li), *l.Pitch)
		}
		if l.Phase != nil {
			e.SetToneLFOPhase(ti, uint8(li), *l.Phase)
		}
		if l.Filter != nil {
			e.SetToneLFOFilter(ti, uint8(li), *l.Filter)
		}
	}

	return nil
}

func parseWave(s string) (uint8, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "sin":
		return snth.WaveSine, nil
	case "square", "sqr":
		return snth.WaveSquare, nil
	case "triangle", "tri":
		return snth.WaveTriangle, nil
	case "saw":
		return snth.WaveSaw, nil
	case "noise":
		return snth.WaveNoise, nil
	}
	return 0, fmt.Errorf("unknown wave %q", s)
}

func parseMode(s string) (uint8, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return snth.ModeOff, nil
	case "mix":
		return snth.ModeMix, nil
	case "mod":
		return snth.ModeMod, nil
	case "ring", "rng":
		return snth.ModeRing, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func parseFilterMode(s string) (uint8, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lpf", "lowpass":
		return snth.FilterLPF, nil
	case "hpf", "highpass":
		return snth.FilterHPF, nil
	}
	return 0, fmt.Errorf("unknown filter mode %q", s)
}
