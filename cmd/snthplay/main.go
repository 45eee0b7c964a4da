// Command snthplay drives the synthesizer engine from the command
// line: it loads YAML patch banks and SysEx state files, plays a demo
// sequence live or renders it to a WAV file, and can save the engine
// state back out as SysEx.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	snth "github.com/soniclab/snth-go"
	"github.com/soniclab/snth-go/internal/audio"
	"github.com/soniclab/snth-go/internal/bank"
)

// stateDumpCap holds a worst-case state dump: 128 patches, every
// parameter and name non-default.
const stateDumpCap = snth.MaxPatch * 4096

func main() {
	var (
		rate     = pflag.Int("rate", 44100, "output sample rate")
		bankPath = pflag.String("bank", "", "YAML patch bank to load")
		loadPath = pflag.String("load", "", "SysEx state file to feed at startup")
		savePath = pflag.String("save", "", "write the engine state as SysEx and exit")
		wavPath  = pflag.String("wav", "", "render the demo to a WAV file instead of playing")
		seconds  = pflag.Float64("seconds", 4, "length of the WAV render")
		channel  = pflag.Uint8("channel", 0, "channel the demo plays on")
		verbose  = pflag.BoolP("verbose", "v", false, "debug logging")
	)
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	e := snth.New(*rate)
	logger.Info("engine ready", "rate", e.Rate())

	if *bankPath != "" {
		b, err := bank.LoadFile(*bankPath)
		if err != nil {
			logger.Fatal("loading bank", "path", *bankPath, "err", err)
		}
		if err := b.Apply(e); err != nil {
			logger.Fatal("applying bank", "path", *bankPath, "err", err)
		}
		logger.Info("bank applied", "path", *bankPath, "patches", len(b.Patches))
	}

	if *loadPath != "" {
		data, err := os.ReadFile(*loadPath)
		if err != nil {
			logger.Fatal("reading state", "path", *loadPath, "err", err)
		}
		e.Feed(data)
		logger.Info("state loaded", "path", *loadPath, "bytes", len(data))
	}

	if *savePath != "" {
		buf := make([]byte, stateDumpCap)
		n := e.DumpState(buf)
		if err := os.WriteFile(*savePath, buf[:n], 0o644); err != nil {
			logger.Fatal("writing state", "path", *savePath, "err", err)
		}
		logger.Info("state saved", "path", *savePath, "bytes", n)
		return
	}

	if *wavPath != "" {
		renderWAV(e, logger, *wavPath, *seconds, *channel)
		return
	}

	playLive(e, logger, *rate, *channel)
}

// demoNotes is a short arpeggiated figure exercising polyphony and
// release tails.
var demoNotes = []struct {
	pitch uint8
	on    time.Duration
	off   time.Duration
}{
	{57, 0, 900 * time.Millisecond},
	{60, 250 * time.Millisecond, 1200 * time.Millisecond},
	{64, 500 * time.Millisecond, 1500 * time.Millisecond},
	{69, 750 * time.Millisecond, 1800 * time.Millisecond},
}

func playLive(e *snth.Engine, logger *log.Logger, rate int, channel uint8) {
	pl, err := audio.NewPlayer(rate, e)
	if err != nil {
		logger.Fatal("opening audio", "err", err)
	}
	defer pl.Stop()
	pl.Play()

	logger.Info("playing demo", "channel", channel, "patch", e.PatchName())

	start := time.Now()
	for _, n := range demoNotes {
		time.Sleep(time.Until(start.Add(n.on)))
		logger.Debug("note on", "pitch", n.pitch)
		e.NoteOn(channel, n.pitch, 112)
	}
	for _, n := range demoNotes {
		time.Sleep(time.Until(start.Add(n.off)))
		logger.Debug("note off", "pitch", n.pitch)
		e.NoteOff(channel, n.pitch, 0)
	}

	// Let release tails ring out.
	time.Sleep(2 * time.Second)
	logger.Info("done")
}

func renderWAV(e *snth.Engine, logger *log.Logger, path string, seconds float64, channel uint8) {
	// Schedule the demo against the sample clock: render up to each
	// event, fire it, then render the remainder.
	type event struct {
		at    time.Duration
		pitch uint8
		on    bool
	}
	var events []event
	for _, n := range demoNotes {
		events = append(events, event{n.on, n.pitch, true})
		events = append(events, event{n.off, n.pitch, false})
	}
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].at < events[j-1].at; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}

	rate := e.Rate()
	total := int(float64(rate) * seconds)
	var samples []int16
	rendered := 0
	for _, ev := range events {
		upto := int(ev.at.Seconds() * float64(rate))
		if upto > total {
			upto = total
		}
		if upto > rendered {
			samples = append(samples, snth.RenderFrames(e, upto-rendered)...)
			rendered = upto
		}
		if ev.on {
			e.NoteOn(channel, ev.pitch, 112)
		} else {
			e.NoteOff(channel, ev.pitch, 0)
		}
	}
	if total > rendered {
		samples = append(samples, snth.RenderFrames(e, total-rendered)...)
	}

	if err := os.WriteFile(path, snth.EncodeWAV(samples, rate, 2), 0o644); err != nil {
		logger.Fatal("writing wav", "path", path, "err", err)
	}
	logger.Info("rendered", "path", path, "seconds", seconds, "frames", len(samples)/2)
}
