package snth

// Feed interprets data as a MIDI-like byte stream and applies it to
// the engine. Only three events are recognized: note-on (0x90|ch,
// pitch, velocity), note-off (0x80|ch, pitch, velocity), and SysEx
// frames (0xF0 .. 0xF7). Anything else is skipped a byte at a time.
//
// Feeding back the output of DumpPatch or DumpState restores the
// encoded parameters; a malformed stream applies whatever well-formed
// prefix of tags it carries and discards the rest.
func (e *Engine) Feed(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := 0
	for i < len(data) {
		switch {
		case data[i] == 0xF0:
			i = e.sysex(data, i)
		case data[i]&0xF0 == 0x80:
			i = e.midiNoteOff(data, i)
		case data[i]&0xF0 == 0x90:
			i = e.midiNoteOn(data, i)
		default:
			i++
		}
	}
}

func (e *Engine) midiNoteOn(p []byte, i int) int {
	if i+2 >= len(p) {
		return len(p)
	}
	e.noteOn(p[i]&0x0F, p[i+1], p[i+2])
	return i + 3
}

func (e *Engine) midiNoteOff(p []byte, i int) int {
	if i+2 >= len(p) {
		return len(p)
	}
	e.noteOff(p[i]&0x0F, p[i+1], p[i+2])
	return i + 3
}
