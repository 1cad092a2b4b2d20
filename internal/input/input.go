package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Input represents the current frame's input state.
type Input struct {
	// Activations counts discrete presses of the single game action
	// (space, enter, left click) since the previous frame.
	Activations int
	Quit        bool
	Pressed     []byte
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
	// lastCR is set when the previous drain ended on '\r', so a '\n'
	// arriving in the next drain completes that Enter.
	lastCR bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool { return s.closed }

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. A closed stream is reported as Quit.
func ReadInput(s *Stream) Input {
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var in Input
	in, s.lastCR = parse(buf, s.lastCR)
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse turns raw terminal bytes into an Input. SGR mouse reports
// (ESC [ < b ; x ; y M) count as an activation when they are a left press.
func Parse(buf []byte) Input {
	in, _ := parse(buf, false)
	return in
}

// parse is Parse with Enter state carried across reads. afterCR means the
// previous read ended on '\r'; the returned flag reports the same for buf.
func parse(buf []byte, afterCR bool) (Input, bool) {
	in := Input{Pressed: buf}
	if len(buf) == 0 {
		return in, afterCR
	}
	start := 0
	if afterCR && (buf[0] == '\n' || buf[0] == 0) {
		start = 1
	}
	for i := start; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == '<' {
				n, press, ok := parseMouse(buf[i+3:])
				if ok {
					if press {
						in.Activations++
					}
					i += 2 + n
					continue
				}
			}
			// Other CSI sequences (arrows, focus) are ignored.
			if j := csiEnd(buf[i+2:]); j >= 0 {
				i += 2 + j
				continue
			}
		}

		switch b {
		case '\r':
			in.Activations++
			// CRLF and CR NUL are a single Enter.
			if i+1 < len(buf) && (buf[i+1] == '\n' || buf[i+1] == 0) {
				i++
			}
		case ' ', '\n':
			in.Activations++
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}
	return in, buf[len(buf)-1] == '\r'
}

// parseMouse reads "b;x;yM" or "b;x;ym" and returns the bytes consumed and
// whether it was a left-button press.
func parseMouse(buf []byte) (n int, press bool, ok bool) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		return 0, false, false
	}
	fields := bytes.Split(buf[:end], []byte{';'})
	if len(fields) != 3 {
		return 0, false, false
	}
	btn, err := strconv.Atoi(string(fields[0]))
	if err != nil {
		return 0, false, false
	}
	// Low two bits select the button; bit 5 marks motion.
	left := btn&3 == 0 && btn&32 == 0 && btn < 64
	return end + 1, left && buf[end] == 'M', true
}

// csiEnd returns the index of the final byte of a CSI sequence, or -1.
func csiEnd(buf []byte) int {
	for i, b := range buf {
		if b >= 0x40 && b <= 0x7e {
			return i
		}
	}
	return -1
}
