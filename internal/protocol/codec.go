package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
)

// Terminator - the sentinel byte closing every frame. No valid payload byte
// equals it, so a reader consumes bytes up to and including the sentinel as
// one frame, without length prefixes.
const Terminator byte = 0xFF

// Codec - frames packet payloads over a byte stream. It buffers both halves
// and flushes after every write so the peer observes each packet promptly.
// One goroutine drives a session; the codec is not safe for concurrent use.
type Codec struct {
	reader *bufio.Reader
	writer *bufio.Writer
}

func NewCodec(conn io.ReadWriter) *Codec {
	return &Codec{
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

// WriteFrame - writes one payload followed by the terminator and flushes.
func (that *Codec) WriteFrame(payload []byte) error {
	if _, err := that.writer.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := that.writer.WriteByte(Terminator); err != nil {
		return fmt.Errorf("failed to write terminator: %w", err)
	}

	if err := that.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}

	return nil
}

// ReadFrame - blocks until a full frame arrives and returns its payload with
// the terminator stripped. A stream that ends before the terminator surfaces
// apperror.ErrConnectionClosed.
func (that *Codec) ReadFrame() ([]byte, error) {
	frame, err := that.reader.ReadBytes(Terminator)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, apperror.ErrConnectionClosed
		}

		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	return frame[:len(frame)-1], nil
}
