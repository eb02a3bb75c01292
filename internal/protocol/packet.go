package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// Packet payloads are fixed-size byte sequences, magics in big-endian order.
// Every payload goes on the wire followed by the Terminator sentinel, which
// never occurs inside a valid payload.
const (
	helloMagic uint32 = 0xFD360084
	endMagic   uint32 = 0x5CD90094

	// ServerHello repurposes the two low bits of the hello magic, which are
	// zero in the magic itself, to assign the connector its seat.
	clientFirstBit uint32 = 0x02
	clientMarkBit  uint32 = 0x01
	seatBits              = clientFirstBit | clientMarkBit

	magicSize = 4

	// MoveSize - a move travels as a single payload byte.
	MoveSize = 1

	moveRowShift   = 4
	moveNibbleMask = 0x0F
)

// ServerHello - the host's handshake reply assigning the connector its seat:
// whether it moves first and which mark it plays.
type ServerHello struct {
	ClientFirst bool
	ClientMark  entity.Mark
}

// EncodeClientHello - the session-opening payload sent by the connecting peer.
func EncodeClientHello() []byte {
	payload := make([]byte, magicSize)
	binary.BigEndian.PutUint32(payload, helloMagic)

	return payload
}

// DecodeClientHello - validates a client hello payload.
func DecodeClientHello(payload []byte) error {
	if len(payload) != magicSize {
		return fmt.Errorf("%w: client hello is %d bytes", apperror.ErrInvalidSize, len(payload))
	}

	if binary.BigEndian.Uint32(payload) != helloMagic {
		return fmt.Errorf("%w: not a client hello", apperror.ErrInvalidMagic)
	}

	return nil
}

// EncodeServerHello - packs the seat assignment into the hello magic's low
// bits: bit 1 carries "client plays first", bit 0 carries the client's mark,
// X as 1 and O as 0.
func EncodeServerHello(hello ServerHello) []byte {
	value := helloMagic
	if hello.ClientFirst {
		value |= clientFirstBit
	}
	if hello.ClientMark == entity.PlayerX {
		value |= clientMarkBit
	}

	payload := make([]byte, magicSize)
	binary.BigEndian.PutUint32(payload, value)

	return payload
}

// DecodeServerHello - validates a server hello payload and unpacks the seat
// assignment. The seat bits are masked off before the magic comparison.
func DecodeServerHello(payload []byte) (ServerHello, error) {
	if len(payload) != magicSize {
		return ServerHello{}, fmt.Errorf("%w: server hello is %d bytes", apperror.ErrInvalidSize, len(payload))
	}

	value := binary.BigEndian.Uint32(payload)
	if value&^seatBits != helloMagic {
		return ServerHello{}, fmt.Errorf("%w: not a server hello", apperror.ErrInvalidMagic)
	}

	hello := ServerHello{
		ClientFirst: value&clientFirstBit != 0,
		ClientMark:  entity.PlayerO,
	}
	if value&clientMarkBit != 0 {
		hello.ClientMark = entity.PlayerX
	}

	return hello, nil
}

// EncodeMove - packs a move into one byte, row in the high nibble and column
// in the low nibble.
func EncodeMove(move entity.Move) []byte {
	return []byte{byte(move.Row&moveNibbleMask)<<moveRowShift | byte(move.Col&moveNibbleMask)}
}

// DecodeMove - unpacks a move byte. Decoding is total over the byte: nibble
// values outside the board come back as-is and are rejected by the session
// before placement.
func DecodeMove(payload []byte) (entity.Move, error) {
	if len(payload) != MoveSize {
		return entity.Move{}, fmt.Errorf("%w: move is %d bytes", apperror.ErrInvalidSize, len(payload))
	}

	return entity.Move{
		Row: int(payload[0] >> moveRowShift),
		Col: int(payload[0] & moveNibbleMask),
	}, nil
}

// EncodeEndOfGame - the explicit termination payload for an unfinished session.
func EncodeEndOfGame() []byte {
	payload := make([]byte, magicSize)
	binary.BigEndian.PutUint32(payload, endMagic)

	return payload
}

// DecodeEndOfGame - validates an end-of-game payload.
func DecodeEndOfGame(payload []byte) error {
	if len(payload) != magicSize {
		return fmt.Errorf("%w: end of game is %d bytes", apperror.ErrInvalidSize, len(payload))
	}

	if binary.BigEndian.Uint32(payload) != endMagic {
		return fmt.Errorf("%w: not an end of game", apperror.ErrInvalidMagic)
	}

	return nil
}

// IsEndOfGame - reports whether a payload is the end-of-game signal. The
// session's move-read path uses it to tell an abandoned game apart from a
// malformed frame.
func IsEndOfGame(payload []byte) bool {
	return DecodeEndOfGame(payload) == nil
}
