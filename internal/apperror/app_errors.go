package apperror

import "errors"

var (
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")

	ErrInvalidSize            = errors.New("invalid packet size")
	ErrInvalidMagic           = errors.New("invalid packet magic")
	ErrUnexpectedPacketLength = errors.New("unexpected packet length")
	ErrMalformedMove          = errors.New("malformed move coordinates")
	ErrUnexpectedGameEnd      = errors.New("unexpected end of game")

	ErrConnectionClosed = errors.New("connection closed")
)

// IsPlacement - reports whether err is a move rejection the caller may correct
// with another move, as opposed to a protocol or transport failure that ends
// the session.
func IsPlacement(err error) bool {
	return errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrCellOccupied)
}
