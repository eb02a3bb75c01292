package peer

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/protocol"
)

// Session - an established connection to the opposing seat. A Session only
// exists after a completed hello exchange, so its mark and turn order are
// fixed for its whole lifetime and game frames are the only traffic on it.
type Session struct {
	conn  net.Conn
	codec *protocol.Codec
	mark  entity.Mark
	first bool
}

// AcceptSession - runs the hosting side of the hello exchange on conn. The
// host keeps its own configured seat and offers the connector the complement,
// so the two ends always hold opposite marks with exactly one moving first.
// Frames arriving before the hello are discarded.
func AcceptSession(logger *slog.Logger, conn net.Conn, hostMark entity.Mark, hostFirst bool) (*Session, error) {
	log := logger.With("method", "AcceptSession")

	codec := protocol.NewCodec(conn)

	for {
		payload, err := codec.ReadFrame()
		if err != nil {
			return nil, fmt.Errorf("failed to read hello: %w", err)
		}

		if err = protocol.DecodeClientHello(payload); err != nil {
			log.Debug("discarding frame received before hello", "bytes", len(payload), "error", err)
			continue
		}

		break
	}

	hello := protocol.ServerHello{ClientFirst: !hostFirst, ClientMark: hostMark.Opposite()}
	if err := codec.WriteFrame(protocol.EncodeServerHello(hello)); err != nil {
		return nil, fmt.Errorf("failed to send hello reply: %w", err)
	}

	log.Debug("handshake complete", "mark", hostMark, "first", hostFirst)

	return &Session{conn: conn, codec: codec, mark: hostMark, first: hostFirst}, nil
}

// ConnectSession - runs the connecting side of the hello exchange on conn,
// taking whichever seat the host's reply assigns.
func ConnectSession(logger *slog.Logger, conn net.Conn) (*Session, error) {
	log := logger.With("method", "ConnectSession")

	codec := protocol.NewCodec(conn)

	if err := codec.WriteFrame(protocol.EncodeClientHello()); err != nil {
		return nil, fmt.Errorf("failed to send hello: %w", err)
	}

	payload, err := codec.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("failed to read hello reply: %w", err)
	}

	hello, err := protocol.DecodeServerHello(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hello reply: %w", err)
	}

	log.Debug("handshake complete", "mark", hello.ClientMark, "first", hello.ClientFirst)

	return &Session{conn: conn, codec: codec, mark: hello.ClientMark, first: hello.ClientFirst}, nil
}

func (that *Session) LocalMark() entity.Mark { return that.mark }

func (that *Session) LocalFirst() bool { return that.first }

// SendMove - transmits one move frame to the peer.
func (that *Session) SendMove(move entity.Move) error {
	if err := that.codec.WriteFrame(protocol.EncodeMove(move)); err != nil {
		return fmt.Errorf("failed to send move frame: %w", err)
	}

	return nil
}

// ReceiveMove - blocks until the peer's next frame and decodes it as a move.
// An end-of-game frame here means the peer abandoned an unfinished game. A
// move with coordinates off the grid is a protocol violation, rejected before
// it can reach placement.
func (that *Session) ReceiveMove() (entity.Move, error) {
	payload, err := that.codec.ReadFrame()
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to read move frame: %w", err)
	}

	if protocol.IsEndOfGame(payload) {
		return entity.Move{}, apperror.ErrUnexpectedGameEnd
	}

	if len(payload) != protocol.MoveSize {
		return entity.Move{}, fmt.Errorf("%w: got %d bytes", apperror.ErrUnexpectedPacketLength, len(payload))
	}

	move, err := protocol.DecodeMove(payload)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to decode move: %w", err)
	}

	if move.Row >= entity.GridSize || move.Col >= entity.GridSize {
		return entity.Move{}, fmt.Errorf("%w: row %d, col %d", apperror.ErrMalformedMove, move.Row, move.Col)
	}

	return move, nil
}

// Abort - tells the peer this side is abandoning the game.
func (that *Session) Abort() error {
	if err := that.codec.WriteFrame(protocol.EncodeEndOfGame()); err != nil {
		return fmt.Errorf("failed to send end of game frame: %w", err)
	}

	return nil
}

func (that *Session) Close() error {
	return that.conn.Close()
}

// RemoteAddr - the peer's network address, for logging.
func (that *Session) RemoteAddr() net.Addr {
	return that.conn.RemoteAddr()
}
