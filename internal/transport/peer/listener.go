package peer

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// Listener - the unconnected hosting side. It owns the bound socket but no
// peer yet; Accept upgrades one incoming connection into a Session.
type Listener struct {
	logger    *slog.Logger
	inner     net.Listener
	hostMark  entity.Mark
	hostFirst bool
}

// Listen - binds addr and prepares to host a game with the given seat.
func Listen(logger *slog.Logger, addr string, hostMark entity.Mark, hostFirst bool) (*Listener, error) {
	inner, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return &Listener{
		logger:    logger,
		inner:     inner,
		hostMark:  hostMark,
		hostFirst: hostFirst,
	}, nil
}

// Accept - blocks for the next connection and completes the hello exchange
// on it. Connections that fail the exchange are closed and waiting resumes.
// Cancelling ctx closes the socket and unblocks the wait.
func (that *Listener) Accept(ctx context.Context) (*Session, error) {
	log := that.logger.With("component", "listener")

	stop := context.AfterFunc(ctx, func() {
		_ = that.inner.Close()
	})
	defer stop()

	for {
		conn, err := that.inner.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("failed to accept: %w", ctx.Err())
			}

			return nil, fmt.Errorf("failed to accept: %w", err)
		}

		log.Info("peer connected", "remote", conn.RemoteAddr())

		session, err := AcceptSession(that.logger, conn, that.hostMark, that.hostFirst)
		if err != nil {
			log.Error("failed to complete handshake", "error", err)
			conn.Close()

			continue
		}

		return session, nil
	}
}

// Addr - the bound address, which is how a port picked by the system is
// discovered.
func (that *Listener) Addr() net.Addr {
	return that.inner.Addr()
}

func (that *Listener) Close() error {
	return that.inner.Close()
}

// Dial - connects to a hosting peer at addr and completes the hello exchange,
// taking whichever seat the host assigns.
func Dial(ctx context.Context, logger *slog.Logger, addr string) (*Session, error) {
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	session, err := ConnectSession(logger, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return session, nil
}
