// Package net runs a TCP front end for the line-based order book
// protocol: a listener loop hands each connection to a WorkerPool, and
// every worker that reads a line forwards it to one session-handler
// goroutine, which is the only caller into the shared OrderBook. That
// serialization keeps a book that is otherwise single-threaded safe to
// expose to more than one client.
package net

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"ironbook/internal/driver"
	"ironbook/internal/engine"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const (
	defaultNWorkers    = 10
	defaultConnTimeout = 5 * time.Minute
)

var ErrImproperConversion = errors.New("net: improper task type conversion")

// ClientSession is one connected TCP client's scanning state. It doubles
// as the worker pool's task type: a worker that reads one line re-enqueues
// the session so reading continues, rather than dedicating one goroutine
// to a connection for its whole lifetime.
type ClientSession struct {
	id      uuid.UUID
	conn    net.Conn
	scanner *bufio.Scanner
}

// command links one parsed line to the session that sent it.
type command struct {
	session *ClientSession
	line    string
}

// Server accepts line-protocol connections and dispatches every line
// against a single shared OrderBook.
type Server struct {
	address string
	port    int
	book    *engine.OrderBook
	logger  zerolog.Logger

	pool   WorkerPool
	cancel context.CancelFunc

	sessionsLock sync.Mutex
	sessions     map[uuid.UUID]*ClientSession

	commands chan command
}

// New creates a server that dispatches every accepted connection's lines
// against book.
func New(address string, port int, book *engine.OrderBook) *Server {
	return &Server{
		address:  address,
		port:     port,
		book:     book,
		logger:   log.Logger,
		pool:     NewWorkerPool(defaultNWorkers),
		sessions: make(map[uuid.UUID]*ClientSession),
		commands: make(chan command, 1),
	}
}

// Shutdown cancels the server's context, unwinding the listener loop, the
// worker pool, and the session handler.
func (s *Server) Shutdown() {
	s.logger.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run blocks accepting connections until ctx is cancelled or the listener
// fails.
func (s *Server) Run(ctx context.Context) {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		s.logger.Error().Err(err).Msg("unable to start listener")
		return
	}
	// Closing the listener on cancellation unblocks a pending Accept, so
	// the loop below observes ctx.Done() without waiting for a new client.
	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			s.logger.Error().Err(err).Msg("unable to close listener")
		}
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.sessionHandler(t)
	})

	s.logger.Info().Str("address", listener.Addr().String()).Msg("server running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Error().Err(err).Msg("error accepting client")
				continue
			}

			session := s.addSession(conn)
			s.logger.Info().
				Str("session", session.id.String()).
				Str("remote", conn.RemoteAddr().String()).
				Msg("client connected")
			s.pool.AddTask(session)
		}
	}
}

// sessionHandler is the single goroutine that ever calls into the
// OrderBook, serializing what would otherwise be concurrent writers
// across every worker's connection.
func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case cmd := <-s.commands:
			driver.Dispatch(s.book, s.logger, cmd.line, cmd.session.conn)
		}
	}
}

// handleConnection reads exactly one line off a session, forwards it to
// sessionHandler, and either re-enqueues the session for its next line or,
// on EOF/error, closes the connection and drops the session. Any error
// returned here is fatal to the worker pool.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	session, ok := task.(*ClientSession)
	if !ok {
		return ErrImproperConversion
	}

	select {
	case <-t.Dying():
		return nil
	default:
	}

	if err := session.conn.SetReadDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		s.logger.Error().Err(err).Str("session", session.id.String()).Msg("failed setting deadline for connection")
		s.removeSession(session)
		return nil
	}

	if !session.scanner.Scan() {
		if err := session.scanner.Err(); err != nil {
			s.logger.Error().Err(err).Str("session", session.id.String()).Msg("error reading from connection")
		}
		s.removeSession(session)
		return nil
	}

	select {
	case s.commands <- command{session: session, line: session.scanner.Text()}:
	case <-t.Dying():
		return nil
	}

	s.pool.AddTask(session)
	return nil
}

func (s *Server) addSession(conn net.Conn) *ClientSession {
	session := &ClientSession{
		id:      uuid.New(),
		conn:    conn,
		scanner: bufio.NewScanner(conn),
	}
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	s.sessions[session.id] = session
	return session
}

func (s *Server) removeSession(session *ClientSession) {
	s.sessionsLock.Lock()
	delete(s.sessions, session.id)
	s.sessionsLock.Unlock()

	if err := session.conn.Close(); err != nil {
		s.logger.Error().Err(err).Str("session", session.id.String()).Msg("error closing connection")
	}
}
