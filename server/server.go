// Package server implements the TCP front end: an accept loop handing
// each connection to its own goroutine, and a read/decode/execute/write
// loop per connection. Modeled on the teacher's server.Server (accept
// loop, tracked connection set, context-based graceful Shutdown), with
// the RESP decode/command dispatch swapped in for the original's
// channel-based parser and Actor-model DB.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"

	"redisd/command"
	"redisd/internal/logging"
	"redisd/resp"
	"redisd/store"
)

const readBufferSize = 4096

// Server is the RESP TCP front end for a single store.Store.
type Server struct {
	addr  string
	store *store.Store

	listener net.Listener

	closing   chan struct{}
	closeOnce sync.Once

	wg      sync.WaitGroup
	conns   map[net.Conn]struct{}
	connsMu sync.Mutex
}

// New builds a Server bound to addr, serving commands against s.
func New(addr string, s *store.Store) *Server {
	return &Server{
		addr:    addr,
		store:   s,
		closing: make(chan struct{}),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Start binds the listener and accepts connections until Shutdown is
// called. It blocks and returns nil on a clean shutdown.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	logging.Infof("listening on %s", s.addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.closing:
				return nil
			default:
			}
			logging.Warnf("accept error: %v", err)
			continue
		}
		s.trackConn(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Shutdown stops accepting new connections, closes every open one, and
// waits (up to ctx) for their goroutines to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.closing)
		if s.listener != nil {
			_ = s.listener.Close()
		}

		s.connsMu.Lock()
		for c := range s.conns {
			_ = c.Close()
		}
		s.connsMu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	return ctx.Err()
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	defer s.untrackConn(conn)

	connID := uuid.New().String()
	log := logging.With("conn", connID, "remote", conn.RemoteAddr().String())

	openConnections.Inc()
	defer openConnections.Dec()
	log.Infof("connection opened")
	defer log.Infof("connection closed")

	buf := make([]byte, 0, readBufferSize)
	readBuf := make([]byte, readBufferSize)

	for {
		frame, n, err := resp.Decode(buf)
		if err == nil {
			buf = buf[n:]
			s.dispatch(conn, log, frame)
			continue
		}

		if errors.Is(err, resp.ErrNotComplete) {
			nr, rerr := conn.Read(readBuf)
			if nr > 0 {
				buf = append(buf, readBuf[:nr]...)
			}
			if rerr != nil {
				if !errors.Is(rerr, io.EOF) {
					log.Warnf("read error: %v", rerr)
				}
				return
			}
			continue
		}

		protocolErrors.Inc()
		log.Warnf("protocol error: %v", err)
		return
	}
}

// dispatch parses and executes exactly one already-decoded frame,
// writing its reply back. A command-level error (unknown command, wrong
// arity, bad UTF-8) produces an error reply and leaves the connection
// open; only frame-level decode errors are fatal to the connection.
func (s *Server) dispatch(conn net.Conn, log logging.Logger, frame resp.Frame) {
	var reply resp.Frame
	cmd, err := command.Parse(frame)
	if err != nil {
		var cmdErr *command.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Kind == command.KindInvalidCommand {
			reply = resp.NewSimpleError(cmdErr.Error())
		} else {
			reply = resp.NewSimpleError("ERR " + err.Error())
		}
	} else {
		reply = cmd.Execute(s.store)
		commandsProcessed.Inc()
	}

	out := reply.Encode()
	if _, werr := conn.Write(out); werr != nil {
		log.Warnf("write error: %v", werr)
		return
	}
	bytesWritten.Add(float64(len(out)))
}

func (s *Server) trackConn(conn net.Conn) {
	s.connsMu.Lock()
	s.conns[conn] = struct{}{}
	s.connsMu.Unlock()
}

func (s *Server) untrackConn(conn net.Conn) {
	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()
}
