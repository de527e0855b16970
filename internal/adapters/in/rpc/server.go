package rpc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
)

// serviceName is the receiver name clients address methods through, e.g.
// "OrderService.CreateOrder".
const serviceName = "OrderService"

// Server accepts TCP connections and serves the OrderService methods with
// the JSON-RPC codec, one goroutine per connection.
type Server struct {
	addr    string
	service *OrderService
	logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	wg       sync.WaitGroup
}

// NewServer creates a server that will listen on addr once started.
func NewServer(addr string, service *OrderService, logger *slog.Logger) *Server {
	return &Server{
		addr:    addr,
		service: service,
		logger:  logger.With("component", "rpc"),
	}
}

// Start binds the listener and serves connections until Stop is called.
// It blocks and returns nil after a graceful Stop.
func (s *Server) Start() error {
	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName(serviceName, s.service); err != nil {
		return fmt.Errorf("register %s: %w", serviceName, err)
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("rpc server listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.logger.Warn("accept failed", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			rpcServer.ServeCodec(jsonrpc.NewServerCodec(conn))
		}()
	}
}

// Addr returns the bound listener address, or empty before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes the listener; in-flight connections finish on their own.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.listener != nil {
		s.listener.Close()
	}
}
