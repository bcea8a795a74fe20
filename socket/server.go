package socket

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/okanya/commonlib/safe"
)

// Server drives a Listener and dispatches every accepted connection
// to its Handler on a dedicated goroutine; the accept loop never
// waits on a handler. Shutdown stops accepting, then drains: running
// handlers get the drain timeout to finish before their connections
// are force-closed.
type Server struct {
	opts     serverOptions
	name     string
	ep       Endpoint
	handler  Handler
	mu       sync.Mutex
	lis      *Listener
	served   bool
	shutdown bool
	serveWg  sync.WaitGroup
	connsMu  sync.Mutex
	conns    map[*Conn]struct{}
	connsWg  sync.WaitGroup
	doneChan chan struct{}
	logger   *slog.Logger
}

func NewServer(name string, ep Endpoint, handler Handler, opt ...ServerOption) *Server {
	opts := defaultServerOptions()
	for _, o := range opt {
		o(&opts)
	}
	opts.ensure()
	return &Server{
		opts:     opts,
		name:     name,
		ep:       ep,
		handler:  handler,
		conns:    make(map[*Conn]struct{}),
		doneChan: make(chan struct{}),
		logger:   opts.logger,
	}
}

func (s *Server) String() string {
	return fmt.Sprintf("[name:%s][listen_addr:%s]", s.name, s.Endpoint())
}

func (s *Server) Name() string { return s.name }

// Endpoint reports the bound address once listening, the configured
// one before that.
func (s *Server) Endpoint() Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		return s.lis.Endpoint()
	}
	return s.ep
}

func (s *Server) ConnNum() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return fmt.Errorf("socket: server %s already shutdown", s.name)
	}
	if s.lis != nil {
		return fmt.Errorf("socket: server %s already listened", s.name)
	}
	lis, err := Listen(s.ep, WithBacklog(s.opts.backlog))
	if err != nil {
		return fmt.Errorf("socket: server %s listen err [%w]", s.name, err)
	}
	s.lis = lis
	return nil
}

func (s *Server) Serve() error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return fmt.Errorf("socket: server %s already shutdown", s.name)
	}
	if s.served {
		s.mu.Unlock()
		return fmt.Errorf("socket: server %s already served", s.name)
	}
	if s.lis == nil {
		s.mu.Unlock()
		return fmt.Errorf("socket: server %s no listener", s.name)
	}
	s.served = true
	lis := s.lis
	s.serveWg.Add(1)
	defer s.serveWg.Done()
	s.mu.Unlock()

	var tempDelay time.Duration
	for {
		c, err := lis.Accept()
		if err != nil {
			select {
			case <-s.doneChan:
				return nil
			default:
			}
			if isTemporary(err) {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				s.logger.Warn("socket: server accept retry",
					slog.String("server", s.String()), slog.Any("err", err))
				timer := time.NewTimer(tempDelay)
				select {
				case <-timer.C:
				case <-s.doneChan:
					timer.Stop()
					return nil
				}
				continue
			}
			return fmt.Errorf("socket: server %s accept err [%w]", s.name, err)
		}
		tempDelay = 0
		s.handleConn(c)
	}
}

func (s *Server) handleConn(c *Conn) {
	s.connsMu.Lock()
	if s.opts.maxConnNum > 0 && len(s.conns) >= s.opts.maxConnNum {
		s.connsMu.Unlock()
		s.logger.Warn("socket: server too many conns",
			slog.String("server", s.String()), slog.String("conn", c.String()))
		if err := c.Close(); err != nil {
			s.logger.Error("socket: server close overflow conn",
				slog.String("server", s.String()), slog.Any("err", err))
		}
		return
	}
	if err := setConnOptions(c.conn, s.opts.keepAlivePeriod); err != nil {
		s.connsMu.Unlock()
		s.logger.Error("socket: server set conn options",
			slog.String("server", s.String()), slog.Any("err", err))
		if err := c.Close(); err != nil {
			s.logger.Error("socket: server close conn",
				slog.String("server", s.String()), slog.Any("err", err))
		}
		return
	}
	c.SetReadTimeout(s.opts.readTimeout)
	c.SetWriteTimeout(s.opts.writeTimeout)
	s.conns[c] = struct{}{}
	s.connsMu.Unlock()

	s.connsWg.Add(1)
	safe.Go(func() {
		defer s.connsWg.Done()
		defer func() {
			s.connsMu.Lock()
			delete(s.conns, c)
			s.connsMu.Unlock()
			if err := c.Close(); err != nil {
				s.logger.Error("socket: server close conn",
					slog.String("server", s.String()), slog.Any("err", err))
			}
		}()
		s.handler.Handle(c)
	})
}

// isTemporary inspects the OS-level error beneath the taxonomy
// wrapper; the wrapper itself only reports timeouts.
func isTemporary(err error) bool {
	var se *Error
	if errors.As(err, &se) && se.Err != nil {
		err = se.Err
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Temporary()
}

// Shutdown stops the accept loop, then drains. Idempotent; it returns
// once every handler goroutine has finished.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.shutdown = true
	lis := s.lis
	s.mu.Unlock()

	close(s.doneChan)
	if lis != nil {
		lis.Shutdown()
	}
	s.serveWg.Wait()

	done := make(chan struct{})
	safe.Go(func() {
		s.connsWg.Wait()
		close(done)
	})
	if s.opts.drainTimeout > 0 {
		timer := time.NewTimer(s.opts.drainTimeout)
		select {
		case <-done:
			timer.Stop()
		case <-timer.C:
			s.connsMu.Lock()
			n := len(s.conns)
			for c := range s.conns {
				if err := c.Close(); err != nil {
					s.logger.Error("socket: server close drained conn",
						slog.String("server", s.String()), slog.Any("err", err))
				}
			}
			s.connsMu.Unlock()
			if n > 0 {
				s.logger.Warn("socket: server drain timeout",
					slog.String("server", s.String()), slog.Int("conns", n))
			}
			<-done
		}
	} else {
		<-done
	}
}
