package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"
)

// Server runs sessions over newline-delimited JSON on plain TCP. A client
// that wants a particular starting state sends a restore action first.
type Server struct {
	Addr string
	Hub  *Hub

	mu sync.Mutex
	ln net.Listener
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

// Run accepts connections until Close is called.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Hub.Logger.Printf("[tcp-session] listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}
		go s.handle(conn)
	}
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	sess := s.Hub.Open(TransportTCP, "")
	defer s.Hub.Close(sess)

	w := bufio.NewWriter(conn)
	send := func(f Frame) error {
		b, err := json.Marshal(f)
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
		return w.Flush()
	}

	if err := send(sess.View()); err != nil {
		return
	}

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 4096), 64*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var a Action
		var f Frame
		if err := json.Unmarshal(line, &a); err != nil {
			f = Frame{Type: FrameError, Session: sess.ID, Error: "invalid action: " + err.Error(), At: time.Now().UTC()}
		} else {
			f = sess.Handle(a)
		}
		if err := send(f); err != nil {
			s.Hub.Logger.Printf("[tcp-session] write to %s failed: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
