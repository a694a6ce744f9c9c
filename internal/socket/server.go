package socket

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"
)

// syncTimeout bounds how long a synchronous command waits for the UI
const syncTimeout = 10 * time.Second

// Server represents a Unix socket server for accepting external commands
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
	logger     *log.Logger
}

// SocketDir returns the directory sockets live in: XDG_RUNTIME_DIR/tui-mixer
// when available, otherwise ~/.local/share/tui-mixer.
func SocketDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-mixer")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tui-mixer")
}

// NewServer creates a new Unix socket server
func NewServer(pid int) (*Server, error) {
	return NewServerIn(SocketDir(), pid)
}

// NewServerIn creates a server with its socket in dir
func NewServerIn(dir string, pid int) (*Server, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, fmt.Sprintf("tmix-%d.sock", pid))

	// Remove a stale socket left by a crashed instance with the same pid
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	logger := log.New(log.Writer(), "[SOCKET] ", log.LstdFlags|log.Lshortfile)
	logger.Printf("listening on %s", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
		logger:     logger,
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				s.logger.Printf("accept: %v", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

// handleConnection processes a single client connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			s.logger.Printf("decode: %v", err)
		}
		encoder.Encode(Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	switch msg.Command {
	case "":
		encoder.Encode(Response{Message: "Missing command field"})
		return
	case CommandAddTracks:
		if len(msg.Tracks) == 0 {
			encoder.Encode(Response{Message: "No tracks given"})
			return
		}
	case CommandList:
		msg.ResponseChan = make(chan *Response, 1)
	default:
		encoder.Encode(Response{Message: fmt.Sprintf("Unknown command %q", msg.Command)})
		return
	}

	select {
	case s.msgChan <- msg:
		if msg.ResponseChan == nil {
			encoder.Encode(Response{Success: true, Message: "Command queued"})
			return
		}
		select {
		case response := <-msg.ResponseChan:
			encoder.Encode(response)
		case <-time.After(syncTimeout):
			encoder.Encode(Response{Message: "Command timed out"})
		case <-s.stopChan:
			encoder.Encode(Response{Message: "Server is shutting down"})
		}
	case <-s.stopChan:
		encoder.Encode(Response{Message: "Server is shutting down"})
	}
}

// Messages returns the channel for receiving messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and cleans up resources
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	s.logger.Printf("stopped")
}
