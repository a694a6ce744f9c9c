package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client represents a Unix socket client for sending commands
type Client struct {
	socketPath string
	timeout    time.Duration
}

// FindRunningInstance finds the socket path for a running tmix instance in
// the default socket directory
func FindRunningInstance() (string, int, error) {
	return FindRunningInstanceIn(SocketDir())
}

// FindRunningInstanceIn returns the newest tmix socket in dir and its PID
func FindRunningInstanceIn(dir string) (string, int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "tmix-*.sock"))
	if err != nil {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newest string
	var newestTime time.Time
	for _, sock := range matches {
		info, err := os.Stat(sock)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = sock
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no running tmix instance found in %s", dir)
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), "tmix-"), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0 // Unknown PID
	}

	return newest, pid, nil
}

// NewClient creates a new client connected to the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// SendAddTracks is a convenience method to send an add_tracks command. Each
// entry of texts is an "Artist - Title" string.
func (c *Client) SendAddTracks(kind, label, query string, texts []string) (*Response, error) {
	if label == "" {
		label = "External"
	}

	tracks := make([]TrackSpec, 0, len(texts))
	for _, text := range texts {
		tracks = append(tracks, TrackSpec{Text: text})
	}

	return c.Send(Message{
		Command: CommandAddTracks,
		Kind:    kind,
		Label:   label,
		Query:   query,
		Tracks:  tracks,
	})
}

// SendList asks the running instance for its playlist
func (c *Client) SendList() (*Response, error) {
	return c.Send(Message{Command: CommandList})
}
