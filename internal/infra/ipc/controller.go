package ipc

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"diagport/internal/domain"
	"diagport/internal/infra/telemetry"
)

// Advertise frame layout, byte-exact:
//
//	magic   8 bytes
//	cookie 16 bytes (random per connection, echoed in every later frame)
//	pid     8 bytes little-endian
//	future  2 bytes, zero
//
// The resume frame is magic + cookie.
const (
	advertiseMagic = "ADVR_V1\x00"
	resumeMagic    = "RESM_V1\x00"
	advertiseSize  = 8 + 16 + 8 + 2
	resumeSize     = 8 + 16
)

// ClientController dials the diagnostic endpoint and performs the advertise
// handshake. It implements domain.ServerController for embeddings that want
// a working connection out of the box rather than supplying their own.
type ClientController struct {
	logger *zap.Logger
}

func NewClientController(logger *zap.Logger) *ClientController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientController{logger: logger.Named("ipc")}
}

func (c *ClientController) Start(ctx context.Context, url string) (domain.Controller, error) {
	network, address, err := resolveAddress(url)
	if err != nil {
		return nil, err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: %w", network, address, err)
	}

	cookie := uuid.New()
	if err := writeAdvertise(conn, cookie, uint64(os.Getpid())); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("advertise: %w", err)
	}

	c.logger.Info("diagnostic endpoint connected",
		telemetry.EventField(telemetry.EventAttachSuccess),
		telemetry.PortURIField(url),
		zap.String("cookie", cookie.String()),
	)

	return &connection{conn: conn, cookie: cookie}, nil
}

// connection is a started diagnostic server connection.
type connection struct {
	mu     sync.Mutex
	conn   net.Conn
	cookie uuid.UUID
}

func (c *connection) NotifyCheckpoint(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := make([]byte, 0, resumeSize)
	frame = append(frame, resumeMagic...)
	frame = append(frame, c.cookie[:]...)
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("write resume frame: %w", err)
	}
	return nil
}

func (c *connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

func writeAdvertise(conn net.Conn, cookie uuid.UUID, pid uint64) error {
	frame := make([]byte, 0, advertiseSize)
	frame = append(frame, advertiseMagic...)
	frame = append(frame, cookie[:]...)
	frame = binary.LittleEndian.AppendUint64(frame, pid)
	frame = append(frame, 0, 0)
	if _, err := conn.Write(frame); err != nil {
		return err
	}
	return nil
}

// resolveAddress maps a diagnostic port URI onto a dialable network and
// address: `unix:///path` or a bare filesystem path select a unix socket,
// anything with a host:port shape selects tcp.
func resolveAddress(url string) (network, address string, err error) {
	switch {
	case strings.HasPrefix(url, "unix://"):
		return "unix", strings.TrimPrefix(url, "unix://"), nil
	case strings.HasPrefix(url, "tcp://"):
		return "tcp", strings.TrimPrefix(url, "tcp://"), nil
	case strings.HasPrefix(url, "/"):
		return "unix", url, nil
	}
	if _, _, splitErr := net.SplitHostPort(url); splitErr == nil {
		return "tcp", url, nil
	}
	return "", "", fmt.Errorf("unsupported diagnostic endpoint %q", url)
}
