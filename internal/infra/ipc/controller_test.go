package ipc

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveAddress(t *testing.T) {
	cases := []struct {
		url     string
		network string
		address string
		wantErr bool
	}{
		{url: "unix:///tmp/diag.sock", network: "unix", address: "/tmp/diag.sock"},
		{url: "/tmp/diag.sock", network: "unix", address: "/tmp/diag.sock"},
		{url: "tcp://127.0.0.1:9400", network: "tcp", address: "127.0.0.1:9400"},
		{url: "127.0.0.1:9400", network: "tcp", address: "127.0.0.1:9400"},
		{url: "not a url", wantErr: true},
	}

	for _, tc := range cases {
		network, address, err := resolveAddress(tc.url)
		if tc.wantErr {
			require.Error(t, err, tc.url)
			continue
		}
		require.NoError(t, err, tc.url)
		require.Equal(t, tc.network, network)
		require.Equal(t, tc.address, address)
	}
}

func TestClientController_AdvertiseHandshake(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	frames := make(chan []byte, 2)
	go func() {
		conn, acceptErr := listener.Accept()
		if acceptErr != nil {
			close(frames)
			return
		}
		defer conn.Close()

		advertise := make([]byte, advertiseSize)
		if _, readErr := io.ReadFull(conn, advertise); readErr != nil {
			close(frames)
			return
		}
		frames <- advertise

		resume := make([]byte, resumeSize)
		if _, readErr := io.ReadFull(conn, resume); readErr != nil {
			close(frames)
			return
		}
		frames <- resume
	}()

	controller := NewClientController(zap.NewNop())
	started, err := controller.Start(context.Background(), listener.Addr().String())
	require.NoError(t, err)

	advertise, ok := <-frames
	require.True(t, ok)
	require.Equal(t, []byte(advertiseMagic), advertise[:8])

	cookie, err := uuid.FromBytes(advertise[8:24])
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, cookie)

	pid := binary.LittleEndian.Uint64(advertise[24:32])
	require.Equal(t, uint64(os.Getpid()), pid)
	require.Equal(t, []byte{0, 0}, advertise[32:34])

	require.NoError(t, started.NotifyCheckpoint(context.Background()))

	resume, ok := <-frames
	require.True(t, ok)
	require.Equal(t, []byte(resumeMagic), resume[:8])
	require.Equal(t, cookie[:], resume[8:24])
}

func TestClientController_DialFailure(t *testing.T) {
	controller := NewClientController(zap.NewNop())

	// Port 1 on localhost is essentially never listening.
	_, err := controller.Start(context.Background(), "127.0.0.1:1")
	require.Error(t, err)
}
