package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil parser service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingParserService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingParserService)
		assert.Nil(t, server)
	})

	t.Run("parser only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("parser and cv service creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Parser: &mockParserService{},
			CV:     &mockCVService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil parser service returns error", func(t *testing.T) {
		ports := &Ports{CV: &mockCVService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingParserService)
	})

	t.Run("parser only is valid", func(t *testing.T) {
		ports := &Ports{Parser: &mockParserService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Instructions(t *testing.T) {
	t.Run("lists accepted mime types", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}})
		require.NoError(t, err)

		got := server.instructions()
		assert.Contains(t, got, "application/pdf")
		assert.Contains(t, got, "text/plain")
		assert.Contains(t, got, "extract_basic_info")
		assert.NotContains(t, got, "cvkit://cvs")
	})

	t.Run("mentions resources when cv service is set", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}, CV: &mockCVService{}})
		require.NoError(t, err)

		assert.Contains(t, server.instructions(), "cvkit://cvs/{cvId}")
	})
}

func TestServer_RunHTTPStopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Parser: &mockParserService{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}
