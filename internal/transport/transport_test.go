package transport_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"golang.org/x/net/http/httpproxy"

	"github.com/odpf/dotnet-fetch/internal/retry"
	"github.com/odpf/dotnet-fetch/internal/transport"
)

type TransportTestSuite struct {
	suite.Suite
	fs afero.Fs
}

func (s *TransportTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
}

func TestTransport(t *testing.T) {
	suite.Run(t, new(TransportTestSuite))
}

func (s *TransportTestSuite) newTransport(opts transport.Options) *transport.HTTPTransport {
	opts.Fs = s.fs
	opts.Retry = retry.New(3, time.Millisecond)
	opts.EnvironmentProxy = &httpproxy.Config{}
	t, err := transport.New(opts)
	s.Require().NoError(err)
	return t
}

func (s *TransportTestSuite) TestGet() {
	ctx := context.Background()

	s.Run("should return body and headers", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal("dotnet-fetch/test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("abc123\n3.1.201"))
		}))
		defer server.Close()

		t := s.newTransport(transport.Options{UserAgent: "dotnet-fetch/test"})
		resp, err := t.Get(ctx, server.URL+"/Sdk/LTS/latest.version")

		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal("text/plain", resp.ContentType())
		s.Equal("abc123\n3.1.201", string(resp.Body))
	})

	s.Run("should retry until the server recovers", func() {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte("5.0.100"))
		}))
		defer server.Close()

		t := s.newTransport(transport.Options{})
		resp, err := t.Get(ctx, server.URL)

		s.Require().NoError(err)
		s.Equal("5.0.100", string(resp.Body))
		s.EqualValues(3, atomic.LoadInt32(&calls))
	})

	s.Run("should return error after exhausting attempts", func() {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		t := s.newTransport(transport.Options{})
		resp, err := t.Get(ctx, server.URL)

		s.Nil(resp)
		s.Error(err)
		s.Contains(err.Error(), "404")
		s.EqualValues(3, atomic.LoadInt32(&calls))
	})

	s.Run("should send requests through the explicit proxy", func() {
		proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal("feed.example.invalid", r.URL.Host)
			s.Empty(r.Header.Get("Proxy-Authorization"))
			w.Write([]byte("proxied"))
		}))
		defer proxy.Close()

		address := "http://user:secret@" + proxy.Listener.Addr().String()
		t := s.newTransport(transport.Options{ProxyAddress: address})
		resp, err := t.Get(ctx, "http://feed.example.invalid/Sdk/LTS/latest.version")

		s.Require().NoError(err)
		s.Equal("proxied", string(resp.Body))
	})

	s.Run("should forward proxy credentials when requested", func() {
		proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.NotEmpty(r.Header.Get("Proxy-Authorization"))
			w.Write([]byte("proxied"))
		}))
		defer proxy.Close()

		address := "http://user:secret@" + proxy.Listener.Addr().String()
		t := s.newTransport(transport.Options{ProxyAddress: address, ProxyUseDefaultCredentials: true})
		_, err := t.Get(ctx, "http://feed.example.invalid/Sdk/LTS/latest.version")

		s.NoError(err)
	})
}

func (s *TransportTestSuite) TestNew() {
	s.Run("should return error for malformed proxy address", func() {
		_, err := transport.New(transport.Options{ProxyAddress: "://bad"})
		s.Error(err)
	})

	s.Run("should return error for proxy address without host", func() {
		_, err := transport.New(transport.Options{ProxyAddress: "proxy-only"})
		s.Error(err)
	})
}

func (s *TransportTestSuite) TestDownload() {
	ctx := context.Background()
	payload := bytes.Repeat([]byte("dotnet"), 1024)

	s.Run("should write the payload to destination", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write(payload)
		}))
		defer server.Close()

		t := s.newTransport(transport.Options{})
		dst := "/out/3.1/SDK/dotnet-sdk-3.1.201-win-x64.zip"
		s.Require().NoError(s.fs.MkdirAll("/out/3.1/SDK", 0o755))

		err := t.Download(ctx, server.URL+"/file.zip", dst)

		s.Require().NoError(err)
		content, err := afero.ReadFile(s.fs, dst)
		s.Require().NoError(err)
		s.Equal(payload, content)
		exists, _ := afero.Exists(s.fs, dst+".part")
		s.False(exists)
	})

	s.Run("should leave nothing behind when download fails", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		t := s.newTransport(transport.Options{})
		dst := "/out/failed.zip"

		err := t.Download(ctx, server.URL+"/file.zip", dst)

		s.Error(err)
		exists, _ := afero.Exists(s.fs, dst)
		s.False(exists)
		exists, _ = afero.Exists(s.fs, dst+".part")
		s.False(exists)
	})

	s.Run("should report progress through the tracker", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
			w.Write(payload)
		}))
		defer server.Close()

		tracker := &recordingTracker{}
		t := s.newTransport(transport.Options{Progress: tracker})

		err := t.Download(ctx, server.URL+"/file.zip", "/out/tracked.zip")

		s.Require().NoError(err)
		s.Equal("tracked.zip", tracker.src)
		s.EqualValues(len(payload), tracker.total)
		s.True(tracker.closed)
	})
}

type recordingTracker struct {
	src    string
	total  int64
	closed bool
}

func (r *recordingTracker) TrackProgress(src string, _, totalSize int64, stream io.ReadCloser) io.ReadCloser {
	r.src = src
	r.total = totalSize
	return &trackedBody{ReadCloser: stream, onClose: func() { r.closed = true }}
}

type trackedBody struct {
	io.ReadCloser
	onClose func()
}

func (b *trackedBody) Close() error {
	b.onClose()
	return b.ReadCloser.Close()
}
