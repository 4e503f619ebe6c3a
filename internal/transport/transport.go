package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	getter "github.com/hashicorp/go-getter"
	"github.com/odpf/salt/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/net/http/httpproxy"

	"github.com/odpf/dotnet-fetch/internal/retry"
)

const (
	DefaultTimeout = 1200 * time.Second

	partialSuffix = ".part"
)

// Options configures the HTTP transport.
type Options struct {
	// Timeout bounds a whole request including reading the body
	Timeout time.Duration
	// ProxyAddress when set is used for every request
	ProxyAddress string
	// ProxyUseDefaultCredentials forwards user info embedded in ProxyAddress
	ProxyUseDefaultCredentials bool
	// EnvironmentProxy overrides the proxy settings read from the environment
	EnvironmentProxy *httpproxy.Config
	UserAgent        string

	Retry    *retry.Executor
	Fs       afero.Fs
	Progress getter.ProgressTracker
	Logger   log.Logger
}

// Response is a fully read metadata response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the declared content type of the response.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// HTTPTransport performs single GET requests wrapped in the retry executor.
type HTTPTransport struct {
	client    *http.Client
	retry     *retry.Executor
	fs        afero.Fs
	progress  getter.ProgressTracker
	userAgent string
	logger    log.Logger
}

// New initializes the HTTP transport
func New(opts Options) (*HTTPTransport, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var proxy ProxyFunc
	if opts.ProxyAddress != "" {
		var err error
		proxy, err = explicitProxy(opts.ProxyAddress, opts.ProxyUseDefaultCredentials)
		if err != nil {
			return nil, err
		}
	} else {
		envProxy := opts.EnvironmentProxy
		if envProxy == nil {
			envProxy = httpproxy.FromEnvironment()
		}
		proxy = environmentProxy(envProxy)
	}

	executor := opts.Retry
	if executor == nil {
		executor = retry.New(retry.DefaultAttempts, retry.DefaultDelay)
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoop()
	}

	httpTransport := http.DefaultTransport.(*http.Transport).Clone()
	httpTransport.Proxy = proxy
	httpTransport.TLSHandshakeTimeout = 30 * time.Second

	return &HTTPTransport{
		client: &http.Client{
			Transport: httpTransport,
			Timeout:   timeout,
		},
		retry:     executor,
		fs:        fs,
		progress:  opts.Progress,
		userAgent: opts.UserAgent,
		logger:    logger,
	}, nil
}

// Get fetches url and returns the status, headers and body.
func (t *HTTPTransport) Get(ctx context.Context, url string) (*Response, error) {
	return retry.Call(ctx, t.retry, func() (*Response, error) {
		resp, err := t.do(ctx, url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading response from %s: %w", url, err)
		}
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	})
}

// Download streams the body of url to dst. The payload is written next to dst
// first and only renamed into place once complete.
func (t *HTTPTransport) Download(ctx context.Context, url, dst string) error {
	return t.retry.Do(ctx, func() error {
		return t.download(ctx, url, dst)
	})
}

func (t *HTTPTransport) download(ctx context.Context, url, dst string) error {
	resp, err := t.do(ctx, url)
	if err != nil {
		return err
	}
	body := io.ReadCloser(resp.Body)
	if t.progress != nil {
		body = t.progress.TrackProgress(path.Base(dst), 0, resp.ContentLength, resp.Body)
	}
	defer body.Close()

	tmp := dst + partialSuffix
	f, err := t.fs.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "failed to create file at %s", tmp)
	}

	n, copyErr := getter.Copy(ctx, f, body)
	closeErr := f.Close()
	if copyErr == nil && closeErr == nil && resp.ContentLength >= 0 && n != resp.ContentLength {
		copyErr = fmt.Errorf("received %d of %d bytes", n, resp.ContentLength)
	}
	if copyErr != nil || closeErr != nil {
		if rmErr := t.fs.Remove(tmp); rmErr != nil {
			t.logger.Warn(fmt.Sprintf("unable to remove partial file %s: %s", tmp, rmErr))
		}
		if copyErr != nil {
			return errors.Wrapf(copyErr, "failed to write %s", url)
		}
		return errors.Wrapf(closeErr, "failed to close file at %s", tmp)
	}

	if err := t.fs.Rename(tmp, dst); err != nil {
		return errors.Wrapf(err, "failed to move %s to %s", tmp, dst)
	}
	t.logger.Debug(fmt.Sprintf("wrote %d bytes to %s", n, dst))
	return nil
}

func (t *HTTPTransport) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s : %s", url, resp.Status)
	}
	return resp, nil
}
