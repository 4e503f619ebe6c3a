package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/odpf/salt/log"

	"github.com/odpf/dotnet-fetch/internal/errors"
	"github.com/odpf/dotnet-fetch/internal/release"
	"github.com/odpf/dotnet-fetch/internal/transport"
)

var allowedContentTypes = []string{
	"application/octet-stream",
	"text/plain",
	"text/plain; charset=UTF-8",
}

// SelectorError ties a resolution failure to the selector it happened for.
type SelectorError struct {
	Selector release.Selector
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("error resolving channel [%s]: %s", e.Selector, e.Err)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}

// Getter fetches metadata documents.
type Getter interface {
	Get(ctx context.Context, url string) (*transport.Response, error)
}

// Resolver turns channel selectors into concrete versions using the
// latest.version documents of a feed.
type Resolver struct {
	feed   string
	getter Getter
	logger log.Logger
}

// New initializes resolver for feed
func New(feed string, getter Getter, logger log.Logger) *Resolver {
	if logger == nil {
		logger = log.NewNoop()
	}
	return &Resolver{
		feed:   feed,
		getter: getter,
		logger: logger,
	}
}

// ResolveChannelVersion returns the two part channel for selector. Explicit
// versions are returned without querying the feed, aliases are resolved with
// probe as representative kind.
func (r *Resolver) ResolveChannelVersion(ctx context.Context, selector release.Selector, probe release.Kind) (string, error) {
	if selector.IsExplicit() {
		return selector.String(), nil
	}

	version, err := r.FetchLatestVersion(ctx, selector.String(), probe)
	if err != nil {
		return "", err
	}
	channel, ok := release.ExtractChannel(version)
	if !ok {
		return "", errors.ChannelResolution(selector.String(), fmt.Sprintf("no version pattern in [%s]", version))
	}
	r.logger.Debug(fmt.Sprintf("channel %s resolved to %s", selector, channel))
	return channel, nil
}

// FetchLatestVersion returns the most recent version published for kind in channel.
func (r *Resolver) FetchLatestVersion(ctx context.Context, channel string, kind release.Kind) (string, error) {
	url := release.MetadataURL(r.feed, channel, kind)
	r.logger.Debug(fmt.Sprintf("fetching %s", url))

	resp, err := r.getter.Get(ctx, url)
	if err != nil {
		return "", errors.MetadataFetch(url, "request failed", err)
	}

	contentType := resp.ContentType()
	if !isAllowedContentType(contentType) {
		return "", errors.UnknownContentType(url, contentType)
	}

	fields := strings.Fields(string(resp.Body))
	if len(fields) == 0 {
		return "", errors.MetadataFetch(url, "empty version document", nil)
	}
	return fields[len(fields)-1], nil
}

// ResolveDistinctChannelVersions resolves every selector and returns the
// distinct channels in first seen order. Selectors failing to resolve are
// reported in the returned error and skipped.
func (r *Resolver) ResolveDistinctChannelVersions(ctx context.Context, selectors []release.Selector, probe release.Kind) ([]string, error) {
	var (
		channels []string
		seen     = map[string]bool{}
		result   *multierror.Error
	)
	for _, selector := range selectors {
		channel, err := r.ResolveChannelVersion(ctx, selector, probe)
		if err != nil {
			result = multierror.Append(result, &SelectorError{Selector: selector, Err: err})
			continue
		}
		if seen[channel] {
			continue
		}
		seen[channel] = true
		channels = append(channels, channel)
	}
	return channels, result.ErrorOrNil()
}

func isAllowedContentType(contentType string) bool {
	contentType = strings.TrimSpace(contentType)
	for _, allowed := range allowedContentTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}
