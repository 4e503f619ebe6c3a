package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/odpf/dotnet-fetch/internal/release"
)

type VersionResolver struct {
	mock.Mock
}

func (r *VersionResolver) ResolveDistinctChannelVersions(ctx context.Context, selectors []release.Selector, probe release.Kind) ([]string, error) {
	args := r.Called(ctx, selectors, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (r *VersionResolver) FetchLatestVersion(ctx context.Context, channel string, kind release.Kind) (string, error) {
	args := r.Called(ctx, channel, kind)
	return args.String(0), args.Error(1)
}
