package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/odpf/dotnet-fetch/internal/transport"
)

type Getter struct {
	mock.Mock
}

func (g *Getter) Get(ctx context.Context, url string) (*transport.Response, error) {
	args := g.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Response), args.Error(1)
}

type Downloader struct {
	mock.Mock
}

func (d *Downloader) Download(ctx context.Context, url, dst string) error {
	return d.Called(ctx, url, dst).Error(0)
}
