package resolve

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odpf/dotnet-fetch/cmd/internal/logger"
	"github.com/odpf/dotnet-fetch/cmd/internal/progressbar"
)

func TestResolveCommand(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		switch r.URL.Path {
		case "/dotnet/Sdk/Current/latest.version":
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("c1a2b3\n6.0.100\n"))
		case "/dotnet/Sdk/6.0/latest.version":
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("c1a2b3\n6.0.100\n"))
		case "/dotnet/Runtime/6.0/latest.version":
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write([]byte("d4e5f6\n6.0.0\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	out := &bytes.Buffer{}
	r := &resolveCommand{
		logger:   logger.NewDefaultLogger(),
		progress: progressbar.NewProgressBarWithWriter(&bytes.Buffer{}),
	}
	cmd := r.command()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--feed", server.URL + "/dotnet", "-r", "current", "-k", "sdk,aspnet-runtime"})

	err := cmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{
		"/dotnet/Sdk/Current/latest.version",
		"/dotnet/Sdk/6.0/latest.version",
		"/dotnet/Runtime/6.0/latest.version",
	}, requests)
	var rows []string
	for _, line := range strings.Split(out.String(), "\n") {
		if !strings.Contains(line, "latest.version") {
			continue
		}
		var cells []string
		for _, cell := range strings.Fields(line) {
			if cell != "|" {
				cells = append(cells, cell)
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	assert.Equal(t, []string{
		"6.0 sdk 6.0.100 " + server.URL + "/dotnet/Sdk/6.0/latest.version",
		"6.0 aspnet-runtime 6.0.0 " + server.URL + "/dotnet/Runtime/6.0/latest.version",
	}, rows)
}
