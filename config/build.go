package config

import "fmt"

const AppName = "dotnet-fetch"

var (
	// overridden by the build system
	BuildVersion = "dev"
	BuildCommit  = ""
	BuildDate    = ""
)

// UserAgent identifies requests sent to the feeds
func UserAgent() string {
	return fmt.Sprintf("%s/%s", AppName, BuildVersion)
}
