// Command csvsink is a focustrack hook that appends every recorded session
// to a CSV file. Set FOCUSTRACK_CSVSINK_FILE to choose the file; it
// defaults to sessions.csv next to the binary.
package main

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-plugin"

	hookrpc "focustrack/internal/modules/hook/adapter/out/rpc"
)

const envFile = "FOCUSTRACK_CSVSINK_FILE"

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: hookrpc.HandshakeConfig,
		Plugins:         hookrpc.PluginMap(newServer(outputPath())),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}

func outputPath() string {
	if path := os.Getenv(envFile); path != "" {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return "sessions.csv"
	}
	return filepath.Join(filepath.Dir(exe), "sessions.csv")
}
