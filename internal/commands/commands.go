package commands

import (
	"context"
	"encoding/json"

	"github.com/pierre-app/pierre-desktop/internal/ipc"
	"github.com/pierre-app/pierre-desktop/internal/platform"
)

// Table returns the handler table registered with the host.
func Table() ipc.HandlerTable {
	return ipc.HandlerTable{
		ipc.CommandGetPlatform: getPlatform,
	}
}

// GetPlatform reports the operating system the binary was built for.
func GetPlatform() string {
	return platform.Identifier()
}

func getPlatform(ctx context.Context, args json.RawMessage) (any, error) {
	return GetPlatform(), nil
}
