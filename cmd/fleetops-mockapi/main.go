package main

import (
	"os"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/fleetconsole/cmd/fleetops-mockapi/app"
)

func main() {
	ctx := genericapiserver.SetupSignalContext()
	if err := app.NewMockAPICommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
