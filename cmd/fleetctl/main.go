package main

import (
	"os"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/fleetconsole/cmd/fleetctl/app"
)

func main() {
	ctx := genericapiserver.SetupSignalContext()
	if err := app.NewFleetCtlCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
