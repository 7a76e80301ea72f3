package main

import (
	"flag"

	"go.uber.org/fx"

	"sparkd/internal/daemon"
)

func main() {
	configFlag := flag.String("config", "", "config file path (default ~/.sparkd/config.toml)")
	socketFlag := flag.String("socket", "", "unix socket path override")
	flag.Parse()

	app := fx.New(
		daemon.Module(daemon.Params{
			ConfigPath: *configFlag,
			SocketPath: *socketFlag,
		}),
	)

	app.Run()
}
