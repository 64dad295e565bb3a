package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pbxkit/click-to-call/internal/app"
	"github.com/pbxkit/click-to-call/internal/phone"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override app config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	background := flag.Bool("background", false, "run the forwarding listener without the interactive form")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		TelURI:     phone.FindTelArg(flag.Args()),
		Background: *background,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "click-to-call: %v\n", err)
		return 1
	}
	return 0
}
