package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/Prantik123321/Chat-all/internal/app"
	"github.com/Prantik123321/Chat-all/internal/config"
	"github.com/Prantik123321/Chat-all/internal/profile"
	"github.com/Prantik123321/Chat-all/internal/tui"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	serverFlag := flag.String("server", "", "websocket server URL (overrides config)")
	nameFlag := flag.String("name", "", "display name (overrides config, persisted)")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	params, err := resolveParams(profileName, *serverFlag, *nameFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var ui *tui.App
	fxApp := fx.New(
		app.Module(params),
		fx.Populate(&ui),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	runErr := ui.Run()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancelStop()
	if err := fxApp.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveParams merges flags over config over defaults. A display name given
// on the command line is written back to the config, so the next run reuses
// it without the flag.
func resolveParams(profileName, serverOverride, nameOverride string) (app.Params, error) {
	cfg, err := config.Load(profile.ConfigPath())
	if err != nil {
		cfg = &config.Config{}
	}

	serverURL := cfg.ServerURL
	if serverOverride != "" {
		serverURL = serverOverride
	}
	if serverURL == "" {
		serverURL = config.DefaultServerURL
	}

	displayName := cfg.DisplayName
	if nameOverride != "" {
		displayName = nameOverride
		cfg.DisplayName = nameOverride
		if err := config.Save(profile.ConfigPath(), cfg); err != nil {
			return app.Params{}, fmt.Errorf("persist display name: %w", err)
		}
	}
	if displayName == "" {
		displayName = config.DefaultDisplayName
	}

	return app.Params{
		Profile:     profileName,
		ServerURL:   serverURL,
		DisplayName: displayName,
		Theme:       cfg.Theme,
	}, nil
}
