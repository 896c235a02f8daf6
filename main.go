package main

import (
	"context"
	"fmt"
	"os"

	"github.com/surajroboto/cookie-trac/internal/app"
	"github.com/surajroboto/cookie-trac/internal/browser"
	"github.com/surajroboto/cookie-trac/internal/cli"
	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/server"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStdoutLogger("cookie-trac")

	cfg := app.DefaultConfig()
	cfg.BrowserCfg.Backend = browser.Backend(args.Backend)
	cfg.BrowserCfg.Headless = args.Headless
	cfg.BrowserCfg.UserAgent = args.UserAgent
	cfg.BrowserCfg.NavTimeout = args.Timeout
	cfg.BrowserCfg.Settle = args.Settle
	cfg.BrowserCfg.SettleStrategy = browser.SettleStrategy(args.SettleStrategy)
	cfg.OutDir = args.OutDir
	cfg.ServerAddr = args.Addr

	if args.Serve {
		srv, err := server.NewServer(server.Config{
			ListenAddr: args.Addr,
			AppConfig:  cfg,
			Logger:     logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer srv.Close()

		logger.Info("api server listening", logging.Field{Key: "addr", Value: args.Addr})
		if err := srv.HTTPServer().ListenAndServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scanner, err := app.NewScanner(cfg, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := scanner.Scan(context.Background(), args.URL)
	// Tear down the browser session whether or not the scan succeeded.
	_ = scanner.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rep := result.Report
	fmt.Printf("Scanned %s\n", rep.Website)
	fmt.Printf("  cookies: %d (%d suspicious)\n", rep.TotalCookies, rep.SuspiciousCookieCount)
	fmt.Printf("  tracking requests: %d\n", len(rep.TrackingRequests))
	fmt.Printf("  report: %s\n", result.ReportPath)
}
