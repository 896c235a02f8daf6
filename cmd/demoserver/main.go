// Command demoserver starts a fixture site for exercising the scanner.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/surajroboto/cookie-trac/internal/demoserver"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   cookie-trac Demo Server")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Serves fixture pages for scanning:")
	fmt.Println("  /       sets tracky cookies and fires beacons")
	fmt.Println("  /clean  sets one plain session cookie")
	fmt.Println()

	srv := demoserver.NewDemoServer(cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("demo server: %v", err)
	}
}
