package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"pressroom/app/events"
	"pressroom/app/pubsub"
	"pressroom/app/repositories"
	"pressroom/app/routes"
	"pressroom/app/services"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("pressroom version %s\n", cliVersion)
	case "serve":
		// Remove the subcommand so flag parsing works correctly.
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: pressroom <command> [options]
Commands:
  help                 Display this help message.
  version              Show version information.
  serve [--addr :8080] Run the in-memory publishing service.

The store is volatile: all users, posts and comments live only as long as
the process.
`
	fmt.Println(helpText)
}

// serve wires the store, bus and services together and runs the HTTP API.
func serve() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	db, err := repositories.OpenInMemory()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	bus := pubsub.New[events.Event]()
	svc := services.New(services.Deps{
		Users:    repositories.NewBadgerUserRepository(db),
		Posts:    repositories.NewBadgerPostRepository(db),
		Comments: repositories.NewBadgerCommentRepository(db),
		Bus:      bus,
	})

	router := routes.SetupRoutes(svc, bus)

	log.Printf("Starting pressroom on %s", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
