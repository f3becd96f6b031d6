package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-lensmaker/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)

	log.Printf("Lensmaker Web Server")
	log.Printf("Stream a training run from http://localhost:%d/api/train?scene=singlet-lens", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
