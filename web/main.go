package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-implicit-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of JSON scene files (default: auto-detect)")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Implicit Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
