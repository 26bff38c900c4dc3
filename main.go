package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"metromap/db"
	"metromap/export"
	"metromap/layout"
	"metromap/server"
	"metromap/suggest"
	"metromap/terminal"
)

func main() {
	// Define command line flags
	var (
		serve       = flag.Bool("serve", false, "Run the HTTP server instead of rendering")
		addr        = flag.String("addr", ":8080", "Listen address for -serve")
		interactive = flag.Bool("i", false, "Preview the map in the terminal")
		help        = flag.Bool("help", false, "Show help")

		// Export flags
		format     = flag.String("format", "svg", "Export format: json, svg, png")
		outputFile = flag.String("o", "", "Output file (default: stdout)")

		// Layout tuning flags
		lineSpacing  = flag.Float64("spacing", 0, "Parallel line spacing (0 = default)")
		cornerRadius = flag.Float64("corner", 0, "Corner rounding radius (0 = default)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [map.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A schematic transit map renderer with an octolinear layout engine.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s map.json                    # Render map as SVG to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i map.json                 # Preview map in the terminal\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o map.png map.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -serve -addr :8080          # Run the editor API server\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	cfg := layout.DefaultConfig()
	if *lineSpacing > 0 {
		cfg.LineSpacing = *lineSpacing
	}
	if *cornerRadius > 0 {
		cfg.CornerRadius = *cornerRadius
	}
	engine := layout.NewEngine(cfg)

	if *serve {
		runServer(engine, *addr)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	doc, err := export.ImportJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid map file: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := terminal.NewViewer(doc, engine).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	exporter, err := export.NewExporter(f, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := exporter.Export(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: export failed: %v\n", err)
		os.Exit(1)
	}

	if *outputFile == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*outputFile, out, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runServer opens the database and starts the HTTP API. A missing
// database is not fatal: the layout and suggestion endpoints work
// without it.
func runServer(engine *layout.Engine, addr string) {
	conn, err := db.Open()
	if err != nil {
		log.Printf("database unavailable, accounts and saved maps disabled: %v", err)
		conn = nil
	}

	srv := server.New(conn, engine, suggest.NewClient())
	log.Printf("listening on %s", addr)
	if err := srv.Router().Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
