package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"inkling/core"
	"inkling/editor"
	"inkling/export"
	"inkling/llm"
	"inkling/logger"
	"inkling/preview"
	"inkling/scene"
	"inkling/tui"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive TUI mode")
		instruct    = flag.String("instruct", "", "Apply one edit instruction and exit")
		generateArg = flag.String("generate", "", "Generate a diagram from a description and exit")
		compressArg = flag.Bool("compress", false, "Include a compressed diagram overview in prompts")
		format      = flag.String("format", "", "Export format: json, mermaid")
		outputFile  = flag.String("o", "", "Output file (default: stdout / overwrite input)")
		provider    = flag.String("provider", "", "LLM provider: anthropic, openai, ollama")
		model       = flag.String("model", "", "Model name")
		apiKey      = flag.String("key", "", "API key (or INKLING_API_KEY)")
		baseURL     = flag.String("base-url", "", "API base URL override")
		verbose     = flag.Bool("v", false, "Verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [diagram.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An AI-assisted diagram editor.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i diagram.json                       # Edit in the TUI\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -generate \"login flow\" -o out.json    # Generate from scratch\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -instruct \"rename Start to Begin\" diagram.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format mermaid diagram.json          # Export to Mermaid\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	level := logger.LevelWarn
	if *verbose {
		level = logger.LevelDebug
	}
	log := logger.New(os.Stderr, level, "inkling")

	var filename string
	if args := flag.Args(); len(args) > 0 {
		filename = args[0]
	}

	elements, err := loadElements(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sc := scene.NewMemory(elements)

	// Pure export needs no model.
	if *format != "" && *instruct == "" && *generateArg == "" {
		if err := runExport(sc, *format, *outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := resolveConfig(*provider, *model, *apiKey, *baseURL)
	client, err := llm.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	session := editor.NewSession(sc, client, log)
	session.UseCompression = *compressArg

	switch {
	case *interactive || (*instruct == "" && *generateArg == ""):
		if err := tui.Run(session, sc, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case *generateArg != "":
		diff := session.Generate(context.Background(), *generateArg)
		if !diff.Success {
			fmt.Fprintf(os.Stderr, "Error: %s\n", diff.Error)
			os.Exit(1)
		}
		fmt.Println(diff.Explanation)
		if err := writeResult(sc, filename, *format, *outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case *instruct != "":
		diff := session.Edit(context.Background(), *instruct, nil)
		if !diff.Success {
			fmt.Fprintf(os.Stderr, "Error: %s\n", diff.Error)
			os.Exit(1)
		}
		fmt.Println(diff.Explanation)
		if err := writeResult(sc, filename, *format, *outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadElements reads a diagram file, tolerating a missing filename
// (new empty diagram).
func loadElements(filename string) ([]core.Element, error) {
	if filename == "" {
		return nil, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil
	}
	return scene.Load(filename)
}

// runExport prints or writes the diagram in the requested format.
func runExport(sc scene.Scene, format, outputFile string) error {
	exporter, err := export.ForFormat(format)
	if err != nil {
		return err
	}
	text, err := exporter.Export(sc.GetElements())
	if err != nil {
		return err
	}
	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(text), 0644)
	}
	fmt.Print(text)
	return nil
}

// writeResult persists the scene after a one-shot edit: to the export
// format when requested, otherwise back to the diagram file, falling
// back to an ASCII preview on stdout.
func writeResult(sc scene.Scene, filename, format, outputFile string) error {
	if format != "" {
		return runExport(sc, format, outputFile)
	}
	target := outputFile
	if target == "" {
		target = filename
	}
	if target != "" {
		return scene.Save(target, sc.GetElements())
	}
	fmt.Println(preview.Render(sc.GetElements()))
	return nil
}
