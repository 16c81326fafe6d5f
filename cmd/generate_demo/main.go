// Command generate_demo writes the demo environment as a native export document,
// ready to be imported with "envport import -file".
// Usage: go run cmd/generate_demo/main.go [-out path/to/demo.json] [-openapi path/to/openapi.json]
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/mrlokans/envport/internal/config"
	"github.com/mrlokans/envport/internal/exporters"
	"github.com/mrlokans/envport/internal/migrations"
	"github.com/mrlokans/envport/internal/openapi"
	"github.com/mrlokans/envport/internal/storage"
)

const defaultDemoPath = "./demo/demo-environment.json"

func main() {
	outPath := flag.String("out", defaultDemoPath, "path of the export document to write")
	openAPIPath := flag.String("openapi", "", "also write the demo environment as OpenAPI v3 JSON to this path")
	flag.Parse()

	files := storage.NewOSFiles()
	env := migrations.NewDemoEnvironment()

	data, err := exporters.NativeSerializer{Version: config.Version}.Environment(env)
	if err != nil {
		fail("failed to serialize demo environment", err)
	}
	if err := files.WriteFile(*outPath, data); err != nil {
		fail("failed to write demo environment", err)
	}
	slog.Info("demo environment written", "path", *outPath, "routes", len(env.Routes))

	if *openAPIPath != "" {
		spec, err := openapi.NewConverter(files).ToOpenAPI(env)
		if err != nil {
			fail("failed to convert demo environment", err)
		}
		if err := files.WriteFile(*openAPIPath, spec); err != nil {
			fail("failed to write OpenAPI document", err)
		}
		slog.Info("OpenAPI document written", "path", *openAPIPath)
	}
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
