package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	goslots "github.com/goliatone/go-slots"
	"github.com/goliatone/go-slots/pkg/engine"
)

func main() {
	templates := flag.String("templates", "", "directory of component templates")
	configPath := flag.String("config", "", "engine configuration file, JSON or YAML")
	name := flag.String("component", "", "component to render")
	page := flag.String("page", "", "page template file to render instead of a component")
	dataArg := flag.String("data", "{}", "render data, an inline JSON object or a JSON/YAML file path")
	behavior := flag.String("behavior", "", "context behavior: default or isolated")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "pick the component and data interactively")
	listOnly := flag.Bool("list", false, "list loaded components and exit")
	verbose := flag.Bool("verbose", false, "log slot and fill traffic")
	flag.Parse()

	eng, err := buildEngine(*configPath, *templates, *behavior, *verbose)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	if *listOnly {
		for _, component := range eng.Components() {
			fmt.Println(component)
		}
		return
	}

	component := strings.TrimSpace(*name)
	data, err := parseData(*dataArg)
	if err != nil {
		log.Fatalf("Invalid -data: %v", err)
	}

	if *interactive {
		component, data, err = promptRender(eng.Components(), data)
		if errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
	}

	var html string
	switch {
	case *page != "":
		html, err = renderPage(eng, *page, data)
	case component != "":
		html, err = eng.RenderHTML(component, data)
	default:
		log.Fatalf("Nothing to render: pass -component, -page, or -interactive")
	}
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Rendered to %s\n", *output)
	} else {
		fmt.Println(html)
	}
}

func buildEngine(configPath, templates, behavior string, verbose bool) (*goslots.Engine, error) {
	var options []goslots.Option
	if templates != "" {
		options = append(options, goslots.WithTemplatesDir(templates))
	}
	if behavior != "" {
		parsed, err := goslots.ParseBehavior(behavior)
		if err != nil {
			return nil, err
		}
		options = append(options, goslots.WithContextBehavior(parsed))
	}
	if verbose {
		logger := logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		options = append(options, engine.WithTraceLogger(logger))
	}

	if configPath != "" {
		return goslots.NewFromConfig(configPath, options...)
	}
	return goslots.New(options...)
}

// parseData accepts an inline JSON object or the path of a JSON or YAML file.
func parseData(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "{") {
		return loadDataFile(raw)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func loadDataFile(path string) (map[string]any, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(contents, &data); err == nil {
		return data, nil
	}
	if err := yaml.Unmarshal(contents, &data); err == nil {
		return data, nil
	}
	return nil, fmt.Errorf("%s is not a JSON or YAML object", path)
}

func renderPage(eng *goslots.Engine, path string, data map[string]any) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := eng.RenderString(&buf, string(source), data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
