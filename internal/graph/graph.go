// Package graph renders the configured route table as a DOT or Mermaid
// graph: the HTTP API fanning out to routes, each route bound to its
// Lambda function. JWT-protected routes are labeled on the API edge.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/evo-uds/infractl/internal/config"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates route graphs from the configuration.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format
}

// Generate writes the route graph for cfg to w.
func (g *Generator) Generate(cfg config.Config, w io.Writer) error {
	graph := g.buildGraph(cfg)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidLeftToRight)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(cfg config.Config) (string, error) {
	var sb strings.Builder
	if err := g.Generate(cfg, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(cfg config.Config) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "LR")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	api := graph.Node("HTTP API " + cfg.APIID)
	api.Attr("shape", "ellipse")

	for _, rt := range cfg.Routes {
		route := graph.Node("POST " + rt.Path)
		fn := graph.Node(cfg.FunctionName(rt.Function))
		fn.Attr("style", "rounded")

		edge := graph.Edge(api, route)
		if rt.Auth {
			edge.Attr("label", "JWT")
		}
		graph.Edge(route, fn)
	}

	return graph
}
