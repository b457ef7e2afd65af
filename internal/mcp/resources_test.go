package mcp

import (
	"context"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestResourcesStaticAndTemplated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, assistant := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	list, err := session.ListResources(ctx, &sdkmcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("list resources failed: %v", err)
	}
	if len(list.Resources) < 2 {
		t.Fatalf("expected at least 2 static resources, got %d", len(list.Resources))
	}

	templates, err := session.ListResourceTemplates(ctx, &sdkmcp.ListResourceTemplatesParams{})
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if len(templates.ResourceTemplates) < 1 {
		t.Fatalf("expected at least 1 resource template, got %d", len(templates.ResourceTemplates))
	}

	readRes, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "market://supported-symbols"})
	if err != nil {
		t.Fatalf("read symbols resource failed: %v", err)
	}
	var symbols []string
	if err := decodeResourceJSON(readRes, &symbols); err != nil {
		t.Fatalf("decode symbols failed: %v", err)
	}
	if len(symbols) == 0 {
		t.Fatal("expected supported symbols payload")
	}

	readRes, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "safety://categories"})
	if err != nil {
		t.Fatalf("read categories resource failed: %v", err)
	}
	var categories []string
	if err := decodeResourceJSON(readRes, &categories); err != nil {
		t.Fatalf("decode categories failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 moderation categories, got %d", len(categories))
	}

	readRes, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "analysis://bitcoin"})
	if err != nil {
		t.Fatalf("read analysis resource failed: %v", err)
	}
	var out analyzeCoinOutput
	if err := decodeResourceJSON(readRes, &out); err != nil {
		t.Fatalf("decode analysis failed: %v", err)
	}
	if out.Analysis == nil || out.Analysis.Symbol != "BTC" {
		t.Fatalf("expected BTC analysis, got %+v", out.Analysis)
	}
	if assistant.lastAnalyzed != "BTC" {
		t.Fatalf("expected resolved symbol BTC, got %q", assistant.lastAnalyzed)
	}
}

func TestUnknownResourceURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	_, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "charts://BTC"})
	if err == nil {
		t.Fatal("expected resource not found error for charts://BTC")
	}
}
