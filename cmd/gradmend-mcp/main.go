package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gradmend/internal/adapters/filesystem"
	mcpadapter "gradmend/internal/adapters/mcp"
	"gradmend/internal/adapters/sqlite"
	"gradmend/internal/config"
)

func main() {
	templateFlag := flag.String("template", config.TemplatePath(), "path to the build template")
	flag.Parse()

	store := filesystem.NewStore()
	backups := filesystem.NewBackupStore(config.BackupKeep())

	history := sqlite.NewHistory()
	if err := history.Open(*templateFlag); err != nil {
		log.Fatalf("gradmend-mcp: %v", err)
	}
	defer history.Close()

	mcpServer := server.NewMCPServer(
		"gradmend-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check that returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store, backups)
	mcpadapter.RegisterWriteTools(mcpServer, store, backups, history)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("gradmend-mcp: %v", err)
	}
}
