package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gradmend/internal/application"
	"gradmend/internal/application/commands"
	"gradmend/internal/config"
	"gradmend/internal/ports"
)

// RegisterReadTools adds the read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.BuildFileStore, backups ports.BackupStore) {
	s.AddTool(statusTool(), statusHandler(store))
	s.AddTool(listBackupsTool(), listBackupsHandler(backups))
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Classify every required fragment in the build template (absent, correct, or stale) without modifying anything."),
		mcp.WithString("file",
			mcp.Description("Path to the build template. Defaults to the configured template."),
		),
		mcp.WithString("toolchain",
			mcp.Description("Toolchain generation: modern or legacy. Defaults to the configured toolchain."),
		),
	)
}

func statusHandler(store ports.BuildFileStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", config.TemplatePath())
		versions, err := application.VersionSetByName(req.GetString("toolchain", config.Toolchain()))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewStatusCommand(store, file, versions)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- list_backups ---

func listBackupsTool() mcp.Tool {
	return mcp.NewTool("list_backups",
		mcp.WithDescription("List retained pre-patch snapshots of the build template, newest first."),
		mcp.WithString("file",
			mcp.Description("Path to the build template. Defaults to the configured template."),
		),
	)
}

func listBackupsHandler(backups ports.BackupStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", config.TemplatePath())

		cmd := commands.NewListBackupsCommand(backups, file)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		text := result.Message
		for _, rec := range result.Records {
			text += fmt.Sprintf("\n%s  %s", rec.Taken.Format("2006-01-02 15:04:05"), rec.Path)
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
