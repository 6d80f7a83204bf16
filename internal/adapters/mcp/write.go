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

// RegisterWriteTools adds the mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.BuildFileStore, backups ports.BackupStore, history ports.PatchHistory) {
	s.AddTool(patchTool(), patchHandler(store, backups, history))
	s.AddTool(restoreTool(), restoreHandler(backups))
}

// --- patch ---

func patchTool() mcp.Tool {
	return mcp.NewTool("patch",
		mcp.WithDescription("Make the build template contain exactly one current copy of every required fragment. Idempotent: a second run reports no change. Snapshots the file before any destructive edit and commits atomically."),
		mcp.WithString("file",
			mcp.Description("Path to the build template. Defaults to the configured template."),
		),
		mcp.WithString("toolchain",
			mcp.Description("Toolchain generation: modern or legacy. Defaults to the configured toolchain."),
		),
	)
}

func patchHandler(store ports.BuildFileStore, backups ports.BackupStore, history ports.PatchHistory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", config.TemplatePath())
		versions, err := application.VersionSetByName(req.GetString("toolchain", config.Toolchain()))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewPatchCommand(store, backups, history, file, versions)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		text := result.Message
		if result.Backup != nil {
			text += fmt.Sprintf("\nBackup: %s", result.Backup.Path)
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- restore ---

func restoreTool() mcp.Tool {
	return mcp.NewTool("restore",
		mcp.WithDescription("Restore the build template from a named backup. Explicit manual recovery; the patcher never restores on its own."),
		mcp.WithString("backup",
			mcp.Description("Path of the backup to restore (see list_backups)"),
			mcp.Required(),
		),
		mcp.WithString("file",
			mcp.Description("Path to the build template. Defaults to the configured template."),
		),
	)
}

func restoreHandler(backups ports.BackupStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		backupPath := req.GetString("backup", "")
		if backupPath == "" {
			return toolError(fmt.Errorf("backup is required"))
		}
		file := req.GetString("file", config.TemplatePath())

		cmd := commands.NewRestoreCommand(backups, file, backupPath)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}
