package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/foretell/internal/history"
	"github.com/kalambet/foretell/internal/predict"
)

// NewMCPServer creates an MCP server exposing prediction tools so agents
// can draw, rate, and review fortunes over stdio.
func NewMCPServer(deps *Deps) *server.MCPServer {
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}

	s := server.NewMCPServer(
		"foretell",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("foretell generates whimsical fortune predictions with weighted random selection, themed catalogs, and a rated history."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("predict",
			mcp.WithDescription("Generate a fortune prediction and save it to history."),
			mcp.WithString("category", mcp.Description("Restrict to one category (e.g. fortune, career)")),
			mcp.WithString("theme", mcp.Description("Draw from a themed catalog (e.g. spooky, holiday, a zodiac sign)")),
			mcp.WithBoolean("smart", mcp.Description("Blend preference weights with time-of-day context")),
		),
		mcpPredict(deps),
	)

	s.AddTool(
		mcp.NewTool("rate_prediction",
			mcp.WithDescription("Rate a stored prediction from 1 (way off) to 5 (spot on)."),
			mcp.WithNumber("id", mcp.Description("Prediction id from history"), mcp.Required()),
			mcp.WithNumber("rating", mcp.Description("Rating between 1 and 5"), mcp.Required()),
		),
		mcpRatePrediction(deps),
	)

	s.AddTool(
		mcp.NewTool("pending_reminders",
			mcp.WithDescription("List unacknowledged reminders that are due today or earlier."),
		),
		mcpPendingReminders(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"history://recent",
			"Recent Predictions",
			mcp.WithResourceDescription("Last 10 stored predictions as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecent(deps),
	)

	return s
}

func mcpPredict(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := predict.Options{
			Category: req.GetString("category", ""),
			Theme:    req.GetString("theme", ""),
			Smart:    req.GetBool("smart", false),
			Save:     true,
		}

		deps.mu.Lock()
		rec, err := deps.Assembler.Predict(opts)
		deps.mu.Unlock()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to generate prediction: %v", err)), nil
		}

		b, err := json.Marshal(rec)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal prediction: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpRatePrediction(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		rating, err := req.RequireInt("rating")
		if err != nil {
			return mcpError("rating is required"), nil
		}

		deps.mu.Lock()
		err = deps.History.SetRating(id, rating)
		deps.mu.Unlock()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to rate prediction: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Rated prediction %d as %d/5", id, rating)), nil
	}
}

func mcpPendingReminders(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		asOf := deps.Clock.Now().Format("2006-01-02")
		due := deps.Reminders.Pending(asOf)
		if len(due) == 0 {
			return mcpText("[]"), nil
		}

		b, err := json.Marshal(due)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal reminders: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceRecent(deps *Deps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		records := deps.History.Load()
		if len(records) > 10 {
			records = records[len(records)-10:]
		}
		if records == nil {
			records = []history.Record{}
		}

		b, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
