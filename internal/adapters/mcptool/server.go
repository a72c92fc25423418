// Package mcptool exposes the responder as an MCP tool.
package mcptool

import (
	"context"
	"runtime/debug"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
)

// Answerer resolves a user message to a reply.
type Answerer interface {
	Answer(ctx context.Context, message string) string
}

// NewServer creates an MCP server with a single "answer" tool.
func NewServer(answers Answerer, version string, log zerolog.Logger) *server.MCPServer {
	tool := mcp.NewTool("answer",
		mcp.WithDescription("Answers a question from the FAQ dataset, or returns a fallback reply when nothing matches"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The user's question"),
		))

	srv := server.NewMCPServer("faqbot", version, server.WithToolCapabilities(false))
	srv.AddTool(tool, Handler(answers, log))
	return srv
}

// Handler returns the tool handler. A panic while answering is logged and
// reported as the generic internal-error reply.
func Handler(answers Answerer, log zerolog.Logger) server.ToolHandlerFunc {
	log = log.With().Str("component", "mcp").Logger()

	return func(ctx context.Context, request mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		message, err := request.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("recovered from panic")
				res, err = mcp.NewToolResultText(matching.InternalErrorReply), nil
			}
		}()

		return mcp.NewToolResultText(answers.Answer(ctx, message)), nil
	}
}

// ServeStdio serves srv over standard input and output until EOF.
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}
