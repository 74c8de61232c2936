// ABOUTME: MCP tool definitions and registration for the underwriting assistant
// ABOUTME: Defines JSON schemas for the ask, search, and rebuild tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rajulshakya777/AgentVerse/internal/agent"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, ag *agent.Agent) *Handlers {
	handlers := &Handlers{agent: ag}

	// 1. ask_underwriter - Answer a broker question through the full pipeline
	server.AddTool(mcp.Tool{
		Name:        "ask_underwriter",
		Description: "Ask the underwriting assistant a question. Answers reference past broker chats and policy documents and include a recommended decision.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The broker's question",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskUnderwriter)

	// 2. search_knowledge_base - Raw top-k retrieval without generation
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge_base",
		Description: "Retrieve the most relevant chat and policy excerpts for a query, with similarity scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of excerpts to return (default: 4)",
					"default":     4,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledgeBase)

	// 3. rebuild_knowledge_base - Build or load the vector index now
	server.AddTool(mcp.Tool{
		Name:        "rebuild_knowledge_base",
		Description: "Ingest the chat and policy corpus and build (or load) the vector index ahead of the first question.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RebuildKnowledgeBase)

	return handlers
}
