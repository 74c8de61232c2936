// ABOUTME: MCP tool handler implementations for the underwriting assistant
// ABOUTME: Keeps a per-process conversation history so follow-up questions have context
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rajulshakya777/AgentVerse/internal/agent"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	agent *agent.Agent

	mu      sync.Mutex
	history []models.Turn
}

// AskUnderwriter handles the ask_underwriter tool
func (h *Handlers) AskUnderwriter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	h.mu.Lock()
	history := make([]models.Turn, len(h.history))
	copy(history, h.history)
	h.mu.Unlock()

	reply, err := h.agent.Respond(ctx, question, history)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	now := time.Now()
	h.mu.Lock()
	h.history = append(h.history,
		models.Turn{Role: models.RoleBroker, Message: question, Timestamp: now},
		models.Turn{Role: models.RoleAgent, Message: reply, Timestamp: now},
	)
	h.mu.Unlock()

	return mcp.NewToolResultText(reply), nil
}

// SearchKnowledgeBase handles the search_knowledge_base tool
func (h *Handlers) SearchKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 4)
	if maxResults <= 0 {
		maxResults = 4
	}

	res, err := h.agent.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type hit struct {
		Content  string            `json:"content"`
		Metadata map[string]string `json:"metadata,omitempty"`
		Score    *float64          `json:"score,omitempty"`
	}
	out := struct {
		Hits []hit `json:"hits"`
		Weak bool  `json:"weak_context"`
	}{Weak: res.Weak}
	for i, c := range res.Chunks {
		entry := hit{Content: c.Content, Metadata: c.Metadata}
		if i < len(res.Scores) {
			s := res.Scores[i]
			entry.Score = &s
		}
		out.Hits = append(out.Hits, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// RebuildKnowledgeBase handles the rebuild_knowledge_base tool
func (h *Handlers) RebuildKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := h.agent.EnsureIndex(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index build failed: %v", err)), nil
	}
	return mcp.NewToolResultText("knowledge base ready"), nil
}
