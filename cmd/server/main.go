// ABOUTME: Main entry point for the underwriting MCP server with stdio transport
// ABOUTME: Initializes configuration, the assistant pipeline, and MCP tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rajulshakya777/AgentVerse/internal/agent"
	"github.com/rajulshakya777/AgentVerse/internal/config"
	"github.com/rajulshakya777/AgentVerse/internal/mcp"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ag, err := agent.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize assistant: %v", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Underwriting Assistant",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, ag)

	// Start server with stdio transport
	log.Println("Underwriting MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
