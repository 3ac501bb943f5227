// ABOUTME: MCP resource implementations for the nutrition log.
// ABOUTME: Provides nutrition://today, nutrition://recent, and nutrition://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nutrition/internal/stats"
)

const (
	todayURI   = "nutrition://today"
	recentURI  = "nutrition://recent"
	summaryURI = "nutrition://summary"
)

func (s *Server) registerResources() {
	// nutrition://today - today's meals against the calorie target
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Nutrition",
		Description: "Meals logged today with totals, macro shares and remaining calories",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// nutrition://recent - last meals and weights
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Entries",
		Description: "Last 10 meals and last 5 weight entries",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// nutrition://summary - dashboard over the last week
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Nutrition Summary Dashboard",
		Description: "Goals, streak, weekly stats, trend and weight summary",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	day, err := s.svc.Day()
	if err != nil {
		return nil, fmt.Errorf("failed to build today report: %w", err)
	}
	return jsonResource(todayURI, day)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	meals, err := s.repo.ListMeals(nil, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	weights, err := s.repo.ListWeights(5)
	if err != nil {
		return nil, fmt.Errorf("failed to list weights: %w", err)
	}

	return jsonResource(recentURI, map[string]any{
		"meals":   meals,
		"weights": weights,
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	dash, err := s.svc.Dashboard(stats.WeekDays)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	return jsonResource(summaryURI, map[string]any{
		"generated_at": s.now().Format(time.RFC3339),
		"dashboard":    dash,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
