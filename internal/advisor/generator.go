// Package advisor connects the recommendation store to the generative model:
// it generates recommendation lists, runs the chat session and performs the
// initial load.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/llm"
	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
)

// GeneratorConfig holds configuration for recommendation generation.
type GeneratorConfig struct {
	ModelName   string
	Temperature float64
	MaxTokens   int
}

// DefaultGeneratorConfig returns sensible defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ModelName:   llm.DefaultGeminiModel,
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

// Generator asks the model for a fresh recommendation list.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
	logger   *zap.Logger
	newID    func() string
}

// NewGenerator creates a recommendation generator.
func NewGenerator(provider llm.Provider, config GeneratorConfig, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		config:   config,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Generate returns recommendations for the given posture context. It never
// returns an empty list: any failure yields a single error record instead.
func (g *Generator) Generate(ctx context.Context, postureContext string) []recommendation.Recommendation {
	response, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model:       g.config.ModelName,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: BuildGeneratePrompt(postureContext)}},
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
		JSON:        true,
	})
	if err != nil {
		g.logger.Warn("Recommendation generation failed", zap.Error(err))
		return []recommendation.Recommendation{g.errorRecommendation()}
	}

	recs, err := g.parseResponse(response.Content)
	if err != nil {
		g.logger.Warn("Failed to parse generated recommendations", zap.Error(err))
		return []recommendation.Recommendation{g.errorRecommendation()}
	}

	g.logger.Info("Generated recommendations",
		zap.Int("count", len(recs)),
		zap.Int("prompt_tokens", response.Usage.PromptTokens),
		zap.Int("completion_tokens", response.Usage.CompletionTokens),
	)
	return recs
}

// generatedRecommendation is the per-item shape requested from the model.
type generatedRecommendation struct {
	Title                      string `json:"title"`
	Description                string `json:"description"`
	Rationale                  string `json:"rationale"`
	ImplementationInstructions string `json:"implementationInstructions"`
	RiskLevel                  string `json:"riskLevel"`
	Effort                     string `json:"effort"`
}

// parseResponse extracts recommendations from the model's JSON array.
// Items with an unknown risk level or effort are dropped.
func (g *Generator) parseResponse(content string) ([]recommendation.Recommendation, error) {
	jsonStart := strings.Index(content, "[")
	jsonEnd := strings.LastIndex(content, "]")
	if jsonStart == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var items []generatedRecommendation
	if err := json.Unmarshal([]byte(content[jsonStart:jsonEnd+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	recs := make([]recommendation.Recommendation, 0, len(items))
	for _, item := range items {
		risk, err := recommendation.ParseRiskLevel(item.RiskLevel)
		if err != nil {
			g.logger.Debug("Skipping generated recommendation", zap.String("title", item.Title), zap.Error(err))
			continue
		}
		effort, err := recommendation.ParseEffort(item.Effort)
		if err != nil {
			g.logger.Debug("Skipping generated recommendation", zap.String("title", item.Title), zap.Error(err))
			continue
		}
		if strings.TrimSpace(item.Title) == "" {
			continue
		}

		recs = append(recs, recommendation.Recommendation{
			ID:                         g.newID(),
			Title:                      item.Title,
			Description:                item.Description,
			Rationale:                  item.Rationale,
			ImplementationInstructions: item.ImplementationInstructions,
			RiskLevel:                  risk,
			Effort:                     effort,
			Status:                     recommendation.StatusPending,
		})
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("response contained no valid recommendations")
	}
	return recs, nil
}

// errorRecommendation is shown in place of a generated list on failure.
func (g *Generator) errorRecommendation() recommendation.Recommendation {
	return recommendation.Recommendation{
		ID:                         g.newID(),
		Title:                      "Error: Could not generate recommendations",
		Description:                "There was an issue communicating with the AI model. Please check the server logs for details and try again later.",
		Rationale:                  "An API call to the generative model failed.",
		ImplementationInstructions: "No implementation instructions available due to an error.",
		RiskLevel:                  recommendation.RiskMedium,
		Effort:                     recommendation.EffortLow,
		Status:                     recommendation.StatusPending,
	}
}

// BuildGeneratePrompt constructs the recommendation prompt.
func BuildGeneratePrompt(postureContext string) string {
	return fmt.Sprintf(`You are a world-class Cloud Security AI Advisor for Palo Alto Networks products, specifically Prisma Cloud and Cortex Cloud.
Your task is to analyze the customer's situation and provide proactive, actionable recommendations to improve their security posture.

## Current Context
%s

## Instructions
Based on this context, generate a list of 5-7 security recommendations.
For each recommendation, provide a clear title, a detailed description of the action to take, the rationale behind it,
step-by-step implementation instructions, the risk level it addresses, and the estimated implementation effort.
Ensure the recommendations are specific, relevant, and follow Palo Alto Networks' best practices.
Separate implementation steps with a newline character and number them ("1. First step\n2. Second step").

Respond with a JSON array only:
[
  {
    "title": "Concise title",
    "description": "Detailed description of the recommended action",
    "rationale": "Why this recommendation is important",
    "implementationInstructions": "1. First step\n2. Second step",
    "riskLevel": "Low|Medium|High|Critical",
    "effort": "Low|Medium|High"
  }
]`, strings.TrimSpace(postureContext))
}
