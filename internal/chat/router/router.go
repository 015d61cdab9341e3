// internal/chat/router/router.go
package router

import (
	"context"
	"fmt"
	"strings"

	"torqueup-chat/internal/chat/directive"
	"torqueup-chat/internal/chat/filter"
	"torqueup-chat/internal/chat/prompt"
	"torqueup-chat/internal/chat/signals"
	"torqueup-chat/internal/common/logger"
	"torqueup-chat/internal/common/metrics"
	"torqueup-chat/internal/models"
	"torqueup-chat/pkg/brands"
)

const carsPayloadTitle = "Perfect Cars for You"

// Router runs one chat turn end to end: prompt assembly, completion,
// directive parsing, then recommendation building. Lookup failures on the
// recommendation path degrade the payload instead of failing the request.
type Router struct {
	config     *Config
	prompts    *prompt.Builder
	completion CompletionClient
	parts      PartsLookup
	profiles   ProfileLookup
	logger     logger.Logger
}

func New(config *Config, prompts *prompt.Builder, completion CompletionClient, parts PartsLookup, profiles ProfileLookup, log logger.Logger) *Router {
	return &Router{
		config:     config,
		prompts:    prompts,
		completion: completion,
		parts:      parts,
		profiles:   profiles,
		logger:     log,
	}
}

// Execute processes a single user message against the conversation history
// and current inventory. The returned error is fatal for the request; every
// recommendation-stage failure is absorbed and logged instead.
func (r *Router) Execute(ctx context.Context, input *Input) (*Output, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	r.logger.Info("processing chat message", map[string]interface{}{
		"history_turns":  len(input.History),
		"inventory_size": len(input.Inventory),
	})

	built := r.prompts.Build(input.Message, input.History, input.Inventory)

	raw, err := r.completion.Generate(ctx, built)
	if err != nil {
		return nil, err
	}

	text, dirs := directive.Parse(raw)

	output := &Output{Response: text}

	if dirs.Cars {
		rec, note := r.buildCarRecommendation(input)
		if note != "" {
			output.Response = strings.TrimSpace(output.Response + " " + note)
		}
		output.Recommendation = rec
	}

	if dirs.Parts {
		if rec := r.buildPartRecommendation(ctx, dirs.PartType); rec != nil {
			output.Recommendation = rec
		}
	}

	return output, nil
}

func (r *Router) buildCarRecommendation(input *Input) (*models.Recommendation, string) {
	sig := signals.Derive(input.History, input.Message)
	result := filter.Apply(input.Inventory, sig, r.config.MaxRecommendations)

	r.logger.Debug("car recommendation built", map[string]interface{}{
		"matched":  len(result.Cars),
		"fallback": result.FellBack,
	})
	metrics.RecommendationsBuilt.WithLabelValues(models.RecommendationCars).Inc()

	note := ""
	if result.UnavailableBrand != "" {
		note = fmt.Sprintf("Unfortunately, we don't have any %s vehicles in our current inventory. Would you like me to suggest similar cars from other brands?", brands.Display(result.UnavailableBrand))
	}

	return &models.Recommendation{
		Type:  models.RecommendationCars,
		Items: result.Cars,
		Title: carsPayloadTitle,
	}, note
}

func (r *Router) buildPartRecommendation(ctx context.Context, partType string) *models.Recommendation {
	parts, err := r.parts.SearchByTitle(ctx, partType, r.config.MaxRecommendations)
	if err != nil {
		r.logger.Warn("parts lookup degraded", map[string]interface{}{
			"part_type": partType,
			"error":     err.Error(),
		})
		metrics.DegradedLookups.WithLabelValues("parts").Inc()
		return nil
	}
	if len(parts) == 0 {
		r.logger.Debug("no parts matched", map[string]interface{}{
			"part_type": partType,
		})
		return nil
	}

	usernames := r.sellerUsernames(ctx, parts)
	for i := range parts {
		name, ok := usernames[parts[i].SellerID]
		if !ok || name == "" {
			name = models.UnknownSeller
		}
		parts[i].Seller = models.Seller{Username: name}
	}

	metrics.RecommendationsBuilt.WithLabelValues(models.RecommendationParts).Inc()

	return &models.Recommendation{
		Type:  models.RecommendationParts,
		Items: parts,
		Title: fmt.Sprintf("%s Parts for Your Car", capitalize(partType)),
	}
}

func (r *Router) sellerUsernames(ctx context.Context, parts []models.Part) map[string]string {
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.SellerID != "" {
			ids = append(ids, p.SellerID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	usernames, err := r.profiles.Usernames(ctx, ids)
	if err != nil {
		r.logger.Warn("seller profile lookup degraded", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.DegradedLookups.WithLabelValues("profiles").Inc()
		return nil
	}
	return usernames
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
