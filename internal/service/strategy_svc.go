package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/orbitx-mcn/orbitx-go/internal/metrics"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

// Strategy sources reported in Strategy.Source.
const (
	SourceGemini = "gemini"
)

const strategyTimeout = 20 * time.Second

// StrategyGenerator produces content suggestions for a channel.
type StrategyGenerator interface {
	Generate(ctx context.Context, req model.StrategyRequest) (*model.Strategy, error)
}

// --- Mock ---

// MockStrategist fills fixed templates with the request fields.
type MockStrategist struct {
	Now func() time.Time
}

func (m MockStrategist) Generate(_ context.Context, req model.StrategyRequest) (*model.Strategy, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	year := now().Year()
	topic, niche, channel := req.Topic, req.Niche, req.ChannelName
	if channel == "" {
		channel = "Your Channel"
	}

	return &model.Strategy{
		TitleIdeas: []string{
			fmt.Sprintf("Why %s is Changing the Industry Forever", topic),
			fmt.Sprintf("I Tried %s for 7 Days (Shocking Results)", topic),
			fmt.Sprintf("The Ultimate Guide to %s in %d", niche, year),
			fmt.Sprintf("Stop Doing This With %s!", topic),
			fmt.Sprintf("%s Special: The Truth About %s", channel, topic),
		},
		DescriptionOptimization: fmt.Sprintf(
			"To optimize for %q, ensure your first two lines explicitly state the value proposition. "+
				"Include the phrase %q naturally in the first sentence. Add timestamps for key moments "+
				"(Intro, %s Explained, Final Verdict) to improve retention. Use bullet points for key takeaways.",
			topic, topic, topic),
		Tags: []string{
			topic, niche, fmt.Sprintf("%d trends", year), "tutorial", "review",
			"how to", "best tips", "viral", niche + " guide", "explained",
		},
		ContentGaps: []string{
			fmt.Sprintf("Advanced tutorials for %s that go beyond basics", topic),
			fmt.Sprintf("Budget-friendly alternatives in the %s space", niche),
			fmt.Sprintf("Real-world case studies involving %s", topic),
		},
		Source: model.SourceMock,
	}, nil
}

// --- Gemini ---

// GeminiStrategist asks a Gemini model for a JSON strategy matching
// strategySchema.
type GeminiStrategist struct {
	client *genai.Client
	model  string
}

func NewGeminiStrategist(ctx context.Context, apiKey, modelName string) (*GeminiStrategist, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiStrategist{client: client, model: modelName}, nil
}

var strategySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"titleIdeas":              {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"descriptionOptimization": {Type: genai.TypeString},
		"tags":                    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"contentGaps":             {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"titleIdeas", "descriptionOptimization", "tags", "contentGaps"},
}

func (g *GeminiStrategist) Generate(ctx context.Context, req model.StrategyRequest) (*model.Strategy, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(strategyPrompt(req)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   strategySchema,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return parseStrategy(resp.Text())
}

func strategyPrompt(req model.StrategyRequest) string {
	return fmt.Sprintf(`You are an expert YouTube content strategist for the OrbitX MCN network.
Analyze the following context and provide actionable advice.

Channel Name: %s
Niche: %s
Recent Focus Topic: %s

Provide:
1. 5 viral title ideas suitable for this niche.
2. A brief paragraph on how to optimize the video description for SEO.
3. 10 high-traffic tags or keywords.
4. 3 content gaps or underserved topics in this niche right now.`,
		req.ChannelName, req.Niche, req.Topic)
}

// parseStrategy decodes the model's JSON reply. An empty reply or one without
// any title ideas is an error so the caller falls back to the mock.
func parseStrategy(text string) (*model.Strategy, error) {
	if text == "" {
		return nil, errors.New("gemini returned an empty response")
	}
	var s model.Strategy
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(s.TitleIdeas) == 0 {
		return nil, errors.New("gemini response has no title ideas")
	}
	s.Source = SourceGemini
	return &s, nil
}

// --- Fallback ---

// FallbackStrategist calls the primary generator through a circuit breaker
// and answers from MockStrategist on any failure. Generate never errors.
type FallbackStrategist struct {
	primary StrategyGenerator
	mock    MockStrategist
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

// NewFallbackStrategist wraps primary. A nil primary means mock-only operation.
func NewFallbackStrategist(primary StrategyGenerator, logger zerolog.Logger) *FallbackStrategist {
	return &FallbackStrategist{
		primary: primary,
		breaker: newBreaker("gemini-strategy"),
		logger:  logger,
	}
}

func (f *FallbackStrategist) Generate(ctx context.Context, req model.StrategyRequest) (*model.Strategy, error) {
	if f.primary == nil {
		return f.mock.Generate(ctx, req)
	}

	res, err := f.breaker.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, strategyTimeout)
		defer cancel()
		return f.primary.Generate(ctx, req)
	})
	s, _ := res.(*model.Strategy)
	if err != nil || s == nil {
		metrics.CollaboratorFallbacks.WithLabelValues("gemini").Inc()
		f.logger.Warn().Err(err).Msg("strategy generation failed, returning mock strategy")
		return f.mock.Generate(ctx, req)
	}
	return s, nil
}
