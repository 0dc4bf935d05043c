package openaiLLM

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/rag/llm"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is empty")
			return
		}
		openaiClient = &llmClient{
			client:    openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string, messageHistory []string) (string, error) {
	return c.generate(ctx, config.ModelContext, llm.BuildQueryPrompt(userQuery, matches, messageHistory))
}

func (c *llmClient) Summarize(ctx context.Context, text string) (string, error) {
	return c.generate(ctx, config.SummaryContext, llm.BuildSummaryPrompt(text))
}

func (c *llmClient) generate(ctx context.Context, systemText string, userPrompt string) (string, error) {
	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemText),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		logger.Error("OpenAI generation failed", "error", err)
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("empty model response")
	}

	answer := strings.TrimSpace(res.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("empty model response")
	}
	return answer, nil
}
