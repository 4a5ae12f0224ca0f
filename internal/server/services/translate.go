package services

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	sc "github.com/akshatj27/signspeak/internal/server/config"
)

// translatePrompt is the fixed instruction sent to the LLM. The model is told
// to answer with a JSON object holding a single translated_text field.
const translatePrompt = `
    You are a language translator. I will give you a sentence in english and you have to convert it to %[1]s. Translate the given text to only %[1]s and no other language.
    The output should strictly follow the following JSON format.
    {
        "translated_text":
    }
    Sentence: %[2]s
    `

// parsingErrorText is returned verbatim when the model's answer does not
// carry the expected field. Kept as observable behavior: clients display it.
const parsingErrorText = "Parsing error!"

type TranslateService struct {
	client *openai.Client
	model  string
}

// NewTranslateService builds a client for the configured OpenAI-compatible
// chat-completion endpoint.
func NewTranslateService(cfg *sc.Config) *TranslateService {
	clientConfig := openai.DefaultConfig(cfg.LLMAPIKey)
	clientConfig.BaseURL = cfg.LLMBaseURL

	return &TranslateService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.LLMModel,
	}
}

// Translate asks the LLM to render sentence in targetLanguage and extracts
// translated_text from the first choice. A transport failure is an error; an
// answer without the field degrades to parsingErrorText.
func (s *TranslateService) Translate(ctx context.Context, sentence string, targetLanguage string) (string, error) {

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(translatePrompt, targetLanguage, sentence)},
		},
		Temperature: 0,
		TopP:        1,
	})
	if err != nil {
		return "", fmt.Errorf("llm request error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm response has no choices")
	}

	var parsed struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return parsingErrorText, nil
	}
	if parsed.TranslatedText == "" {
		return parsingErrorText, nil
	}

	return parsed.TranslatedText, nil
}
