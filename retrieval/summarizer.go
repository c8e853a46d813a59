package retrieval

import (
	"context"
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/ragflow/llm"
)

// Summarizer turns raw graph output into prose suitable for a context item.
type Summarizer interface {
	Summarize(ctx context.Context, userQuery, graphAnswer string) (string, error)
}

const summaryPromptFormat = `User question: %s
Knowledge graph results: %s
Please provide a concise, readable summary of these results as they relate to the question.`

// LLMSummarizer summarizes graph answers through a completion provider,
// truncating oversized graph output to a token budget before prompting.
type LLMSummarizer struct {
	provider  llm.Provider
	encoding  *tiktoken.Tiktoken
	maxTokens int
}

// NewLLMSummarizer creates a summarizer with the given input token budget
// for the graph answer. A zero budget defaults to 6000 tokens.
func NewLLMSummarizer(provider llm.Provider, maxTokens int) (*LLMSummarizer, error) {
	if maxTokens <= 0 {
		maxTokens = 6000
	}
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load token encoding: %w", err)
	}
	return &LLMSummarizer{
		provider:  provider,
		encoding:  enc,
		maxTokens: maxTokens,
	}, nil
}

// Summarize produces a prose summary of the graph answer.
func (s *LLMSummarizer) Summarize(ctx context.Context, userQuery, graphAnswer string) (string, error) {
	graphAnswer = s.truncate(graphAnswer)
	prompt := fmt.Sprintf(summaryPromptFormat, userQuery, graphAnswer)
	return s.provider.Complete(ctx, prompt)
}

func (s *LLMSummarizer) truncate(text string) string {
	tokens := s.encoding.Encode(text, nil, nil)
	if len(tokens) <= s.maxTokens {
		return text
	}
	return s.encoding.Decode(tokens[:s.maxTokens])
}
