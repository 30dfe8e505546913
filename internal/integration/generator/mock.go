package generator

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers with the first line of the prompt context
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer via LLM")

	answer := "I do not have enough information to answer this."
	if _, after, ok := strings.Cut(prompt, "Context:\n"); ok {
		if line, _, _ := strings.Cut(strings.TrimSpace(after), "\n"); line != "" && line != "Question:" {
			answer = line
		}
	}

	ctxzap.Info(ctx, "[MOCK] answer generated", zap.Int("result_length", len(answer)))
	return answer, nil
}
