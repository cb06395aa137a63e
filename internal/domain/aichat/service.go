package aichat

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/metrics"
)

type Service struct {
	generator Generator
	log       logrus.FieldLogger
}

// NewService uses generator when non-nil and the keyword fallback
// otherwise.
func NewService(generator Generator, log logrus.FieldLogger) *Service {
	return &Service{generator: generator, log: logger.OrDiscard(log)}
}

// Reply always returns a non-empty message. Upstream failures degrade to
// the fallback.
func (s *Service) Reply(ctx context.Context, req ChatRequest) ChatReply {
	msg := strings.TrimSpace(req.Message)

	if s.generator != nil && msg != "" {
		history := req.History
		if len(history) > maxHistory {
			history = history[len(history)-maxHistory:]
		}
		text, err := s.generator.Generate(ctx, history, msg)
		switch {
		case err != nil:
			s.log.WithError(err).Warn("ai chat upstream failed, using fallback")
		case text == "":
			s.log.Warn("ai chat upstream returned no text, using fallback")
		default:
			metrics.AIChatReply(SourceAI)
			return ChatReply{Message: text, Source: SourceAI}
		}
	}

	metrics.AIChatReply(SourceFallback)
	s.log.WithField("topic", Topic(msg)).Debug("ai chat fallback reply")
	return ChatReply{Message: Fallback(msg), Source: SourceFallback}
}
