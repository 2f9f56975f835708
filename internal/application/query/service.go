// Package query implements the intent-resolution engine: classification,
// parameter completion, dispatch, and narration for natural language GitHub
// queries.
package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

// Service orchestrates one query end-to-end: classify, complete missing
// parameters, dispatch, record, narrate. Queries are resolved fully one at a
// time; the session is the only state carried across them.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Classifier     *Classifier
	Completer      *Completer
	Dispatcher     *Dispatcher
	Narrator       *Narrator
	Renderer       ports.Renderer
	History        ports.HistoryRepository
	Logger         ports.Logger
	Session        *domain.Session
}

// Run resolves a single natural-language query and returns its envelope.
// Failures surface inside the envelope; the returned error is reserved for
// unsatisfied wiring and config-load problems.
func (s *Service) Run(ctx context.Context, rawQuery string) (domain.ResultEnvelope, error) {
	if s.Classifier == nil || s.Completer == nil || s.Dispatcher == nil ||
		s.Renderer == nil || s.Logger == nil || s.Session == nil {
		return domain.ResultEnvelope{}, errors.New("query.Service dependencies not satisfied")
	}

	cfg := domain.Config{}
	if s.ConfigProvider != nil {
		loaded, err := s.ConfigProvider.Load(ctx)
		if err != nil {
			return domain.ResultEnvelope{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if timeout := cfg.Preferences.QueryTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	s.Renderer.Info("Processing query: " + rawQuery)

	record := s.Classifier.Classify(ctx, rawQuery, s.Session)

	if record.Intent == domain.IntentError {
		message := record.Parameters["error"]
		if message == "" {
			message = "unknown classification error"
		}
		s.Renderer.Error("Classification failed: " + message)
		envelope := domain.ErrorEnvelope(message)
		s.saveRecord(rawQuery, record, envelope, started)
		return envelope, nil
	}

	s.Renderer.Info("Detected intent: " + string(record.Intent))
	s.Session.Append(domain.RoleUser, rawQuery)

	applyDefaultUsername(&record, cfg.GitHub.Username)
	record.Parameters = s.Completer.Complete(record.Intent, record.Parameters, s.Session)

	envelope := s.Dispatcher.Dispatch(ctx, record)
	s.saveRecord(rawQuery, record, envelope, started)

	if envelope.Failed() {
		s.Renderer.Error(envelope.Err)
		return envelope, nil
	}

	s.narrate(ctx, envelope, rawQuery)
	return envelope, nil
}

func (s *Service) narrate(ctx context.Context, envelope domain.ResultEnvelope, rawQuery string) {
	if s.Narrator == nil {
		return
	}
	narration, err := s.Narrator.Narrate(ctx, envelope, rawQuery)
	if err != nil {
		s.Logger.Warn("narration failed", map[string]interface{}{"error": err.Error()})
		s.Renderer.Warn("Data was processed successfully but a narrative response could not be generated.")
		return
	}
	if narration == "" {
		return
	}
	s.Renderer.Narration(narration)
	s.Session.Append(domain.RoleAssistant, narration)
}

func (s *Service) saveRecord(rawQuery string, record domain.IntentRecord, envelope domain.ResultEnvelope, started time.Time) {
	if s.History == nil {
		return
	}
	err := s.History.Save(domain.QueryRecord{
		Timestamp:  started,
		SessionID:  s.Session.ID(),
		Query:      rawQuery,
		Intent:     string(record.Intent),
		Parameters: summarizeParams(record.Parameters),
		Key:        envelope.Key,
		Err:        envelope.Err,
		DurationMS: time.Since(started).Milliseconds(),
	})
	if err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

// applyDefaultUsername fills the username parameter from configuration so
// intents scoped to the configured account skip the interactive prompt.
func applyDefaultUsername(record *domain.IntentRecord, username string) {
	if username == "" || record.Parameters["username"] != "" {
		return
	}
	for _, spec := range record.Intent.RequiredParameters() {
		if spec.Name == "username" {
			record.Parameters["username"] = username
			return
		}
	}
}

func summarizeParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+params[key])
	}
	return strings.Join(parts, " ")
}
