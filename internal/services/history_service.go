package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lotodata/megasena-backend/internal/apperrors"
	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

type historyService struct {
	results repositories.ResultRepository // nil when the store is unavailable
	logger  *zap.Logger
}

// NewHistoryService creates the stored-history reader.
func NewHistoryService(results repositories.ResultRepository, logger *zap.Logger) HistoryService {
	return &historyService{results: results, logger: logger}
}

// GetHistory lists stored entries, most recent first. Store-native values are
// rewritten to JSON-safe equivalents; if an entry still refuses to encode the
// whole response degrades to a best-effort string dump instead of failing.
func (s *historyService) GetHistory(ctx context.Context, limit int) (*models.HistoryResult, error) {
	if s.results == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.results.FindHistory(ctx, limit)
	if err != nil {
		return nil, err
	}

	cleaned := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		cleaned = append(cleaned, map[string]interface{}{
			"id":        entry.ID.Hex(),
			"url":       entry.URL,
			"conteudo":  jsonSafeValue(map[string]interface{}(entry.Conteudo)),
			"metadados": jsonSafeValue(map[string]interface{}(entry.Metadados)),
		})
	}

	if _, err := json.Marshal(cleaned); err != nil {
		serr := &apperrors.SerializationError{Err: err}
		s.logger.Warn("history payload is not JSON serializable, degrading to string dump",
			zap.Error(serr))
		return &models.HistoryResult{
			Status:     "warning",
			Mensagem:   fmt.Sprintf("emergency serialization applied: %v", err),
			Resultados: fmt.Sprintf("%v", cleaned),
		}, nil
	}

	return &models.HistoryResult{
		Status:     "success",
		Total:      len(cleaned),
		Resultados: cleaned,
	}, nil
}
