package description

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/yanqian/part-describer/pkg/errors"
	"github.com/yanqian/part-describer/pkg/metrics"
	"github.com/yanqian/part-describer/pkg/util"
)

const (
	defaultHistoryLimit = 5
	defaultSavedLimit   = 50

	// maxCachedTextLen bounds the keys held by the normalize cache.
	maxCachedTextLen = 512
)

// Service exposes the description editor capabilities.
type Service interface {
	Normalize(ctx context.Context, req NormalizeRequest) (NormalizeResponse, error)
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Save(ctx context.Context, req SaveRequest) ([]Entry, error)
	List(ctx context.Context, sessionID string, kind ListKind) ([]Entry, error)
	Delete(ctx context.Context, sessionID string, kind ListKind, index int) error
	EditAttributes(ctx context.Context, req AttributeEditRequest) (AttributeEditResponse, error)
}

type service struct {
	cfg      Config
	taxonomy *Taxonomy
	store    Store
	cache    *lru.Cache[string, []string]
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the description domain.
func NewService(cfg Config, store Store, logger *slog.Logger) (Service, error) {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.SavedLimit <= 0 {
		cfg.SavedLimit = defaultSavedLimit
	}
	svc := &service{
		cfg:      cfg,
		taxonomy: Fasteners(),
		store:    store,
		logger:   logger.With("component", "description.service", "family", Fasteners().Family()),
		now:      util.NowUTC,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, []string](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create normalize cache: %w", err)
		}
		svc.cache = cache
	}
	return svc, nil
}

func (s *service) Normalize(_ context.Context, req NormalizeRequest) (NormalizeResponse, error) {
	return NormalizeResponse{Descriptions: s.normalize(req.Text)}, nil
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if err := validateSession(req.SessionID); err != nil {
		return GenerateResponse{}, err
	}

	descriptions := s.normalize(req.Text)
	if len(descriptions) == 0 {
		history, err := s.List(ctx, req.SessionID, ListHistory)
		if err != nil {
			return GenerateResponse{}, err
		}
		return GenerateResponse{History: history}, nil
	}

	if err := s.push(ctx, req.SessionID, ListHistory, req.Text, s.cfg.HistoryLimit); err != nil {
		return GenerateResponse{}, err
	}
	history, err := s.List(ctx, req.SessionID, ListHistory)
	if err != nil {
		return GenerateResponse{}, err
	}

	desc := descriptions[0]
	s.logger.Debug("description generated", "session", req.SessionID, "description", desc)
	return GenerateResponse{
		Generated:   true,
		Description: desc,
		Attributes:  SplitAttributes(desc),
		History:     history,
	}, nil
}

func (s *service) Save(ctx context.Context, req SaveRequest) ([]Entry, error) {
	if err := validateSession(req.SessionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	if err := s.push(ctx, req.SessionID, ListSaved, req.Text, s.cfg.SavedLimit); err != nil {
		return nil, err
	}
	return s.List(ctx, req.SessionID, ListSaved)
}

func (s *service) List(ctx context.Context, sessionID string, kind ListKind) ([]Entry, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown list %q", kind), nil)
	}
	entries, err := s.store.List(ctx, sessionID, kind)
	metrics.SessionOperations.WithLabelValues(string(kind), "list", metrics.Status(err)).Inc()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStoreError, "failed to load "+string(kind), err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *service) Delete(ctx context.Context, sessionID string, kind ListKind, index int) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	if !kind.Valid() {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown list %q", kind), nil)
	}
	if index < 0 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "index must be non-negative", nil)
	}
	removed, err := s.store.Delete(ctx, sessionID, kind, index)
	metrics.SessionOperations.WithLabelValues(string(kind), "delete", metrics.Status(err)).Inc()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStoreError, "failed to delete from "+string(kind), err)
	}
	if !removed {
		return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("%s entry %d not found", kind, index), nil)
	}
	return nil
}

func (s *service) EditAttributes(_ context.Context, req AttributeEditRequest) (AttributeEditResponse, error) {
	var (
		desc string
		err  error
	)
	switch req.Op {
	case EditOpMove:
		desc, err = MoveAttribute(req.Description, req.Index, req.Target)
	case EditOpEdit:
		desc, err = EditAttribute(req.Description, req.Index, req.Value)
	case EditOpDelete:
		desc, err = DeleteAttribute(req.Description, req.Index)
	default:
		err = apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown op %q", req.Op), nil)
	}
	metrics.AttributeEdits.WithLabelValues(string(req.Op), metrics.Status(err)).Inc()
	if err != nil {
		return AttributeEditResponse{}, err
	}
	return AttributeEditResponse{Description: desc, Attributes: SplitAttributes(desc)}, nil
}

func (s *service) normalize(text string) []string {
	cacheable := s.cache != nil && len(text) <= maxCachedTextLen
	if cacheable {
		if cached, ok := s.cache.Get(text); ok {
			metrics.Normalizations.WithLabelValues(metrics.OutcomeCached).Inc()
			return append([]string(nil), cached...)
		}
	}
	out := s.taxonomy.Normalize(text)
	if len(out) == 0 {
		metrics.Normalizations.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return []string{}
	}
	metrics.Normalizations.WithLabelValues(metrics.OutcomeDescribed).Inc()
	if cacheable {
		s.cache.Add(text, out)
	}
	return append([]string(nil), out...)
}

func (s *service) push(ctx context.Context, sessionID string, kind ListKind, text string, limit int) error {
	entry := Entry{Text: text, CreatedAt: s.now()}
	err := s.store.Push(ctx, sessionID, kind, entry, limit)
	metrics.SessionOperations.WithLabelValues(string(kind), "push", metrics.Status(err)).Inc()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStoreError, "failed to record "+string(kind), err)
	}
	return nil
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "session id cannot be empty", nil)
	}
	return nil
}
