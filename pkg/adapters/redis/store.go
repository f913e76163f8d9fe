package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/flowguard/pkg/domain"
)

// farFuture is the index score of flows that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.FlowStore and ports.ReportStore using Redis.
//
// Layout (relative to the prefix):
//
//	flow:<id>    JSON document of the flow
//	status:<id>  activation status
//	report:<id>  JSON document of the latest report
//	index        ZSET of flow IDs scored by expiration
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for flows and reports.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "flowguard:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) flowKey(id string) string   { return s.prefix + "flow:" + id }
func (s *Store) statusKey(id string) string { return s.prefix + "status:" + id }
func (s *Store) reportKey(id string) string { return s.prefix + "report:" + id }
func (s *Store) indexKey() string           { return s.prefix + "index" }

// Save persists the flow. The status is only initialized (to draft) when absent.
func (s *Store) Save(ctx context.Context, flow *domain.Flow) error {
	if err := flow.CheckContract(); err != nil {
		return err
	}
	data, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("failed to marshal flow: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.flowKey(flow.ID), data, s.ttl)
	pipe.SetNX(ctx, s.statusKey(flow.ID), string(domain.StatusDraft), s.ttl)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.statusKey(flow.ID), s.ttl)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: flow.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the flow from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Flow, error) {
	val, err := s.client.Get(ctx, s.flowKey(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var flow domain.Flow
	if err := json.Unmarshal([]byte(val), &flow); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flow %s: %w", id, err)
	}
	flow.Normalize()
	return &flow, nil
}

// List returns the stored flow IDs in lexical order.
// Expired entries are lazily pruned from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired flows: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the flow, its status and its report.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.flowKey(id), s.statusKey(id), s.reportKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// SetStatus changes the activation status of a stored flow.
func (s *Store) SetStatus(ctx context.Context, id string, status domain.FlowStatus) error {
	// XX: only overwrite an existing status, i.e. an existing flow.
	ok, err := s.client.SetXX(ctx, s.statusKey(id), string(status), backend.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	if !ok {
		return domain.ErrFlowNotFound
	}
	return nil
}

// Status returns the activation status of a stored flow.
func (s *Store) Status(ctx context.Context, id string) (domain.FlowStatus, error) {
	val, err := s.client.Get(ctx, s.statusKey(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrFlowNotFound
		}
		return "", fmt.Errorf("failed to get status: %w", err)
	}
	return domain.FlowStatus(val), nil
}

// SaveReport records the latest report of a flow.
func (s *Store) SaveReport(ctx context.Context, report domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := s.client.Set(ctx, s.reportKey(report.FlowID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LatestReport returns the latest report of a flow.
func (s *Store) LatestReport(ctx context.Context, flowID string) (domain.Report, error) {
	val, err := s.client.Get(ctx, s.reportKey(flowID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Report{}, domain.ErrReportNotFound
		}
		return domain.Report{}, fmt.Errorf("failed to get report: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return domain.Report{}, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return report, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
