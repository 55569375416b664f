package services_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

// MockStore keeps JSON copies like a real store and counts writes.
type MockStore struct {
	data          map[domain.EntityType][]byte
	writes        int
	simulateError error
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[domain.EntityType][]byte)}
}

func (m *MockStore) ReadAll(ctx context.Context, t domain.EntityType) ([]*domain.Entity, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var out []*domain.Entity
	if raw, ok := m.data[t]; ok {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *MockStore) WriteAll(ctx context.Context, t domain.EntityType, entities []*domain.Entity) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	raw, err := json.Marshal(entities)
	if err != nil {
		return err
	}
	m.data[t] = raw
	m.writes++
	return nil
}

type isoFormatter struct{}

func (isoFormatter) FormatDate(lang string, ms int64) string {
	return lang + ":" + time.UnixMilli(ms).UTC().Format("2006-01-02")
}

func (f isoFormatter) FormatDateRange(lang string, startMs int64, spanDays int64) string {
	return f.FormatDate(lang, startMs+domain.DaysToMs(spanDays))
}

var day0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
