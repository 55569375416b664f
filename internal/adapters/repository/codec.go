package repository

import (
	"encoding/json"
	"fmt"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

// Collections are stored as one JSON document per entity type.

func encodeEntities(entities []*domain.Entity) ([]byte, error) {
	if entities == nil {
		entities = []*domain.Entity{}
	}
	data, err := json.Marshal(entities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entities: %w", err)
	}
	return data, nil
}

func decodeEntities(data []byte) ([]*domain.Entity, error) {
	if len(data) == 0 {
		return []*domain.Entity{}, nil
	}
	var entities []*domain.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}
	if entities == nil {
		entities = []*domain.Entity{}
	}
	return entities, nil
}
