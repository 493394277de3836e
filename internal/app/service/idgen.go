package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	IDStrategyTimestamp = "timestamp"
	IDStrategyUUID      = "uuid"
)

// IDGenerator produces identifiers for new products
type IDGenerator interface {
	NewID() string
}

// TimestampIDs derives IDs from the creation time in milliseconds. Two
// products created within the same millisecond get the same ID.
type TimestampIDs struct {
	Now func() time.Time
}

func (g TimestampIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10)
}

// UUIDIDs generates random v4 UUIDs
type UUIDIDs struct{}

func (UUIDIDs) NewID() string {
	return uuid.New().String()
}

// NewIDGenerator returns the generator for the configured strategy
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", IDStrategyTimestamp:
		return TimestampIDs{}, nil
	case IDStrategyUUID:
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown product id strategy %q", strategy)
	}
}
