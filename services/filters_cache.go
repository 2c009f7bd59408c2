package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"realty/dto"
)

// The object list remembers the last filters a session used, so a page
// change repeats the current filters without the client resending them.

func SaveLastFilters(ctx context.Context, rdb *redis.Client, sessionID string, filters *dto.ObjectFilters) error {
	if rdb == nil {
		return nil
	}
	b, _ := json.Marshal(filters)
	return rdb.Set(ctx, "last_filters:"+sessionID, b, 30*time.Minute).Err()
}

func GetLastFilters(ctx context.Context, rdb *redis.Client, sessionID string) (*dto.ObjectFilters, error) {
	if rdb == nil {
		return nil, redis.Nil
	}
	val, err := rdb.Get(ctx, "last_filters:"+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var filters dto.ObjectFilters
	json.Unmarshal([]byte(val), &filters)
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, rdb *redis.Client, sessionID string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, "last_filters:"+sessionID).Err()
}

// MergeFilters fills gaps in the new filters from the previous ones.
func MergeFilters(old *dto.ObjectFilters, new *dto.ObjectFilters) *dto.ObjectFilters {
	new.ObjectTypeID = orUintPointer(new.ObjectTypeID, old.ObjectTypeID)
	new.DealTypeID = orUintPointer(new.DealTypeID, old.DealTypeID)
	new.StatusID = orUintPointer(new.StatusID, old.StatusID)
	return new
}

func orUintPointer(newVal, oldVal *uint) *uint {
	if newVal != nil {
		return newVal
	}
	return oldVal
}
