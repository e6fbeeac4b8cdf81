// Package storage archives completed run reports to Redis.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"soulbench/internal/report"
)

// Client is the subset of the Redis API the archive uses.
type Client interface {
	Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SAdd(key string, members ...interface{}) *redis.IntCmd
	Get(key string) *redis.StringCmd
	SMembers(key string) *redis.StringSliceCmd
}

type Redis struct {
	r Client
}

func NewRedis(r Client) *Redis {
	return &Redis{
		r: r,
	}
}

// SaveRun stores the report under its run ID and indexes the ID.
func (s *Redis) SaveRun(rep *report.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return errors.Wrap(err, "error marshalling report")
	}

	_, err = s.r.Set(fmt.Sprintf("RUN_%s", rep.RunID), string(data), 0).Result()
	if err != nil {
		return errors.Wrap(err, "error saving report")
	}

	_, err = s.r.SAdd("RUNS", rep.RunID).Result()
	if err != nil {
		return errors.Wrap(err, "error indexing run id")
	}

	return nil
}

// GetRun loads an archived report by run ID.
func (s *Redis) GetRun(runID string) (*report.Report, error) {
	data, err := s.r.Get(fmt.Sprintf("RUN_%s", runID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "error loading report")
	}

	var rep report.Report
	if err := json.Unmarshal([]byte(data), &rep); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling report")
	}

	return &rep, nil
}

// ListRuns returns the archived run IDs.
func (s *Redis) ListRuns() ([]string, error) {
	ids, err := s.r.SMembers("RUNS").Result()
	if err != nil {
		return nil, errors.Wrap(err, "error listing runs")
	}
	return ids, nil
}
