package storage

import (
	"testing"
	"time"

	"github.com/go-redis/redis"

	"soulbench/internal/collector"
	"soulbench/internal/report"
)

type fakeClient struct {
	kv   map[string]string
	sets map[string][]string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		kv:   make(map[string]string),
		sets: make(map[string][]string),
	}
}

func (f *fakeClient) Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.kv[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) SAdd(key string, members ...interface{}) *redis.IntCmd {
	for _, m := range members {
		f.sets[key] = append(f.sets[key], m.(string))
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeClient) Get(key string) *redis.StringCmd {
	v, ok := f.kv[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) SMembers(key string) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(f.sets[key], nil)
}

func TestRedis_SaveAndGetRun(t *testing.T) {
	client := newFakeClient()
	s := NewRedis(client)

	rep := &report.Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Results: []collector.RunResult{
			{Label: "baseline", Souls: 500, Grade: collector.GradeExcellent},
		},
	}

	if err := s.SaveRun(rep); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RunID != "run-1" || len(got.Results) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	ids, err := s.ListRuns()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "run-1" {
		t.Errorf("expected index [run-1], got %v", ids)
	}
}

func TestRedis_GetMissingRun(t *testing.T) {
	s := NewRedis(newFakeClient())

	if _, err := s.GetRun("nope"); err == nil {
		t.Fatal("expected an error for a missing run")
	}
}
