// Package redisstore implements the record store contract on Redis, for
// deployments that keep their data local instead of on the hosted platform.
//
// Layout: every record lives as a JSON string under "{collection}:{id}",
// the collection's member ids live in the set "{collection}:ids", and ids
// are assigned from the counter "{collection}:next_id".
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/trezcool/classtrack/core"
)

type Store struct {
	client *redis.Client
}

var _ core.RecordStore = (*Store)(nil)

func Open(conf *core.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func recordKey(collection string, id int) string { return fmt.Sprintf("%s:%d", collection, id) }
func idsKey(collection string) string            { return collection + ":ids" }
func nextIDKey(collection string) string         { return collection + ":next_id" }

func (s *Store) load(ctx context.Context, collection string, id int) (core.Record, error) {
	raw, err := s.client.Get(ctx, recordKey(collection, id)).Result()
	if err != nil {
		return nil, err
	}
	var rec core.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) save(ctx context.Context, collection string, id int, rec core.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, idsKey(collection), id)
	pipe.Set(ctx, recordKey(collection, id), raw, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) Fetch(ctx context.Context, collection string, q core.RecordQuery) (core.FetchResult, error) {
	members, err := s.client.SMembers(ctx, idsKey(collection)).Result()
	if err != nil {
		return core.FetchResult{}, fmt.Errorf("listing %s ids: %w", collection, err)
	}

	records := make([]core.Record, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		rec, err := s.load(ctx, collection, id)
		if err != nil {
			if err == redis.Nil { // id set out of sync with records, skip
				continue
			}
			return core.FetchResult{}, fmt.Errorf("loading %s record %d: %w", collection, id, err)
		}
		if q.Matches(rec) {
			records = append(records, rec)
		}
	}
	return core.FetchResult{Success: true, Data: records}, nil
}

func (s *Store) GetByID(ctx context.Context, collection string, id int, _ core.RecordQuery) (core.GetResult, error) {
	rec, err := s.load(ctx, collection, id)
	if err != nil {
		if err == redis.Nil {
			return core.GetResult{Message: fmt.Sprintf("record %d does not exist", id)}, nil
		}
		return core.GetResult{}, fmt.Errorf("loading %s record %d: %w", collection, id, err)
	}
	return core.GetResult{Success: true, Data: rec}, nil
}

func (s *Store) Create(ctx context.Context, collection string, records ...core.Record) (core.WriteResult, error) {
	results := make([]core.RecordResult, 0, len(records))
	for _, rec := range records {
		id, err := s.client.Incr(ctx, nextIDKey(collection)).Result()
		if err != nil {
			return core.WriteResult{}, fmt.Errorf("assigning %s id: %w", collection, err)
		}
		saved := make(core.Record, len(rec)+1)
		for field, val := range rec {
			saved[field] = val
		}
		saved[core.FieldID] = int(id)
		if err := s.save(ctx, collection, int(id), saved); err != nil {
			results = append(results, core.RecordResult{Message: err.Error()})
			continue
		}
		results = append(results, core.RecordResult{Success: true, Data: saved})
	}
	return core.WriteResult{Success: true, Results: results}, nil
}

func (s *Store) Update(ctx context.Context, collection string, records ...core.Record) (core.WriteResult, error) {
	results := make([]core.RecordResult, 0, len(records))
	for _, rec := range records {
		id, err := rec.ID()
		if err != nil {
			results = append(results, core.RecordResult{Message: "record carries no id"})
			continue
		}
		orig, err := s.load(ctx, collection, id)
		if err != nil {
			if err == redis.Nil {
				results = append(results, core.RecordResult{Message: fmt.Sprintf("record %d does not exist", id)})
				continue
			}
			return core.WriteResult{}, fmt.Errorf("loading %s record %d: %w", collection, id, err)
		}
		// only overwrite provided fields
		for field, val := range rec {
			orig[field] = val
		}
		if err := s.save(ctx, collection, id, orig); err != nil {
			results = append(results, core.RecordResult{Message: err.Error()})
			continue
		}
		results = append(results, core.RecordResult{Success: true, Data: orig})
	}
	return core.WriteResult{Success: true, Results: results}, nil
}

func (s *Store) Delete(ctx context.Context, collection string, ids ...int) (core.DeleteResult, error) {
	results := make([]core.RecordResult, 0, len(ids))
	for _, id := range ids {
		removed, err := s.client.SRem(ctx, idsKey(collection), id).Result()
		if err != nil {
			return core.DeleteResult{}, fmt.Errorf("deleting %s record %d: %w", collection, id, err)
		}
		if removed == 0 {
			results = append(results, core.RecordResult{Message: fmt.Sprintf("record %d does not exist", id)})
			continue
		}
		if err := s.client.Del(ctx, recordKey(collection, id)).Err(); err != nil {
			return core.DeleteResult{}, fmt.Errorf("deleting %s record %d: %w", collection, id, err)
		}
		results = append(results, core.RecordResult{Success: true})
	}
	return core.DeleteResult{Success: true, Results: results}, nil
}
