package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// backupPrefix namespaces one backup blob per user.
const backupPrefix = "lifesync_data_"

// BackupBlob is the opportunistic on-device-style copy of the data the UI
// needs before the remote subscription attaches: tasks, settings and the
// lightweight profile fields. It is overwritten, never merged, by the first
// remote snapshot.
type BackupBlob struct {
	Tasks    []*model.Task  `json:"tasks"`
	Settings model.Settings `json:"settings"`
	Profile  model.Profile  `json:"profile"`
	SavedAt  time.Time      `json:"saved_at"`
}

// BackupStore keeps the per-user backup blobs in Redis.
type BackupStore struct {
	client *redis.Client
}

func NewBackupStore(redisURL string) (*BackupStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &BackupStore{client: client}, nil
}

// Save overwrites the user's backup blob.
func (s *BackupStore) Save(ctx context.Context, userID string, blob *BackupBlob) error {
	blob.SavedAt = time.Now()
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %v", err)
	}
	if err := s.client.Set(ctx, backupPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save backup: %v", err)
	}
	return nil
}

// Load returns the user's backup blob, or nil when none exists. A corrupt
// blob is treated as missing rather than an error; it will be rewritten on
// the next snapshot.
func (s *BackupStore) Load(ctx context.Context, userID string) (*BackupBlob, error) {
	data, err := s.client.Get(ctx, backupPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load backup: %v", err)
	}

	var blob BackupBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, nil
	}
	return &blob, nil
}

// Delete removes the user's backup blob (account data deletion).
func (s *BackupStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, backupPrefix+userID).Err()
}

func (s *BackupStore) Close() error {
	return s.client.Close()
}
