package repository

import (
	"context"
	"log"
	"time"

	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocStore implements DocStore on MongoDB. Each logical sub-collection
// is a real collection filtered by user_id; change streams drive the
// snapshot subscription by re-querying the user's documents on every event.
type MongoDocStore struct {
	DB *mongo.Database
}

func GetDocStore(client *mongo.Client, dbName string) *MongoDocStore {
	return &MongoDocStore{DB: client.Database(dbName)}
}

func (s *MongoDocStore) Put(ctx context.Context, userID, collection, docID string, doc interface{}) error {
	timer := utils.TrackDBOperation("put", collection)
	defer timer.ObserveDuration()

	filter := bson.M{"_id": docID, "user_id": userID}
	opts := options.Replace().SetUpsert(true)

	_, err := s.DB.Collection(collection).ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		utils.TrackError("database", collection+"_put_failed")
		return err
	}
	return nil
}

func (s *MongoDocStore) SetMerge(ctx context.Context, userID, collection, docID string, fields map[string]interface{}) error {
	timer := utils.TrackDBOperation("merge", collection)
	defer timer.ObserveDuration()

	filter := bson.M{"_id": docID, "user_id": userID}
	set := bson.M{"user_id": userID}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.Update().SetUpsert(true)

	_, err := s.DB.Collection(collection).UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		utils.TrackError("database", collection+"_merge_failed")
		return err
	}
	return nil
}

func (s *MongoDocStore) Delete(ctx context.Context, userID, collection, docID string) error {
	timer := utils.TrackDBOperation("delete", collection)
	defer timer.ObserveDuration()

	filter := bson.M{"_id": docID, "user_id": userID}
	_, err := s.DB.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", collection+"_delete_failed")
		return err
	}
	return nil
}

func (s *MongoDocStore) Load(ctx context.Context, userID, collection string) (Snapshot, error) {
	timer := utils.TrackDBOperation("find", collection)
	defer timer.ObserveDuration()

	cursor, err := s.DB.Collection(collection).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", collection+"_find_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var snapshot Snapshot
	for cursor.Next(ctx) {
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)
		snapshot = append(snapshot, raw)
	}
	return snapshot, cursor.Err()
}

// Subscribe watches the collection's change stream and, on every event that
// could touch this user's documents, re-loads and delivers the complete
// snapshot. Delete events carry no full document, so the user filter is
// applied by the re-query rather than the stream pipeline.
func (s *MongoDocStore) Subscribe(ctx context.Context, userID, collection string, onSnapshot func(Snapshot)) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)

	stream, err := s.DB.Collection(collection).Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	// Initial snapshot on attach.
	if snap, err := s.Load(streamCtx, userID, collection); err == nil {
		onSnapshot(snap)
	} else {
		log.Printf("initial %s snapshot load failed: %v", collection, err)
	}

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			snap, err := s.Load(streamCtx, userID, collection)
			if err != nil {
				if streamCtx.Err() != nil {
					return
				}
				utils.TrackError("sync", collection+"_snapshot_load_failed")
				continue
			}
			onSnapshot(snap)
		}
	}()

	return cancel, nil
}

// SetupIndexes creates the per-user lookup indexes for all synced
// collections plus the account lookup index.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("user_id_index"),
	}

	for _, col := range []string{ColTasks, ColProofs, ColJournal, ColTodos, ColExpenses, ColChallenges, ColSessions} {
		if _, err := db.Collection(col).Indexes().CreateOne(ctx, userIndex); err != nil {
			return err
		}
	}

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		return err
	}

	log.Println("Successfully created all indexes")
	return nil
}
