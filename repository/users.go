package repository

import (
	"context"
	"errors"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for user accounts
func GetUsersRepo(client *mongo.Client, dbName string) *UsersRepo {
	return &UsersRepo{
		MongoCollection: client.Database(dbName).Collection("users"),
	}
}

// Add a new user account into the database
func (r *UsersRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("email already registered")
		}
		utils.TrackError("database", "user_creation_failed")
		return err
	}
	return nil
}

// Finds a user account by email, nil when absent
func (r *UsersRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database", "user_fetch_failed")
		return nil, err
	}
	return &user, nil
}

// Finds a user account by id
func (r *UsersRepo) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New("user not found")
	}
	if err != nil {
		utils.TrackError("database", "user_fetch_failed")
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the stored (encrypted) profile fields
func (r *UsersRepo) UpdateProfile(ctx context.Context, userID string, profile model.Profile) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"profile": profile}})
	if err != nil {
		utils.TrackError("database", "profile_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// UpdateSettings merges the settings object on the account document
func (r *UsersRepo) UpdateSettings(ctx context.Context, userID string, settings model.Settings) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"settings": settings}})
	if err != nil {
		utils.TrackError("database", "settings_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// UpdatePassword stores a new password hash
func (r *UsersRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		utils.TrackError("database", "password_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// UpdateRefreshToken rotates the stored refresh token
func (r *UsersRepo) UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error {
	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"refresh_token": refreshToken}})
	return err
}

// WipeUserData deletes every synced document the user owns across all
// collections. The account document itself survives.
func WipeUserData(ctx context.Context, db *mongo.Database, userID string) error {
	for _, col := range []string{ColTasks, ColProofs, ColJournal, ColTodos, ColExpenses, ColChallenges} {
		timer := utils.TrackDBOperation("delete_many", col)
		_, err := db.Collection(col).DeleteMany(ctx, bson.M{"user_id": userID})
		timer.ObserveDuration()
		if err != nil {
			utils.TrackError("database", col+"_wipe_failed")
			return err
		}
	}
	return nil
}
