package usecase

import (
	"context"
	"errors"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type UsersService struct {
	repo    *repository.UsersRepo
	codec   *services.FieldCodec
	manager *SpaceManager
	backup  *repository.BackupStore
	db      *mongo.Database
	clock   *services.TrustedClock
}

func NewUsersService(repo *repository.UsersRepo, codec *services.FieldCodec, manager *SpaceManager, backup *repository.BackupStore, db *mongo.Database, clock *services.TrustedClock) *UsersService {
	return &UsersService{repo: repo, codec: codec, manager: manager, backup: backup, db: db, clock: clock}
}

// Register creates the account with a hashed password and an encrypted
// starter profile.
func (svc *UsersService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	if !utils.ValidatePassword(password) {
		return nil, errors.New("password must be at least 6 characters with a number and a special character")
	}

	existing, err := svc.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateID(),
		Email:     email,
		Name:      name,
		Password:  hash,
		Profile:   model.Profile{Bio: "New Member"},
		Settings:  model.DefaultSettings(),
		CreatedAt: svc.clock.Now(),
	}

	stored := *user
	svc.codec.EncryptFields(&stored.Profile, user.UserID, model.ProfileSensitiveFields...)
	if err := svc.repo.AddUser(ctx, &stored); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user with a decrypted
// profile, ready for a space to be opened.
func (svc *UsersService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := svc.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !services.ComparePasswords(user.Password, password) {
		utils.TrackAuthAttempt("failure", "login")
		return nil, errors.New("incorrect email or password")
	}

	svc.codec.DecryptFields(&user.Profile, user.UserID, model.ProfileSensitiveFields...)
	utils.TrackAuthAttempt("success", "login")
	return user, nil
}

// GetProfile returns the decrypted profile, preferring the live space cache.
func (svc *UsersService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := svc.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc.codec.DecryptFields(&user.Profile, userID, model.ProfileSensitiveFields...)
	if space, ok := svc.manager.Get(userID); ok {
		user.Settings = space.Settings()
	}
	return user, nil
}

// UpdateProfile stores new profile fields (encrypted) and optionally a new
// password, and refreshes the space cache and backup.
func (svc *UsersService) UpdateProfile(ctx context.Context, userID string, profile model.Profile, newPassword string) error {
	stored := profile
	svc.codec.EncryptFields(&stored, userID, model.ProfileSensitiveFields...)
	if err := svc.repo.UpdateProfile(ctx, userID, stored); err != nil {
		return err
	}

	if newPassword != "" {
		if !utils.ValidatePassword(newPassword) {
			return errors.New("password must be at least 6 characters with a number and a special character")
		}
		hash, err := services.HashPassword(newPassword)
		if err != nil {
			return err
		}
		if err := svc.repo.UpdatePassword(ctx, userID, hash); err != nil {
			return err
		}
	}

	if space, ok := svc.manager.Get(userID); ok {
		space.SetProfile(profile)
		svc.manager.SaveBackup(space)
		space.Notifications.Notify("Profile updated.", NotifySuccess)
	}
	return nil
}

// UpdateSettings merges the settings object and mirrors it to the backup.
func (svc *UsersService) UpdateSettings(ctx context.Context, userID string, settings model.Settings) error {
	if err := svc.repo.UpdateSettings(ctx, userID, settings); err != nil {
		return err
	}
	if space, ok := svc.manager.Get(userID); ok {
		space.SetSettings(settings)
		svc.manager.SaveBackup(space)
	}
	return nil
}

// DeleteAccountData wipes every record the user owns after the secret key
// check passes. The wrong key rejects the operation outright; nothing is
// deleted.
func (svc *UsersService) DeleteAccountData(ctx context.Context, userID, secretKey string) error {
	user, err := svc.repo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	svc.codec.DecryptFields(&user.Profile, userID, model.ProfileSensitiveFields...)

	if user.Profile.SecretKey == "" {
		return errors.New("no secret key set; configure one in your profile first")
	}
	if secretKey != user.Profile.SecretKey {
		utils.TrackError("security", "wrong_secret_key")
		return errors.New("secret key does not match; data deletion refused")
	}

	if err := repository.WipeUserData(ctx, svc.db, userID); err != nil {
		return err
	}
	if svc.backup != nil {
		if err := svc.backup.Delete(ctx, userID); err != nil {
			return err
		}
	}
	if space, ok := svc.manager.Get(userID); ok {
		space.Notifications.Notify("All account data deleted.", NotifyInfo)
	}
	return nil
}
