// Package service implements the application's business rules on top of the
// repositories and the view layer.
package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/auth"
	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
	"vidtube/internal/validation"
	"vidtube/internal/view"
)

// FileUpload carries an incoming multipart file into the service layer.
type FileUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// Close releases the underlying file handle. Safe on a nil upload, so
// handlers can defer it for optional form files.
func (u *FileUpload) Close() {
	if u == nil {
		return
	}
	if c, ok := u.Reader.(io.Closer); ok {
		_ = c.Close()
	}
}

// TokenPair is the access/refresh token pair returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStorage
	views    view.Runner
	cfg      *config.Config
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *FileUpload
	Cover    *FileUpload
}

type UpdateProfileInput struct {
	UserID   uint
	FullName string
	Email    string
}

func NewUserService(
	userRepo repository.UserRepository,
	store storage.ObjectStorage,
	views view.Runner,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		store:    store,
		views:    views,
		cfg:      cfg,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Avatar == nil || in.Avatar.Reader == nil {
		return nil, models.NewValidationError("Avatar file is required")
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Username or email is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: strings.TrimSpace(in.FullName),
		Password: string(hash),
	}

	res, err := s.uploadImage(ctx, in.Avatar, "avatars")
	if err != nil {
		return nil, err
	}
	user.AvatarURL = res.URL
	user.AvatarKey = res.Key
	if in.Cover != nil {
		res, err := s.uploadImage(ctx, in.Cover, "covers")
		if err != nil {
			return nil, err
		}
		user.CoverURL = res.URL
		user.CoverKey = res.Key
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. The refresh token
// is persisted so it can be compared (and rotated) on refresh.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.User, *TokenPair, error) {
	if identifier == "" || password == "" {
		return nil, nil, models.NewValidationError("Username or email and password are required")
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, models.NewUnauthorizedError("Invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout clears the stored refresh token and revokes the presented access
// token by blacklisting its JTI until it would have expired anyway.
func (s *UserService) Logout(ctx context.Context, userID uint, jti string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return err
	}
	if rdb := cache.GetClient(); rdb != nil && jti != "" {
		rdb.Set(ctx, cache.BlacklistKey(jti), "1", cache.TokenBlacklistTTL)
	}
	return nil
}

// Refresh rotates the token pair. The presented refresh token must match the
// stored one exactly; a stale token (already rotated or cleared by logout)
// is rejected.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, models.NewValidationError("Refresh token is required")
	}

	userID, _, err := auth.ParseToken(s.cfg.RefreshSecret, refreshToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, models.NewUnauthorizedError("Refresh token has been revoked")
	}

	return s.issueTokens(ctx, userID)
}

func (s *UserService) issueTokens(ctx context.Context, userID uint) (*TokenPair, error) {
	access, _, err := auth.GenerateAccessToken(s.cfg.JWTSecret, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	refresh, err := auth.GenerateRefreshToken(s.cfg.RefreshSecret, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) GetCurrent(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetCurrent(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(fmt.Errorf("failed to hash password: %w", err))
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetCurrent(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = strings.ToLower(in.Email)
	}
	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateChannel(ctx, user.Username)
	return user, nil
}

// UpdateAvatar replaces the user's avatar image, dropping the old object from
// storage once the new one is saved.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, up *FileUpload) (*models.User, error) {
	return s.updateImage(ctx, userID, up, "avatars", func(u *models.User, res *storage.UploadResult) string {
		old := u.AvatarKey
		u.AvatarURL = res.URL
		u.AvatarKey = res.Key
		return old
	})
}

// UpdateCover replaces the user's channel cover image.
func (s *UserService) UpdateCover(ctx context.Context, userID uint, up *FileUpload) (*models.User, error) {
	return s.updateImage(ctx, userID, up, "covers", func(u *models.User, res *storage.UploadResult) string {
		old := u.CoverKey
		u.CoverURL = res.URL
		u.CoverKey = res.Key
		return old
	})
}

func (s *UserService) updateImage(ctx context.Context, userID uint, up *FileUpload, prefix string, apply func(*models.User, *storage.UploadResult) string) (*models.User, error) {
	user, err := s.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := s.uploadImage(ctx, up, prefix)
	if err != nil {
		return nil, err
	}

	oldKey := apply(user, res)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if oldKey != "" {
		_ = s.store.Delete(ctx, oldKey)
	}
	cache.InvalidateChannel(ctx, user.Username)
	return user, nil
}

func (s *UserService) uploadImage(ctx context.Context, up *FileUpload, prefix string) (*storage.UploadResult, error) {
	if up == nil || up.Reader == nil {
		return nil, models.NewValidationError("Image file is required")
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return nil, models.NewValidationError("File must be an image")
	}
	res, err := s.store.Upload(ctx, up.Reader, up.Size, up.ContentType, prefix)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return res, nil
}

// ChannelProfile returns the public channel view for a username. Anonymous
// requests are served through the cache; authenticated ones always hit the
// store so is_subscribed reflects the caller.
func (s *UserService) ChannelProfile(ctx context.Context, username string, callerID uint) (view.Row, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}

	run := func() (view.Row, error) {
		page, err := s.views.Build(ctx, view.ChannelProfileView, callerID, view.Params{
			Filters: map[string]string{"username": username},
		})
		if err != nil {
			return nil, err
		}
		return page.Items[0], nil
	}

	if callerID == 0 {
		var row view.Row
		err := cache.CacheAside(ctx, cache.ChannelKey(username), &row, cache.ChannelProfileTTL, func() error {
			fetched, err := run()
			if err != nil {
				return err
			}
			row = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return row, nil
	}

	return run()
}

// WatchHistory lists the videos the user has watched, most recent first.
func (s *UserService) WatchHistory(ctx context.Context, userID uint, p view.Params) (*view.Page, error) {
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["user"] = strconv.FormatUint(uint64(userID), 10)
	return s.views.Build(ctx, view.WatchHistoryView, userID, p)
}
