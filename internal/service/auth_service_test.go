package service

import (
	"testing"
	"time"

	"calm_learning_hub/internal/config"
	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-auth-service-tests"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Name:     "quiet reader",
		Email:    "reader@example.com",
		Password: "plain-password",
		Role:     model.Learner,
	}
	require.NoError(t, svc.Register(user))

	var saved model.User
	require.NoError(t, db.Where("email = ?", "reader@example.com").First(&saved).Error)
	assert.NotEqual(t, "plain-password", saved.Password)
	assert.NotEmpty(t, saved.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first := &model.User{Name: "a", Email: "dup@example.com", Password: "password123", Role: model.Teacher}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "b", Email: "dup@example.com", Password: "password456", Role: model.Parent}
	err := svc.Register(second)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginReturnsValidToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "t", Email: "login@example.com", Password: "password123", Role: model.Teacher}
	require.NoError(t, svc.Register(user))

	token, err := svc.Login("login@example.com", "password123")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "t", Email: "login@example.com", Password: "password123", Role: model.Teacher}
	require.NoError(t, svc.Register(user))

	_, err := svc.Login("login@example.com", "wrong")
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Login("nobody@example.com", "password123")
	assert.Error(t, err)
}
