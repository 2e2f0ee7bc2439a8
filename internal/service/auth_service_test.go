package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/infrastructure/memory"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(store.Users(), tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:    "Test.User@example.com",
		Password: "Password123",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}
	if res.User.Username != "test_user" {
		t.Fatalf("ожидался username из email, получили %q", res.User.Username)
	}

	_, err = service.Register(ctx, RegisterInput{Email: "test.user@example.com", Password: "Password123", Username: "other"})
	if err != apperror.ErrEmailTaken {
		t.Fatalf("ожидалась ошибка занятого email, получили %v", err)
	}

	loginRes, err := service.Login(ctx, LoginInput{
		Email:    "test.user@example.com",
		Password: "Password123",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("ожидался access токен")
	}

	userID, role, err := tokenManager.ParseAccess(loginRes.TokenPair.AccessToken)
	if err != nil || userID != res.User.ID || role != "user" {
		t.Fatalf("access токен разобран неверно: %v %s %v", userID, role, err)
	}

	if _, err := service.Login(ctx, LoginInput{Email: "test.user@example.com", Password: "wrong"}); err != apperror.ErrInvalidCredentials {
		t.Fatalf("ожидалась ошибка учётных данных, получили %v", err)
	}
	if _, err := service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "x"}); err != apperror.ErrInvalidCredentials {
		t.Fatalf("неизвестный email не должен раскрываться, получили %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	service := NewAuthService(memory.NewStore().Users(), NewTokenManager("a", "r", time.Minute, time.Hour))

	_, err := service.Register(context.Background(), RegisterInput{Email: "bad", Password: "Password123"})
	if !apperror.IsValidation(err) {
		t.Fatalf("ожидалась ошибка валидации email, получили %v", err)
	}
	_, err = service.Register(context.Background(), RegisterInput{Email: "ok@example.com", Password: "weak"})
	if !apperror.IsValidation(err) {
		t.Fatalf("ожидалась ошибка валидации пароля, получили %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	store := memory.NewStore()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(store.Users(), tokenManager)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		Username:     "user",
		PasswordHash: string(hash),
		IsStaff:      true,
	}
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access должен истекать раньше refresh")
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}
	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}
	if _, role, _ := tokenManager.ParseAccess(newPair.AccessToken); role != "staff" {
		t.Fatalf("ожидалась роль staff, получили %q", role)
	}

	if _, err := service.Refresh(ctx, tokenPair.AccessToken); err == nil {
		t.Fatalf("access токен не должен приниматься как refresh")
	}
}
