package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/internal/modules/user/dto"
	"anoa.com/ecoinsight/internal/modules/user/repository/mock"
	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func Test_authService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, testSecret, time.Hour)

	repo.EXPECT().Ping(gomock.Any()).Return(nil)
	repo.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(nil, apperror.ErrNotFound)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
		if u.Email != "ada@example.com" || u.Name != "Ada" {
			t.Errorf("created %+v", u)
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
			t.Error("password not hashed with bcrypt")
		}
		u.ID = uuid.New()
		return nil
	})

	res, err := svc.Register(context.Background(), dto.RegisterInput{Name: " Ada ", Email: " Ada@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if res.User.EcoPoints != 0 || res.TokenType != "Bearer" || res.Message != "User registered successfully." {
		t.Errorf("unexpected response %+v", res)
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != res.User.ID.String() {
		t.Errorf("subject = %q, want %q", claims.Subject, res.User.ID)
	}
}

func Test_authService_RegisterFailures(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		setup      func(repo *mock.MockUserRepository)
		wantStatus int
		wantErr    error
	}{
		{
			name:       "store down",
			secret:     testSecret,
			setup:      func(repo *mock.MockUserRepository) { repo.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp")) },
			wantStatus: http.StatusServiceUnavailable,
			wantErr:    apperror.ErrUpstreamUnavailable,
		},
		{
			name:       "missing secret",
			secret:     "",
			setup:      func(repo *mock.MockUserRepository) { repo.EXPECT().Ping(gomock.Any()).Return(nil) },
			wantStatus: http.StatusInternalServerError,
			wantErr:    apperror.ErrConfiguration,
		},
		{
			name:   "email taken",
			secret: testSecret,
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().Ping(gomock.Any()).Return(nil)
				repo.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(&entity.User{}, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantErr:    apperror.ErrConflict,
		},
		{
			name:   "lost insert race",
			secret: testSecret,
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().Ping(gomock.Any()).Return(nil)
				repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperror.ErrConflict)
			},
			wantStatus: http.StatusBadRequest,
			wantErr:    apperror.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockUserRepository(ctrl)
			tt.setup(repo)
			svc := NewAuthService(repo, tt.secret, time.Hour)

			_, err := svc.Register(context.Background(), dto.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if got := apperror.MapErrorToStatus(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func Test_authService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	stored := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", PasswordHash: string(hash), EcoPoints: 40}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  bool
	}{
		{name: "ok", email: "ADA@example.com", password: "secret1", found: true},
		{name: "wrong password", email: "ada@example.com", password: "nope", found: true, wantErr: true},
		{name: "unknown email", email: "bob@example.com", password: "secret1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockUserRepository(ctrl)
			repo.EXPECT().Ping(gomock.Any()).Return(nil)
			if tt.found {
				repo.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(stored, nil)
			} else {
				repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrNotFound)
			}
			svc := NewAuthService(repo, testSecret, 0)

			res, err := svc.Login(context.Background(), dto.LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				if err == nil || err.Error() != "Invalid email or password." {
					t.Fatalf("Login() error = %v", err)
				}
				if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
					t.Errorf("status = %d", apperror.MapErrorToStatus(err))
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.User.EcoPoints != 40 || res.User.ID != stored.ID {
				t.Errorf("unexpected user %+v", res.User)
			}
			// default TTL is one day
			if d := time.Until(time.Unix(res.ExpiresAt, 0)); d < 23*time.Hour || d > 25*time.Hour {
				t.Errorf("token expires in %v", d)
			}
		})
	}
}
