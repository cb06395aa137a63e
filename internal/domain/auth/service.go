package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"fitzone/internal/pkg/dberr"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/pagination"
)

type Service struct {
	users UserRepositoryInterface
	jwt   tokenIssuer
	log   logrus.FieldLogger
}

func NewService(users UserRepositoryInterface, jwt tokenIssuer, log logrus.FieldLogger) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
		log:   logger.OrDiscard(log),
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	user, err := s.createUser(ctx, &User{
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
		Phone: strings.TrimSpace(req.Phone),
		Role:  RoleMember,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("member registered")
	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issue(user)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Specialization != nil {
		user.Specialization = strings.TrimSpace(*req.Specialization)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := CheckPassword(req.CurrentPassword, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

func (s *Service) ListUsers(ctx context.Context, f UserFilter, p pagination.Params) ([]User, int64, error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, 0, ErrInvalidRole
	}
	return s.users.List(ctx, f, p)
}

func (s *Service) ListTrainers(ctx context.Context) ([]TrainerProfile, error) {
	active := true
	users, _, err := s.users.List(ctx, UserFilter{Role: RoleTrainer, IsActive: &active}, pagination.New(1, pagination.MaxLimit))
	if err != nil {
		return nil, err
	}

	out := make([]TrainerProfile, 0, len(users))
	for _, u := range users {
		out = append(out, TrainerProfile{
			ID:             u.ID,
			Name:           u.Name,
			AvatarURL:      u.AvatarURL,
			Bio:            u.Bio,
			Specialization: u.Specialization,
		})
	}
	return out, nil
}

// AdminUpdateUser changes a user's role and/or active flag.
func (s *Service) AdminUpdateUser(ctx context.Context, actorID, userID int64, req AdminUpdateUserRequest) (*User, error) {
	if actorID == userID {
		return nil, ErrCannotModifySelf
	}
	if req.Role != nil && !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"actor_id":  actorID,
		"user_id":   userID,
		"role":      user.Role,
		"is_active": user.IsActive,
	}).Info("user updated by admin")
	return user, nil
}

func (s *Service) CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*User, error) {
	return s.createUser(ctx, &User{
		Name:           strings.TrimSpace(req.Name),
		Email:          normalizeEmail(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Role:           RoleTrainer,
		Bio:            req.Bio,
		Specialization: strings.TrimSpace(req.Specialization),
	}, req.Password)
}

func (s *Service) createUser(ctx context.Context, user *User, password string) (*User, error) {
	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.IsActive = true

	if err := s.users.Create(ctx, user); err != nil {
		// concurrent registration with the same email
		if dberr.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) issue(user *User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwt.TTL().Seconds()),
	}, nil
}
