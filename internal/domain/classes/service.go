package classes

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"fitzone/internal/domain/auth"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/pagination"
	"fitzone/internal/pkg/validator"
)

type Service struct {
	classes ClassRepositoryInterface
	users   UserReader
	log     logrus.FieldLogger
}

func NewService(classes ClassRepositoryInterface, users UserReader, log logrus.FieldLogger) *Service {
	return &Service{
		classes: classes,
		users:   users,
		log:     logger.OrDiscard(log),
	}
}

func (s *Service) List(ctx context.Context, f ListFilter, p pagination.Params) ([]FitnessClass, int64, error) {
	return s.classes.List(ctx, f, p)
}

// Get returns an active class. Staff may pass includeInactive.
func (s *Service) Get(ctx context.Context, id int64, includeInactive bool) (*FitnessClass, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive && !includeInactive {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, actor Actor, req CreateClassRequest) (*FitnessClass, error) {
	trainerID := req.TrainerID
	if !actor.IsAdmin() {
		// trainers always own what they create
		trainerID = actor.UserID
	}
	if err := s.checkTrainer(ctx, trainerID); err != nil {
		return nil, err
	}

	c := &FitnessClass{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		TrainerID:   trainerID,
		DayOfWeek:   *req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		Price:       roundPrice(req.Price),
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := validateSchedule(c); err != nil {
		return nil, err
	}

	if err := s.classes.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"class_id": c.ID, "trainer_id": c.TrainerID}).Info("class created")
	return c, nil
}

func (s *Service) Update(ctx context.Context, actor Actor, id int64, req UpdateClassRequest) (*FitnessClass, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && c.TrainerID != actor.UserID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.TrainerID != nil && *req.TrainerID != c.TrainerID {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		if err := s.checkTrainer(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
		c.TrainerID = *req.TrainerID
	}
	if req.DayOfWeek != nil {
		c.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		c.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		c.EndTime = *req.EndTime
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.Price != nil {
		c.Price = roundPrice(*req.Price)
	}
	if req.ImageURL != nil {
		c.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := validateSchedule(c); err != nil {
		return nil, err
	}
	if err := s.classes.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Deactivate hides the class from the public schedule. Existing bookings
// are kept.
func (s *Service) Deactivate(ctx context.Context, actor Actor, id int64) error {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && c.TrainerID != actor.UserID {
		return ErrForbidden
	}
	c.IsActive = false
	return s.classes.Update(ctx, c)
}

func (s *Service) checkTrainer(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidTrainer
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return ErrInvalidTrainer
		}
		return err
	}
	if u.Role != auth.RoleTrainer && u.Role != auth.RoleAdmin {
		return ErrInvalidTrainer
	}
	return nil
}

func validateSchedule(c *FitnessClass) error {
	if c.DayOfWeek < 0 || c.DayOfWeek > 6 {
		return ErrInvalidSchedule
	}
	if !validator.IsClock(c.StartTime) || !validator.IsClock(c.EndTime) {
		return ErrInvalidSchedule
	}
	// zero-padded HH:MM compares lexically
	if c.EndTime <= c.StartTime {
		return ErrInvalidSchedule
	}
	if c.Capacity <= 0 {
		return ErrInvalidSchedule
	}
	return nil
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
