package sitecontent

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"fitzone/internal/pkg/cache"
	"fitzone/internal/pkg/logger"
)

const (
	teamKey         = "site:team"
	testimonialsKey = "site:testimonials"
)

type Service struct {
	team         *Repository[TeamMember]
	testimonials *Repository[Testimonial]
	cache        cache.Cache
	ttl          time.Duration
	log          logrus.FieldLogger
}

func NewService(team *Repository[TeamMember], testimonials *Repository[Testimonial], c cache.Cache, ttl time.Duration, log logrus.FieldLogger) *Service {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{
		team:         team,
		testimonials: testimonials,
		cache:        c,
		ttl:          ttl,
		log:          logger.OrDiscard(log),
	}
}

// Team returns active members, cached.
func (s *Service) Team(ctx context.Context) ([]TeamMember, error) {
	return cached(ctx, s, teamKey, func() ([]TeamMember, error) {
		return s.team.List(ctx, false)
	})
}

func (s *Service) Testimonials(ctx context.Context) ([]Testimonial, error) {
	return cached(ctx, s, testimonialsKey, func() ([]Testimonial, error) {
		return s.testimonials.List(ctx, false)
	})
}

func (s *Service) AllTeam(ctx context.Context) ([]TeamMember, error) {
	return s.team.List(ctx, true)
}

func (s *Service) AllTestimonials(ctx context.Context) ([]Testimonial, error) {
	return s.testimonials.List(ctx, true)
}

func (s *Service) CreateTeamMember(ctx context.Context, req TeamMemberRequest) (*TeamMember, error) {
	m := &TeamMember{}
	applyTeam(m, req)
	if err := s.team.Save(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx, teamKey)
	return m, nil
}

func (s *Service) UpdateTeamMember(ctx context.Context, id int64, req TeamMemberRequest) (*TeamMember, error) {
	m, err := s.team.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTeam(m, req)
	if err := s.team.Save(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx, teamKey)
	return m, nil
}

func (s *Service) DeleteTeamMember(ctx context.Context, id int64) error {
	if err := s.team.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, teamKey)
	return nil
}

func (s *Service) CreateTestimonial(ctx context.Context, req TestimonialRequest) (*Testimonial, error) {
	t := &Testimonial{}
	applyTestimonial(t, req)
	if err := s.testimonials.Save(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, testimonialsKey)
	return t, nil
}

func (s *Service) UpdateTestimonial(ctx context.Context, id int64, req TestimonialRequest) (*Testimonial, error) {
	t, err := s.testimonials.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTestimonial(t, req)
	if err := s.testimonials.Save(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, testimonialsKey)
	return t, nil
}

func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := s.testimonials.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, testimonialsKey)
	return nil
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("site content cache not invalidated")
	}
}

// cached serves key from the cache, loading and storing it on a miss.
// Cache errors only cost a database read.
func cached[T any](ctx context.Context, s *Service, key string, load func() ([]T, error)) ([]T, error) {
	var out []T
	if ok, err := s.cache.Get(ctx, key, &out); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("site content cache read failed")
	} else if ok {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	if err := s.cache.Set(ctx, key, out, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("site content cache write failed")
	}
	return out, nil
}

func applyTeam(m *TeamMember, req TeamMemberRequest) {
	m.Name = strings.TrimSpace(req.Name)
	m.Role = strings.TrimSpace(req.Role)
	m.Bio = req.Bio
	m.ImageURL = req.ImageURL
	links := req.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	m.SocialLinks = datatypes.NewJSONType(links)
	m.DisplayOrder = req.DisplayOrder
	m.IsActive = active(req.IsActive)
}

func applyTestimonial(t *Testimonial, req TestimonialRequest) {
	t.Name = strings.TrimSpace(req.Name)
	t.Role = strings.TrimSpace(req.Role)
	t.Content = strings.TrimSpace(req.Content)
	t.Rating = req.Rating
	t.ImageURL = req.ImageURL
	t.DisplayOrder = req.DisplayOrder
	t.IsActive = active(req.IsActive)
}
