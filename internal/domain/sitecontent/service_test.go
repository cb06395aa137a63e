package sitecontent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitzone/internal/database/dbtest"
	"fitzone/internal/pkg/cache"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := dbtest.Open(t, &TeamMember{}, &Testimonial{})
	return NewService(NewRepository[TeamMember](db), NewRepository[Testimonial](db), cache.NewMemory(), time.Minute, nil)
}

func boolPtr(v bool) *bool { return &v }

func TestTeam_OrderAndActiveOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTeamMember(ctx, TeamMemberRequest{Name: "Ravi", Role: "Coach", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = svc.CreateTeamMember(ctx, TeamMemberRequest{Name: "Asha", Role: "Founder", DisplayOrder: 1,
		SocialLinks: map[string]string{"instagram": "https://instagram.com/asha"}})
	require.NoError(t, err)
	_, err = svc.CreateTeamMember(ctx, TeamMemberRequest{Name: "Old", Role: "Coach", IsActive: boolPtr(false)})
	require.NoError(t, err)

	team, err := svc.Team(ctx)
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, "Asha", team[0].Name)
	assert.Equal(t, "https://instagram.com/asha", team[0].SocialLinks.Data()["instagram"])

	all, err := svc.AllTeam(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTeam_CacheInvalidatedOnWrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.CreateTeamMember(ctx, TeamMemberRequest{Name: "Asha", Role: "Founder"})
	require.NoError(t, err)

	team, err := svc.Team(ctx)
	require.NoError(t, err)
	require.Len(t, team, 1)

	_, err = svc.UpdateTeamMember(ctx, m.ID, TeamMemberRequest{Name: "Asha K", Role: "Founder"})
	require.NoError(t, err)
	team, err = svc.Team(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", team[0].Name)

	require.NoError(t, svc.DeleteTeamMember(ctx, m.ID))
	team, err = svc.Team(ctx)
	require.NoError(t, err)
	assert.Empty(t, team)

	assert.ErrorIs(t, svc.DeleteTeamMember(ctx, m.ID), ErrNotFound)
}

func TestTestimonials_CRUD(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tm, err := svc.CreateTestimonial(ctx, TestimonialRequest{Name: "Neha", Content: " Great trainers ", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "Great trainers", tm.Content)

	list, err := svc.Testimonials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.UpdateTestimonial(ctx, tm.ID, TestimonialRequest{Name: "Neha", Content: "Hidden", Rating: 4, IsActive: boolPtr(false)})
	require.NoError(t, err)
	list, err = svc.Testimonials(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.UpdateTestimonial(ctx, 999, TestimonialRequest{Name: "x", Content: "y", Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}
