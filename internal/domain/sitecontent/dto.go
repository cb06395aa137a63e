package sitecontent

type TeamMemberRequest struct {
	Name         string            `json:"name" binding:"required,max=120"`
	Role         string            `json:"role" binding:"required,max=120"`
	Bio          string            `json:"bio" binding:"omitempty,max=4000"`
	ImageURL     string            `json:"image_url" binding:"omitempty,max=500"`
	SocialLinks  map[string]string `json:"social_links" binding:"omitempty,max=10"`
	DisplayOrder int               `json:"display_order"`
	IsActive     *bool             `json:"is_active"`
}

type TestimonialRequest struct {
	Name         string `json:"name" binding:"required,max=120"`
	Role         string `json:"role" binding:"omitempty,max=120"`
	Content      string `json:"content" binding:"required,max=2000"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	ImageURL     string `json:"image_url" binding:"omitempty,max=500"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func active(v *bool) bool {
	return v == nil || *v
}
