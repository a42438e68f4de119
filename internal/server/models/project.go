package models

import "time"

const DefaultProjectStatus = "completed"

// Project is a portfolio item shown on a user's board.
type Project struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Title               string    `json:"title"`
	Subtitle            string    `json:"subtitle"`
	Description         string    `json:"description"`
	DetailedDescription string    `json:"detailed_description"`
	Category            string    `json:"category"`
	ImageURL            string    `json:"image_url"`
	GalleryImages       []string  `json:"gallery_images"`
	HoverContent        string    `json:"hover_content"`
	FunFact             string    `json:"fun_fact"`
	TechStack           []string  `json:"tech_stack"`
	Features            []string  `json:"features"`
	Challenges          []string  `json:"challenges"`
	Solutions           []string  `json:"solutions"`
	LinkURL             *string   `json:"link_url"`
	GithubURL           *string   `json:"github_url"`
	DemoURL             *string   `json:"demo_url"`
	CreatedAt           time.Time `json:"created_at"`
	Duration            string    `json:"duration"`
	TeamSize            int       `json:"team_size"`
	Status              string    `json:"status"`
	Views               int64     `json:"views"`
}

// ProjectCreate is the client-supplied part of a new Project.
type ProjectCreate struct {
	Title               string   `json:"title"`
	Subtitle            string   `json:"subtitle"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailed_description"`
	Category            string   `json:"category"`
	ImageURL            string   `json:"image_url"`
	GalleryImages       []string `json:"gallery_images"`
	HoverContent        string   `json:"hover_content"`
	FunFact             string   `json:"fun_fact"`
	TechStack           []string `json:"tech_stack"`
	Features            []string `json:"features"`
	Challenges          []string `json:"challenges"`
	Solutions           []string `json:"solutions"`
	LinkURL             *string  `json:"link_url"`
	GithubURL           *string  `json:"github_url"`
	DemoURL             *string  `json:"demo_url"`
	Duration            string   `json:"duration"`
	TeamSize            int      `json:"team_size"`
	Status              string   `json:"status"`
}

// NewProject builds a Project owned by userID, filling defaults for the
// fields the input left empty.
func NewProject(id, userID string, in ProjectCreate, now time.Time) *Project {
	p := &Project{
		ID:                  id,
		UserID:              userID,
		Title:               in.Title,
		Subtitle:            in.Subtitle,
		Description:         in.Description,
		DetailedDescription: in.DetailedDescription,
		Category:            in.Category,
		ImageURL:            in.ImageURL,
		GalleryImages:       nonNil(in.GalleryImages),
		HoverContent:        in.HoverContent,
		FunFact:             in.FunFact,
		TechStack:           nonNil(in.TechStack),
		Features:            nonNil(in.Features),
		Challenges:          nonNil(in.Challenges),
		Solutions:           nonNil(in.Solutions),
		LinkURL:             in.LinkURL,
		GithubURL:           in.GithubURL,
		DemoURL:             in.DemoURL,
		CreatedAt:           now,
		Duration:            in.Duration,
		TeamSize:            in.TeamSize,
		Status:              in.Status,
	}
	if p.TeamSize <= 0 {
		p.TeamSize = 1
	}
	if p.Status == "" {
		p.Status = DefaultProjectStatus
	}
	return p
}

// Validate checks the fields every project must carry.
func (in ProjectCreate) Validate() error {
	if in.Title == "" {
		return errMissing("title")
	}
	if in.Category == "" {
		return errMissing("category")
	}
	return nil
}

// ProjectUpdate is a partial project update; nil fields are left untouched.
type ProjectUpdate struct {
	Title               *string   `json:"title,omitempty"`
	Subtitle            *string   `json:"subtitle,omitempty"`
	Description         *string   `json:"description,omitempty"`
	DetailedDescription *string   `json:"detailed_description,omitempty"`
	Category            *string   `json:"category,omitempty"`
	ImageURL            *string   `json:"image_url,omitempty"`
	GalleryImages       *[]string `json:"gallery_images,omitempty"`
	HoverContent        *string   `json:"hover_content,omitempty"`
	FunFact             *string   `json:"fun_fact,omitempty"`
	TechStack           *[]string `json:"tech_stack,omitempty"`
	Features            *[]string `json:"features,omitempty"`
	Challenges          *[]string `json:"challenges,omitempty"`
	Solutions           *[]string `json:"solutions,omitempty"`
	LinkURL             *string   `json:"link_url,omitempty"`
	GithubURL           *string   `json:"github_url,omitempty"`
	DemoURL             *string   `json:"demo_url,omitempty"`
	Duration            *string   `json:"duration,omitempty"`
	TeamSize            *int      `json:"team_size,omitempty"`
	Status              *string   `json:"status,omitempty"`
}

// Apply copies the set fields onto p.
func (u ProjectUpdate) Apply(p *Project) {
	setString(&p.Title, u.Title)
	setString(&p.Subtitle, u.Subtitle)
	setString(&p.Description, u.Description)
	setString(&p.DetailedDescription, u.DetailedDescription)
	setString(&p.Category, u.Category)
	setString(&p.ImageURL, u.ImageURL)
	setList(&p.GalleryImages, u.GalleryImages)
	setString(&p.HoverContent, u.HoverContent)
	setString(&p.FunFact, u.FunFact)
	setList(&p.TechStack, u.TechStack)
	setList(&p.Features, u.Features)
	setList(&p.Challenges, u.Challenges)
	setList(&p.Solutions, u.Solutions)
	if u.LinkURL != nil {
		p.LinkURL = u.LinkURL
	}
	if u.GithubURL != nil {
		p.GithubURL = u.GithubURL
	}
	if u.DemoURL != nil {
		p.DemoURL = u.DemoURL
	}
	setString(&p.Duration, u.Duration)
	if u.TeamSize != nil {
		p.TeamSize = *u.TeamSize
	}
	setString(&p.Status, u.Status)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *[]string, v *[]string) {
	if v != nil {
		*dst = nonNil(*v)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
