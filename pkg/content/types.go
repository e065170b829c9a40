package content

// Project is one gallery entry. Its identity is its position in the store.
type Project struct {
	Title       string `json:"title" yaml:"title"`
	Image       string `json:"image" yaml:"image"`
	Description string `json:"description" yaml:"description"`
}

// Testimonial is one client quote.
type Testimonial struct {
	Name     string `json:"name" yaml:"name"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

// SocialLink is a handle rendered with a link to the profile page.
type SocialLink struct {
	Network string `json:"network" yaml:"network"`
	Handle  string `json:"handle" yaml:"handle"`
	URL     string `json:"url" yaml:"url"`
}

// ContactDetails are rendered verbatim in the footer.
type ContactDetails struct {
	Email  string       `json:"email" yaml:"email"`
	Phone  string       `json:"phone" yaml:"phone"`
	Social []SocialLink `json:"social,omitempty" yaml:"social"`
}

// Profile describes the studio shown in the header and footer.
type Profile struct {
	Title   string         `json:"title" yaml:"title"`
	Tagline string         `json:"tagline" yaml:"tagline"`
	Contact ContactDetails `json:"contact" yaml:"contact"`
}
