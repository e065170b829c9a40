package content

// Store is the static content supplied to the page at composition time.
type Store struct {
	profile      Profile
	projects     []Project
	testimonials []Testimonial
}

// NewStore copies the given records into an immutable Store.
func NewStore(profile Profile, projects []Project, testimonials []Testimonial) *Store {
	return &Store{
		profile:      cloneProfile(profile),
		projects:     append([]Project(nil), projects...),
		testimonials: append([]Testimonial(nil), testimonials...),
	}
}

// Projects returns the gallery entries in authored order.
func (s *Store) Projects() []Project {
	if s == nil {
		return nil
	}
	return append([]Project(nil), s.projects...)
}

// Testimonials returns the client quotes in authored order.
func (s *Store) Testimonials() []Testimonial {
	if s == nil {
		return nil
	}
	return append([]Testimonial(nil), s.testimonials...)
}

// Profile returns the studio profile.
func (s *Store) Profile() Profile {
	if s == nil {
		return Profile{}
	}
	return cloneProfile(s.profile)
}

func cloneProfile(p Profile) Profile {
	p.Contact.Social = append([]SocialLink(nil), p.Contact.Social...)
	return p
}

// Default returns the content the site ships with.
func Default() *Store {
	return NewStore(
		Profile{
			Title:   "RS 3D Renders",
			Tagline: "Freelance 3D Modeling & Rendering Services",
			Contact: ContactDetails{
				Email: "rs.email@example.com",
				Phone: "+91 98765 43210",
				Social: []SocialLink{{
					Network: "instagram",
					Handle:  "@yourpage",
					URL:     "https://instagram.com/yourpage",
				}},
			},
		},
		[]Project{
			{
				Title:       "Modern Living Room",
				Image:       "/renders/living-room.jpg",
				Description: "A photorealistic render of a modern living room design.",
			},
			{
				Title:       "Futuristic Building",
				Image:       "/renders/futuristic-building.jpg",
				Description: "3D model and render of a conceptual futuristic architecture.",
			},
			{
				Title:       "Kitchen Interior",
				Image:       "/renders/kitchen.jpg",
				Description: "Detailed 3D visualization of a minimalist kitchen.",
			},
		},
		[]Testimonial{
			{
				Name:     "Client A",
				Feedback: "Absolutely stunning work! The renders looked so real and were delivered right on time.",
			},
			{
				Name:     "Client B",
				Feedback: "RS brought our design ideas to life. Super professional and highly recommended.",
			},
		},
	)
}
