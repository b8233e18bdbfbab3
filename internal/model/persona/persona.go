package persona

// Service is one line of the agency's service catalog.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Contact holds the details the assistant hands out when it cannot answer.
type Contact struct {
	Website  string `json:"website"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Persona captures the assistant identity and the facts it is grounded on.
type Persona struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Agency     string    `json:"agency"`
	Role       string    `json:"role"`
	Goal       string    `json:"goal"`
	Greeting   string    `json:"greeting"`
	Services   []Service `json:"services"`
	Contact    Contact   `json:"contact"`
	Guidelines string    `json:"guidelines"`
}

// ServiceNames lists the catalog entries without their descriptions.
func (p Persona) ServiceNames() []string {
	names := make([]string, 0, len(p.Services))
	for _, s := range p.Services {
		names = append(names, s.Name)
	}
	return names
}

// Seed returns the personas shipped with the site.
func Seed() []Persona {
	return []Persona{
		{
			ID:       "turabot",
			Name:     "TuraBot",
			Agency:   "Uptura",
			Role:     "the AI ambassador for Uptura, a elite digital agency",
			Goal:     "Your goal is to provide professional, concise, and helpful information about our services.",
			Greeting: "Hi, I'm TuraBot! Ask me anything about how Uptura can help your business grow.",
			Services: []Service{
				{Name: "Custom Web Development", Description: "Responsive, scalable, and user-friendly websites."},
				{Name: "Web Design", Description: "Visually stunning and intuitive research-backed interfaces."},
				{Name: "SEO Services", Description: "Increasing search visibility, organic traffic, and target audience reach."},
				{Name: "Mobile App Development", Description: "High-performance native and cross-platform apps."},
				{Name: "AI Consultancy", Description: "Optimizing business processes, automating workflows, and providing data-driven insights."},
				{Name: "Social Media Marketing", Description: "Enhancing engagement and reach through content strategy."},
			},
			Contact: Contact{
				Website:  "uptura.net",
				Email:    "info@uptura.net",
				Phone:    "+1 406-235-6305",
				Location: "Kalispell, Montana, US.",
			},
			Guidelines: "Always be polite, professional, and focus on how Uptura can help the user's business grow. If you don't know an answer, direct them to contact us via email or phone.",
		},
	}
}
