package coverletter

import (
	"fmt"
	"time"
)

// Contact is the applicant identity rendered into the letter header. Empty
// fields fall back to bracketed placeholders so the user can fill them in
// after download. Address is accepted for future layouts but the current
// header does not render it.
type Contact struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

func (c Contact) withDefaults() Contact {
	if c.Name == "" {
		c.Name = "[Your Name]"
	}
	if c.Email == "" {
		c.Email = "[your.email@email.com]"
	}
	if c.Phone == "" {
		c.Phone = "[Your Phone Number]"
	}
	if c.LinkedIn == "" {
		c.LinkedIn = "[LinkedIn URL]"
	}
	if c.GitHub == "" {
		c.GitHub = "[GitHub URL]"
	}
	return c
}

// Compose assembles the final letter around the model-written body: contact
// header, date, salutation, body, sign-off.
func Compose(contact Contact, body string, now time.Time) string {
	c := contact.withDefaults()
	date := now.Format("02/01/2006")
	return fmt.Sprintf("%s\n%s | %s\nLinkedIn: %s\nGitHub: %s\n%s\n\nDear Hiring Manager,\n\n%s\n\nSincerely,\n%s",
		c.Name, c.Email, c.Phone, c.LinkedIn, c.GitHub, date, body, c.Name)
}
