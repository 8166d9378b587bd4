package coverletter

import (
	"strings"
	"testing"
	"time"
)

func TestComposeFullContact(t *testing.T) {
	contact := Contact{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+44 1234 567890",
		LinkedIn: "https://linkedin.com/in/ada",
		GitHub:   "https://github.com/ada",
	}
	now := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

	got := Compose(contact, "I am excited to apply.", now)

	want := "Ada Lovelace\n" +
		"ada@example.com | +44 1234 567890\n" +
		"LinkedIn: https://linkedin.com/in/ada\n" +
		"GitHub: https://github.com/ada\n" +
		"05/03/2026\n" +
		"\n" +
		"Dear Hiring Manager,\n" +
		"\n" +
		"I am excited to apply.\n" +
		"\n" +
		"Sincerely,\n" +
		"Ada Lovelace"
	if got != want {
		t.Errorf("letter mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestComposePlaceholderDefaults(t *testing.T) {
	now := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	got := Compose(Contact{}, "Body.", now)

	for _, want := range []string{
		"[Your Name]",
		"[your.email@email.com]",
		"[Your Phone Number]",
		"LinkedIn: [LinkedIn URL]",
		"GitHub: [GitHub URL]",
		"02/01/2026",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("letter missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "Sincerely,\n[Your Name]") {
		t.Errorf("letter should sign off with the placeholder name:\n%s", got)
	}
}

func TestComposeAddressNotRendered(t *testing.T) {
	contact := Contact{Name: "Ada", Address: "1 Analytical Way"}
	got := Compose(contact, "Body.", time.Now())
	if strings.Contains(got, "1 Analytical Way") {
		t.Errorf("address should not appear in the header:\n%s", got)
	}
}
