package validators

import "testing"

func TestSlugRule(t *testing.T) {
	v := New()

	type payload struct {
		Slug string `validate:"slug"`
	}

	valid := []string{"buttons", "hero-sections", "v2-cards", "a"}
	for _, s := range valid {
		if err := v.Struct(payload{Slug: s}); err != nil {
			t.Errorf("expected %q to be a valid slug: %v", s, err)
		}
	}

	invalid := []string{"", "Buttons", "hero_sections", "-lead", "trail-", "two--dashes", "with space"}
	for _, s := range invalid {
		if err := v.Struct(payload{Slug: s}); err == nil {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
