package user

import "testing"

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"Jean Dupont", "Jean", "Dupont"},
		{"Jean", "Jean", ""},
		{"Jean de la Fontaine", "Jean", "de la Fontaine"},
		{"", "", ""},
	}

	for _, c := range cases {
		first, last := splitFullName(c.in)
		if first != c.first || last != c.last {
			t.Errorf("splitFullName(%q) = %q, %q, attendu %q, %q", c.in, first, last, c.first, c.last)
		}
	}
}

func TestUsernameFromEmail(t *testing.T) {
	if got := usernameFromEmail("jean.dupont@example.com"); got != "jean.dupont" {
		t.Errorf("usernameFromEmail = %q", got)
	}
	if got := usernameFromEmail("sans-arobase"); got != "sans-arobase" {
		t.Errorf("usernameFromEmail = %q", got)
	}
}

func TestGenerateRandomStateUnique(t *testing.T) {
	a := generateRandomState()
	b := generateRandomState()
	if a == "" || a == b {
		t.Error("les states OAuth doivent être aléatoires et non vides")
	}
}
