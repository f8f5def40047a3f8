package database

import (
	"strings"
	"testing"
)

// Chaque builder passe un nombre fixe d'arguments à session.Query ; les
// statements doivent exposer exactement autant de marqueurs.
func TestUserStatementPlaceholders(t *testing.T) {
	cases := []struct {
		name string
		stmt string
		want int
	}{
		{"userIDByEmail", stmtGetUserIDByEmail, 1},
		{"userIDByUsername", stmtGetUserIDByUsername, 1},
		{"userByID", stmtGetUserByID, 1},
		{"insertUser", stmtInsertUser, 14},
		{"insertUserByEmail", stmtInsertUserByEmail, 2},
		{"insertUserByName", stmtInsertUserByName, 2},
	}

	for _, tc := range cases {
		if got := strings.Count(tc.stmt, "?"); got != tc.want {
			t.Errorf("%s : %d marqueurs, attendu %d", tc.name, got, tc.want)
		}
	}
}
