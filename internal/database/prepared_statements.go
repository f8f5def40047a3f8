package database

import "github.com/gocql/gocql"

// Requêtes fréquentes du keyspace users. gocql prépare chaque statement côté
// serveur à la première exécution et le met en cache ensuite ; on construit
// donc une gocql.Query neuve par appel. Un *gocql.Query lié ne doit jamais
// être partagé entre goroutines : Bind modifie le receveur.
const (
	stmtGetUserIDByEmail    = "SELECT user_id FROM users_by_email WHERE email = ?"
	stmtGetUserIDByUsername = "SELECT user_id FROM users_by_username WHERE username = ?"

	stmtGetUserByID = `SELECT username, email, password, first_name, last_name, address, phone, profile_image, role, provider, provider_id, created_at, updated_at
		FROM users WHERE user_id = ?`

	stmtInsertUser = `INSERT INTO users (user_id, username, email, password, first_name, last_name, address, phone, profile_image, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmtInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?)"
	stmtInsertUserByName  = "INSERT INTO users_by_username (username, user_id) VALUES (?, ?)"
)

func QueryUserIDByEmail(session *gocql.Session, email string) *gocql.Query {
	return session.Query(stmtGetUserIDByEmail, email)
}

func QueryUserIDByUsername(session *gocql.Session, username string) *gocql.Query {
	return session.Query(stmtGetUserIDByUsername, username)
}

func QueryUserByID(session *gocql.Session, userID gocql.UUID) *gocql.Query {
	return session.Query(stmtGetUserByID, userID)
}

func QueryInsertUser(session *gocql.Session, args ...interface{}) *gocql.Query {
	return session.Query(stmtInsertUser, args...)
}

func QueryInsertUserByEmail(session *gocql.Session, email string, userID gocql.UUID) *gocql.Query {
	return session.Query(stmtInsertUserByEmail, email, userID)
}

func QueryInsertUserByName(session *gocql.Session, username string, userID gocql.UUID) *gocql.Query {
	return session.Query(stmtInsertUserByName, username, userID)
}
