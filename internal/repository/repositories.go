package repository

import (
	"github.com/deppfellow/go-qa/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Questions QuestionRepository
	Answers   AnswerRepository
}

// NewRepositories builds the Postgres repositories on the server's pool.
// The pool stays owned by the server.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Questions: NewQuestionRepo(s.DB.Pool),
		Answers:   NewAnswerRepo(s.DB.Pool),
	}
}

// NewMemoryRepositories builds repositories backed by a fresh MemoryStore.
func NewMemoryRepositories() *Repositories {
	store := NewMemoryStore()
	return &Repositories{
		Questions: store.Questions(),
		Answers:   store.Answers(),
	}
}
