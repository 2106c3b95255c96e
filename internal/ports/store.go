package ports

// Store is the full persistence collaborator
type Store interface {
	DistractionRepository
	ProgressRepository
	SessionRepository
	Close() error
}
