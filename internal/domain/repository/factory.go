package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Archive() ArchiveRepository
	Products() ProductRepository
	Audit() AuditRepository
}
