package domain

import "context"

// ReaderPort serves stored result sets
type ReaderPort interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (ResultSet, error)
	Batch(ctx context.Context, names []string) ([]ResultSet, error)
	Latest(ctx context.Context) (ResultSet, error)
}

// WriterPort stores result sets
type WriterPort interface {
	Save(ctx context.Context, in SaveInput) (SaveOutput, error)
	PutLatest(ctx context.Context, doc any) error
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	ReaderPort
	WriterPort
}
