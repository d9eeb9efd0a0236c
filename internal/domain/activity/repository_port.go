// internal/domain/activity/repository_port.go
package activity

import "context"

type Filter struct {
	MintAddress *string
	Wallet      *string // matches FromWallet or ToWallet
	Kind        *Kind
	Status      *Status
}

// RepositoryPort persists activities. Results are newest first.
type RepositoryPort interface {
	Save(ctx context.Context, a Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context, filter Filter, limit int) ([]Activity, error)
}

// Matches reports whether a satisfies every set field of f.
func (f Filter) Matches(a Activity) bool {
	if f.MintAddress != nil && a.MintAddress != *f.MintAddress {
		return false
	}
	if f.Wallet != nil && a.FromWallet != *f.Wallet && a.ToWallet != *f.Wallet {
		return false
	}
	if f.Kind != nil && a.Kind != *f.Kind {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	return true
}
