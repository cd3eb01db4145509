package service

import (
	"context"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/store"
)

// Identity is the verified caller identity supplied by the external identity
// service with every request. AccountID is the only field with authority;
// Email and Name just feed the local account mirror.
type Identity struct {
	AccountID string
	Email     string
	Name      string
}

// mirrorAccount refreshes the local account row from verified claims so
// member listings can show a profile without calling the identity service.
func mirrorAccount(ctx context.Context, s store.Store, id Identity) error {
	return s.Accounts().UpsertAccount(ctx, domain.Account{
		ID:    id.AccountID,
		Email: id.Email,
		Name:  id.Name,
	})
}
