package services

import (
	"context"
	"errors"
	"log"

	"fortex/internal/datastore"
	"fortex/internal/models"
	"fortex/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceAccount struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceAccount(container *do.Injector) (*ServiceAccount, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAccount{container, postgresDB, cache}, nil
}

// FindOrCreateAccount binds a verified identity to its single account row.
// The upsert makes concurrent first verifications converge on one record,
// so there is no read-then-insert window.
func (service *ServiceAccount) FindOrCreateAccount(ctx context.Context, identity *models.IdentityFromAuth) (*models.Account, error) {
	if identity == nil {
		return nil, errorx.Wrap(errors.New("missing identity"), errorx.Authn)
	}

	account := &models.Account{
		IdentityKey: identity.IdentityKey,
		Username:    identity.Username,
		Membership:  models.MembershipFree,
	}

	account, err := datastore.UpsertAccount(ctx, service.postgresDB, account)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if account.IsNewAccount {
		log.Println("create new account:", account.ID, "identity:", account.IdentityKey)
	}

	err = service.ClearAccountCache(ctx, account)
	if err != nil {
		log.Println(err)
	}

	return account, nil
}

func (service *ServiceAccount) FindAccountByID(ctx context.Context, accountID int64) (*models.Account, error) {
	callback := func() (*models.Account, error) {
		return datastore.FindAccountByID(ctx, service.postgresDB, accountID)
	}
	return caching.UseCache(ctx, service.cache, DBKeyAccount(accountID), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceAccount) FindAccountByIdentityKey(ctx context.Context, identityKey string) (*models.Account, error) {
	callback := func() (*models.Account, error) {
		return datastore.FindAccountByIdentityKey(ctx, service.postgresDB, identityKey)
	}
	return caching.UseCache(ctx, service.cache, DBKeyAccountByIdentity(identityKey), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceAccount) ClearAccountCache(ctx context.Context, account *models.Account) error {
	if err := service.cache.Delete(ctx, DBKeyAccount(account.ID)); err != nil {
		return err
	}
	return service.cache.Delete(ctx, DBKeyAccountByIdentity(account.IdentityKey))
}
