package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"fortex/internal/datastore"
	"fortex/internal/models"
	"fortex/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const SOURCE_MINING_CLAIM = "mining:claim"

// CooldownError is the expected rejection of a claim during cooldown. It
// carries the countdown so callers can render it without polling.
type CooldownError struct {
	SecondsUntilMine int64
	NextMineTime     time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("mining on cooldown for %ds", e.SecondsUntilMine)
}

type ServiceMining struct {
	container  *do.Injector
	postgresDB *bun.DB
	rs         *redsync.Redsync
	cache      caching.Cache

	serviceConfig  *ServiceConfig
	serviceAccount *ServiceAccount
}

func NewServiceMining(container *do.Injector) (*ServiceMining, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceAccount, err := do.Invoke[*ServiceAccount](container)
	if err != nil {
		return nil, err
	}

	return &ServiceMining{container, postgresDB, rs, cache, serviceConfig, serviceAccount}, nil
}

// Claim runs the mining claim state machine: one conditional UPDATE adds
// the amount, stamps last_claim_at and pushes next_claim_at one cooldown
// into the future. The eligibility check lives inside that statement, so
// duplicate retries cannot both pass it; the mutex only serializes the
// re-read that builds the cooldown response.
func (service *ServiceMining) Claim(ctx context.Context, account *models.Account, amount int64) (*models.Account, error) {
	if account == nil {
		return nil, errorx.Wrap(errors.New("missing account"), errorx.Authn)
	}

	if err := service.validAmount(ctx, amount); err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyMiningClaim(account.ID))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrClaimLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	cooldownHours, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_MINING_COOLDOWN_HOURS, DEFAULT_MINING_COOLDOWN_HOURS)
	now := time.Now()

	updated, err := datastore.ClaimBalance(ctx, service.postgresDB, account.ID, amount, now, time.Duration(cooldownHours)*time.Hour)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.cooldownRejection(ctx, account.ID, now)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.recordEntry(ctx, updated.ID, amount, SOURCE_MINING_CLAIM)

	if err := service.serviceAccount.ClearAccountCache(ctx, updated); err != nil {
		log.Println(err)
	}

	return updated, nil
}

// Add credits a reward outside the mining cooldown, e.g. a minigame win.
// The increment is SQL-side so concurrent adds and claims never lose an
// update.
func (service *ServiceMining) Add(ctx context.Context, account *models.Account, amount int64, source string) (*models.Account, error) {
	if account == nil {
		return nil, errorx.Wrap(errors.New("missing account"), errorx.Authn)
	}

	if amount < 1 {
		return nil, errorx.Wrap(ErrInvalidAmount, errorx.Validation)
	}

	updated, err := datastore.AddBalance(ctx, service.postgresDB, account.ID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.recordEntry(ctx, updated.ID, amount, source)

	if err := service.serviceAccount.ClearAccountCache(ctx, updated); err != nil {
		log.Println(err)
	}

	return updated, nil
}

func (service *ServiceMining) UpgradeMembership(ctx context.Context, account *models.Account, targetTier string) (*models.Account, error) {
	if account == nil {
		return nil, errorx.Wrap(errors.New("missing account"), errorx.Authn)
	}

	if !models.ValidMembership(targetTier) {
		return nil, errorx.Wrap(ErrInvalidTier, errorx.Validation)
	}

	if !models.CanChangeMembership(account.Membership, targetTier) {
		return nil, errorx.Wrap(ErrDowngradeRejected, errorx.Invalid)
	}

	updated, err := datastore.UpdateMembership(ctx, service.postgresDB, account.ID, account.Membership, targetTier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrMembershipConflict, errorx.Invalid)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if err := service.serviceAccount.ClearAccountCache(ctx, updated); err != nil {
		log.Println(err)
	}

	return updated, nil
}

func (service *ServiceMining) validAmount(ctx context.Context, amount int64) error {
	if amount < 1 {
		return errorx.Wrap(ErrInvalidAmount, errorx.Validation)
	}

	maxClaim, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_MINING_CLAIM_MAX, DEFAULT_MINING_CLAIM_MAX)
	if amount > int64(maxClaim) {
		return errorx.Wrap(fmt.Errorf("amount exceeds claim limit of %d", maxClaim), errorx.Validation)
	}

	return nil
}

func (service *ServiceMining) cooldownRejection(ctx context.Context, accountID int64, now time.Time) error {
	fresh, err := datastore.FindAccountByID(ctx, service.postgresDB, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	if fresh.NextClaimAt == nil {
		// the CAS only misses with a future next_claim_at; a nil here
		// means the row changed under us, tell the caller to retry
		return errorx.Wrap(ErrClaimLock, errorx.Invalid)
	}

	return &CooldownError{
		SecondsUntilMine: models.SecondsUntil(*fresh.NextClaimAt, now),
		NextMineTime:     *fresh.NextClaimAt,
	}
}

func (service *ServiceMining) recordEntry(ctx context.Context, accountID int64, amount int64, source string) {
	entry := &models.LedgerEntry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Amount:    amount,
		Source:    source,
		CreatedAt: time.Now(),
	}

	// audit trail only, the balance row is already committed
	if err := datastore.InsertLedgerEntry(ctx, service.postgresDB, entry); err != nil {
		log.Println(err)
	}
}
