package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-account-service/internal/basicauth"
	"github.com/sbilibin2017/gw-account-service/internal/logger"
	"github.com/sbilibin2017/gw-account-service/internal/models"
	"github.com/sbilibin2017/gw-account-service/internal/repositories"
)

//go:generate mockgen -source=account.go -destination=mock_account.go -package=services

// AccountReader defines read-only operations for accounts.
type AccountReader interface {
	GetByIdentifier(ctx context.Context, identifier string) (*models.AccountDB, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	Save(ctx context.Context, identifier, displayName, secretHash string) (*models.AccountDB, error)
	UpdateProfile(ctx context.Context, identifier, displayName string, note *string) error
	MarkDeleted(ctx context.Context, identifier string) error
}

// AccountCache caches live account rows by identifier.
type AccountCache interface {
	Get(ctx context.Context, identifier string) (*models.AccountDB, error)
	Set(ctx context.Context, account *models.AccountDB) error
	Delete(ctx context.Context, identifier string) error
}

// SecretHasher turns secrets into stored forms and checks candidates against them.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Verify(stored, candidate string) (bool, error)
}

// CommitScheduler defers fn until the transaction bound to ctx has committed.
type CommitScheduler func(ctx context.Context, fn func())

func runNow(_ context.Context, fn func()) { fn() }

// AccountService handles account creation, lookup, profile updates and closing.
type AccountService struct {
	reader      AccountReader
	writer      AccountWriter
	hasher      SecretHasher
	cache       AccountCache
	afterCommit CommitScheduler
}

// NewAccountService creates a new AccountService instance. cache may be nil.
func NewAccountService(reader AccountReader, writer AccountWriter, hasher SecretHasher, cache AccountCache) *AccountService {
	return &AccountService{
		reader:      reader,
		writer:      writer,
		hasher:      hasher,
		cache:       cache,
		afterCommit: runNow,
	}
}

// WithAfterCommit makes cache eviction wait for the request transaction.
// Without it evictions run right after the store write.
func (svc *AccountService) WithAfterCommit(schedule CommitScheduler) *AccountService {
	if schedule != nil {
		svc.afterCommit = schedule
	}
	return svc
}

// Create registers a new account whose display name starts out as its identifier.
func (svc *AccountService) Create(ctx context.Context, identifier, secret string) (*models.Account, error) {
	if identifier == "" || secret == "" {
		return nil, fmt.Errorf("%w: identifier and secret are required", ErrValidation)
	}

	existing, err := svc.reader.GetByIdentifier(ctx, identifier)
	if err != nil {
		logger.Log.Errorw("failed to check account exists", "identifier", identifier, "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("account already exists", "identifier", identifier)
		return nil, ErrAccountAlreadyExists
	}

	secretHash, err := svc.hasher.Hash(secret)
	if err != nil {
		logger.Log.Errorw("failed to hash secret", "err", err)
		return nil, err
	}

	saved, err := svc.writer.Save(ctx, identifier, identifier, secretHash)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateIdentifier) {
			logger.Log.Infow("account created concurrently", "identifier", identifier)
			return nil, ErrAccountAlreadyExists
		}
		logger.Log.Errorw("failed to save account", "identifier", identifier, "err", err)
		return nil, err
	}

	return &models.Account{
		Identifier:  saved.Identifier,
		DisplayName: saved.DisplayName,
	}, nil
}

// Read returns the caller's own account.
// The identity in the path is compared with the credentials before any lookup,
// and a mismatch is an authentication failure.
func (svc *AccountService) Read(ctx context.Context, pathIdentifier, authHeader string) (*models.Account, error) {
	authIdentifier, secret, err := basicauth.Decode(authHeader)
	if err != nil {
		return nil, err
	}

	if pathIdentifier != authIdentifier {
		logger.Log.Infow("path identifier does not match credentials", "path", pathIdentifier)
		return nil, fmt.Errorf("%w: identifier mismatch", ErrAuthenticationFailed)
	}

	account, err := svc.authenticate(ctx, authIdentifier, secret)
	if err != nil {
		return nil, err
	}

	return account.ToAccount(), nil
}

// Update changes display name and note of the caller's own account.
// Unlike Read, the path identity is checked only after the credentials are
// verified, and a mismatch is reported as ErrForbidden.
func (svc *AccountService) Update(ctx context.Context, pathIdentifier string, upd models.AccountUpdate, authHeader string) (*models.Account, error) {
	if upd.DisplayName == nil && upd.Note == nil {
		return nil, fmt.Errorf("%w: display_name or note is required", ErrValidation)
	}
	if upd.Secret != nil && *upd.Secret != "" {
		return nil, fmt.Errorf("%w: identifier and secret are not updatable", ErrValidation)
	}

	authIdentifier, secret, err := basicauth.Decode(authHeader)
	if err != nil {
		return nil, err
	}

	account, err := svc.authenticate(ctx, authIdentifier, secret)
	if err != nil {
		return nil, err
	}

	if pathIdentifier != authIdentifier {
		logger.Log.Infow("update of foreign account refused", "caller", authIdentifier, "path", pathIdentifier)
		return nil, ErrForbidden
	}

	displayName := account.Identifier
	if upd.DisplayName != nil {
		displayName = *upd.DisplayName
	}

	if err := svc.writer.UpdateProfile(ctx, pathIdentifier, displayName, upd.Note); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		logger.Log.Errorw("failed to update account", "identifier", pathIdentifier, "err", err)
		return nil, err
	}
	svc.evict(ctx, pathIdentifier)

	return &models.Account{
		Identifier:  account.Identifier,
		DisplayName: displayName,
		Note:        upd.Note,
	}, nil
}

// Close soft-deletes the account named by the credentials.
// A closed account is invisible afterwards, so closing twice yields ErrAccountNotFound.
func (svc *AccountService) Close(ctx context.Context, authHeader string) error {
	authIdentifier, secret, err := basicauth.Decode(authHeader)
	if err != nil {
		return err
	}

	account, err := svc.authenticate(ctx, authIdentifier, secret)
	if err != nil {
		return err
	}

	if err := svc.writer.MarkDeleted(ctx, account.Identifier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAccountNotFound
		}
		logger.Log.Errorw("failed to close account", "identifier", account.Identifier, "err", err)
		return err
	}
	svc.evict(ctx, account.Identifier)

	return nil
}

// authenticate loads the live account and checks secret against it.
func (svc *AccountService) authenticate(ctx context.Context, identifier, secret string) (*models.AccountDB, error) {
	account, err := svc.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	ok, err := svc.hasher.Verify(account.SecretHash, secret)
	if err != nil {
		logger.Log.Errorw("stored secret is unreadable", "identifier", identifier, "err", err)
		return nil, err
	}
	if !ok {
		logger.Log.Infow("invalid credentials", "identifier", identifier)
		return nil, ErrAuthenticationFailed
	}
	return account, nil
}

// lookup reads through the cache when one is configured.
func (svc *AccountService) lookup(ctx context.Context, identifier string) (*models.AccountDB, error) {
	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, identifier)
		if err != nil {
			logger.Log.Warnw("account cache read failed", "identifier", identifier, "err", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	account, err := svc.reader.GetByIdentifier(ctx, identifier)
	if err != nil {
		logger.Log.Errorw("failed to get account", "identifier", identifier, "err", err)
		return nil, err
	}

	if account != nil && svc.cache != nil {
		if err := svc.cache.Set(ctx, account); err != nil {
			logger.Log.Warnw("failed to cache account", "identifier", identifier, "err", err)
		}
	}
	return account, nil
}

// evict drops the cached row once the write is committed, so a lookup
// racing the uncommitted write cannot leave the old row cached.
func (svc *AccountService) evict(ctx context.Context, identifier string) {
	if svc.cache == nil {
		return
	}
	svc.afterCommit(ctx, func() {
		if err := svc.cache.Delete(ctx, identifier); err != nil {
			logger.Log.Warnw("failed to evict cached account", "identifier", identifier, "err", err)
		}
	})
}
