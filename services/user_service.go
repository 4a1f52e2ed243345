package services

import (
	"context"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UserService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewUserService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *UserService {
	return &UserService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// GetProfile returns the user without the password hash
func (us *UserService) GetProfile(userId uuid.UUID) (*tables.User, error) {
	user, err := database.Query[tables.User](us.db).Where("id", userId).First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the provided profile fields
func (us *UserService) UpdateProfile(userId uuid.UUID, req *structs.UpdateProfileRequest) (*tables.User, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}

	results, err := database.Query[tables.User](us.db).Where("id", userId).UpdateReturning(context.Background(), updates)
	if err != nil {
		us.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}

	// Evict stale cached copy
	if err := us.cacheService.DeleteUserFromCache(userId); err != nil {
		us.logger.Warn("Failed to evict user cache after profile update", gecho.Field("error", err), gecho.Field("user_id", userId))
	}

	user := &results[0]
	user.PasswordHash = ""
	return user, nil
}

// ListAddresses returns the user's addresses, defaults first
func (us *UserService) ListAddresses(userId uuid.UUID) ([]tables.Address, error) {
	addresses, err := database.Query[tables.Address](us.db).
		Where("user_id", userId).
		OrderBy("is_default", database.DESC).
		OrderBy("created_at", database.DESC).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return addresses, nil
}

// GetAddress returns a single address owned by the user
func (us *UserService) GetAddress(userId, addressId uuid.UUID) (*tables.Address, error) {
	address, err := database.Query[tables.Address](us.db).
		Where("id", addressId).
		Where("user_id", userId).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if address == nil {
		return nil, lib.ErrNotFound
	}
	return address, nil
}

// GetDefaultAddress returns the user's default address for the given type.
// Addresses typed "both" satisfy either lookup.
func (us *UserService) GetDefaultAddress(userId uuid.UUID, addressType tables.AddressType) (*tables.Address, error) {
	address, err := database.Query[tables.Address](us.db).
		Where("user_id", userId).
		Where("is_default", true).
		WhereIn("address_type", []any{string(addressType), string(tables.AddressTypeBoth)}).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if address == nil {
		return nil, lib.ErrNotFound
	}
	return address, nil
}

// CreateAddress inserts a new address. When the address is marked default,
// defaults on addresses with an overlapping type are unset in the same
// transaction.
func (us *UserService) CreateAddress(userId uuid.UUID, req *structs.AddressRequest) (*tables.Address, error) {
	address := &tables.Address{
		UserId:       userId,
		AddressType:  tables.AddressTypeBoth,
		IsDefault:    req.IsDefault,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}
	if req.AddressType != "" {
		address.AddressType = tables.AddressType(req.AddressType)
	}
	if address.Country == "" {
		address.Country = "United States"
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Address, error) {
		if address.IsDefault {
			if err := us.unsetOverlappingDefaults(tx, userId, address, uuid.Nil); err != nil {
				return nil, err
			}
		}
		return database.QueryTx[tables.Address](us.db, tx).Insert(context.Background(), address)
	})
	if err != nil {
		us.logger.Error("Failed to create address", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

// UpdateAddress applies the provided fields to an address owned by the user
func (us *UserService) UpdateAddress(userId, addressId uuid.UUID, req *structs.UpdateAddressRequest) (*tables.Address, error) {
	existing, err := us.GetAddress(userId, addressId)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if req.AddressType != nil {
		updates["address_type"] = *req.AddressType
		existing.AddressType = tables.AddressType(*req.AddressType)
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.AddressLine1 != nil {
		updates["address_line1"] = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		updates["address_line2"] = *req.AddressLine2
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Address, error) {
		if req.IsDefault != nil && *req.IsDefault {
			if err := us.unsetOverlappingDefaults(tx, userId, existing, addressId); err != nil {
				return nil, err
			}
		}

		results, err := database.QueryTx[tables.Address](us.db, tx).
			Where("id", addressId).
			Where("user_id", userId).
			UpdateReturning(context.Background(), updates)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}
		return &results[0], nil
	})
	if err != nil {
		if err != lib.ErrNotFound {
			us.logger.Error("Failed to update address", gecho.Field("error", err), gecho.Field("address_id", addressId))
		}
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

// DeleteAddress removes an address owned by the user
func (us *UserService) DeleteAddress(userId, addressId uuid.UUID) error {
	count, err := database.Query[tables.Address](us.db).
		Where("id", addressId).
		Where("user_id", userId).
		Delete(context.Background())
	if err != nil {
		us.logger.Error("Failed to delete address", gecho.Field("error", err), gecho.Field("address_id", addressId))
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// SetDefaultAddress marks the address as default for the given type and
// unsets any previous overlapping default.
func (us *UserService) SetDefaultAddress(userId, addressId uuid.UUID, addressType tables.AddressType) (*tables.Address, error) {
	existing, err := us.GetAddress(userId, addressId)
	if err != nil {
		return nil, err
	}

	// An address can only be the default for a type it covers
	if existing.AddressType != addressType && existing.AddressType != tables.AddressTypeBoth {
		return nil, lib.ErrConflict
	}

	scope := &tables.Address{AddressType: addressType}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Address, error) {
		if err := us.unsetOverlappingDefaults(tx, userId, scope, addressId); err != nil {
			return nil, err
		}

		results, err := database.QueryTx[tables.Address](us.db, tx).
			Where("id", addressId).
			Where("user_id", userId).
			UpdateReturning(context.Background(), map[string]any{
				"is_default": true,
				"updated_at": time.Now(),
			})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}
		return &results[0], nil
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

// unsetOverlappingDefaults clears is_default on the user's addresses whose
// type overlaps the given address, excluding excludeId.
func (us *UserService) unsetOverlappingDefaults(tx bun.Tx, userId uuid.UUID, address *tables.Address, excludeId uuid.UUID) error {
	types := address.OverlappingTypes()
	typeValues := make([]any, len(types))
	for i, t := range types {
		typeValues[i] = string(t)
	}

	q := database.QueryTx[tables.Address](us.db, tx).
		Where("user_id", userId).
		Where("is_default", true).
		WhereIn("address_type", typeValues)
	if excludeId != uuid.Nil {
		q = q.WhereNot("id", excludeId)
	}

	_, err := q.Update(context.Background(), map[string]any{
		"is_default": false,
		"updated_at": time.Now(),
	})
	return err
}

// ListUsers returns a paginated user listing for the admin console
func (us *UserService) ListUsers(page, pageSize int, search string) (*database.PaginationResult[tables.User], error) {
	q := database.Query[tables.User](us.db).OrderBy("created_at", database.DESC)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Or().
			WhereOp("username", "ILIKE", pattern).
			WhereOp("email", "ILIKE", pattern).
			End()
	}

	result, err := database.Paginate(q, context.Background(), page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range result.Data {
		result.Data[i].PasswordHash = ""
	}
	return result, nil
}

// UpdateUser applies role/active changes (superuser only surface)
func (us *UserService) UpdateUser(userId uuid.UUID, req *structs.UpdateUserRequest) (*tables.User, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	results, err := database.Query[tables.User](us.db).Where("id", userId).UpdateReturning(context.Background(), updates)
	if err != nil {
		us.logger.Error("Failed to update user", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}

	if err := us.cacheService.DeleteUserFromCache(userId); err != nil {
		us.logger.Warn("Failed to evict user cache after admin update", gecho.Field("error", err), gecho.Field("user_id", userId))
	}

	user := &results[0]
	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes a user account. Addresses, cart, wishlist and
// reviews follow via FK cascades; orders keep a null user reference.
func (us *UserService) DeleteUser(userId uuid.UUID) error {
	deleted, err := database.Query[tables.User](us.db).Where("id", userId).Delete(context.Background())
	if err != nil {
		us.logger.Error("Failed to delete user", gecho.Field("error", err), gecho.Field("user_id", userId))
		return lib.MapPgError(err)
	}
	if deleted == 0 {
		return lib.ErrNotFound
	}

	if err := us.cacheService.DeleteUserFromCache(userId); err != nil {
		us.logger.Warn("Failed to evict user cache after delete", gecho.Field("error", err), gecho.Field("user_id", userId))
	}
	return nil
}
