package users

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (urm *UserRoutesManager) HandleListAddresses(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	addresses, err := urm.userService.ListAddresses(claims.Sub)
	if err != nil {
		urm.logger.Error("Failed to list addresses", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch addresses"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(addresses),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleGetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	addressType := tables.AddressType(r.URL.Query().Get("type"))
	if addressType == "" {
		addressType = tables.AddressTypeShipping
	}

	address, err := urm.userService.GetDefaultAddress(claims.Sub, addressType)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("No default address set"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to fetch default address", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch default address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(address),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleGetAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	addressId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid address ID"), gecho.Send())
		return
	}

	address, err := urm.userService.GetAddress(claims.Sub, addressId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Address not found"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to fetch address", gecho.Field("error", err), gecho.Field("addressID", addressId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(address),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleCreateAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AddressRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract address body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your address information and try again"), gecho.Send())
		return
	}

	address, err := urm.userService.CreateAddress(claims.Sub, body)
	if err != nil {
		urm.logger.Error("Failed to create address", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Address saved"),
		gecho.WithData(address),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	addressId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid address ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateAddressRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract address body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your address information and try again"), gecho.Send())
		return
	}

	address, err := urm.userService.UpdateAddress(claims.Sub, addressId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Address not found"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to update address", gecho.Field("error", err), gecho.Field("addressID", addressId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Address updated"),
		gecho.WithData(address),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	addressId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid address ID"), gecho.Send())
		return
	}

	if err := urm.userService.DeleteAddress(claims.Sub, addressId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Address not found"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to delete address", gecho.Field("error", err), gecho.Field("addressID", addressId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Address deleted"),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleSetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	addressId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid address ID"), gecho.Send())
		return
	}

	addressType := tables.AddressType(r.URL.Query().Get("type"))
	if addressType == "" {
		addressType = tables.AddressTypeShipping
	}

	address, err := urm.userService.SetDefaultAddress(claims.Sub, addressId, addressType)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Address not found"), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("Address type does not match the requested default type"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to set default address", gecho.Field("error", err), gecho.Field("addressID", addressId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to set default address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Default address updated"),
		gecho.WithData(address),
		gecho.Send(),
	)
}
