package users

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

func (urm *UserRoutesManager) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	user, err := urm.userService.GetProfile(claims.Sub)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Account not found"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to fetch profile", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch profile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateProfileRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract profile body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your profile information and try again"), gecho.Send())
		return
	}

	user, err := urm.userService.UpdateProfile(claims.Sub, body)
	if err != nil {
		urm.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update profile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Profile updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ChangePasswordRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract password body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your password information and try again"), gecho.Send())
		return
	}

	if err := urm.authService.ChangePassword(claims.Sub, body.CurrentPassword, body.NewPassword); err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			gecho.Unauthorized(w, gecho.WithMessage("Current password is incorrect"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to change password", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to change password"), gecho.Send())
		return
	}

	// Issue a fresh token pair so existing sessions re-authenticate
	user, err := urm.authService.GetUserByID(claims.Sub)
	if err != nil {
		urm.logger.Error("Failed to fetch user after password change", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to change password"), gecho.Send())
		return
	}

	accessToken, err := urm.authService.GenerateAccessToken(user)
	if err != nil {
		urm.logger.Error("Failed to generate access token", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to change password"), gecho.Send())
		return
	}

	refreshToken, err := urm.authService.GenerateRefreshToken(user)
	if err != nil {
		urm.logger.Error("Failed to generate refresh token", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to change password"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, urm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, refreshToken, urm.authService.GetRefreshTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("Password changed successfully"),
		gecho.WithData(&tables.AuthResponse{
			User:         user,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}),
		gecho.Send(),
	)
}
