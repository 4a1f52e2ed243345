package users

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

func (urm *UserRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract register body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your registration information and try again"), gecho.Send())
		return
	}

	user, err := urm.authService.Register(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("An account with this username or email already exists"), gecho.Send())
			return
		}
		urm.logger.Error("Registration failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete registration. Please try again"), gecho.Send())
		return
	}

	// Send verification email asynchronously
	go func() {
		if _, err := urm.emailService.SendVerificationEmail(user); err != nil {
			urm.logger.Error("Failed to send verification email",
				gecho.Field("error", err),
				gecho.Field("userID", user.Id),
			)
		}
	}()

	gecho.Success(w,
		gecho.WithMessage("Registration successful. Please check your email to verify your account"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	user, err := urm.authService.Login(body)
	if err != nil {
		urm.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	accessToken, err := urm.authService.GenerateAccessToken(user)
	if err != nil {
		urm.logger.Error("Failed to generate access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	refreshToken, err := urm.authService.GenerateRefreshToken(user)
	if err != nil {
		urm.logger.Error("Failed to generate refresh token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, urm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, refreshToken, urm.authService.GetRefreshTokenExpiration(), w)

	// Send last login to db asynchronously
	go func() {
		if err := urm.authService.UpdateLastLogin(user.Id); err != nil {
			urm.logger.Error("Failed to update last login", gecho.Field("error", err), gecho.Field("userID", user.Id))
		}
	}()

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(&tables.AuthResponse{
			User:         user,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	// Refresh token can come from the request body or the cookie
	refreshToken := ""
	if body, err := lib.ExtractAndValidateBody[structs.RefreshTokenRequest](r); err == nil {
		refreshToken = body.RefreshToken
	}
	if refreshToken == "" {
		if val, err := lib.GetCookieValue(lib.RefreshCookieName, r); err == nil {
			refreshToken = val
		}
	}
	if refreshToken == "" {
		gecho.BadRequest(w, gecho.WithMessage("Refresh token is required"), gecho.Send())
		return
	}

	authResponse, err := urm.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		urm.logger.Warn("Token refresh failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or expired refresh token"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, authResponse.AccessToken, urm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, authResponse.RefreshToken, urm.authService.GetRefreshTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("Token refreshed"),
		gecho.WithData(authResponse),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	refreshToken := ""
	if val, err := lib.GetCookieValue(lib.RefreshCookieName, r); err == nil {
		refreshToken = val
	}

	if err := urm.authService.Logout(claims, refreshToken); err != nil {
		urm.logger.Error("Logout failed", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
	}

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	gecho.Success(w,
		gecho.WithData(&structs.LogoutResponse{Message: "Logged out successfully"}),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	userIdStr := r.URL.Query().Get("user_id")

	if token == "" || userIdStr == "" {
		gecho.BadRequest(w, gecho.WithMessage("Token and user_id are required"), gecho.Send())
		return
	}

	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user_id"), gecho.Send())
		return
	}

	if err := urm.authService.VerifyEmail(userId, token); err != nil {
		urm.logger.Warn("Email verification failed", gecho.Field("error", err), gecho.Field("userID", userId))
		if errors.Is(err, lib.ErrExpiredToken) {
			gecho.BadRequest(w, gecho.WithMessage("Verification link has expired. Please request a new one"), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Invalid verification link"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Email verified successfully"),
		gecho.Send(),
	)
}
