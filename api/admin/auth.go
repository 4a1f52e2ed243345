package admin

import (
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// HandleStaffLogin authenticates like the regular login but rejects
// non-staff accounts before issuing tokens.
func (arm *AdminRoutesManager) HandleStaffLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract staff login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	user, err := arm.authService.Login(body)
	if err != nil {
		arm.logger.Warn("Staff login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	if !user.IsStaff() {
		arm.logger.Warn("Non-staff account attempted console login",
			gecho.Field("userID", user.Id),
			gecho.Field("role", user.Role),
		)
		gecho.Forbidden(w, gecho.WithMessage("Staff access required"), gecho.Send())
		return
	}

	accessToken, err := arm.authService.GenerateAccessToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	refreshToken, err := arm.authService.GenerateRefreshToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate refresh token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, arm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, refreshToken, arm.authService.GetRefreshTokenExpiration(), w)

	go func() {
		if err := arm.authService.UpdateLastLogin(user.Id); err != nil {
			arm.logger.Error("Failed to update last login", gecho.Field("error", err), gecho.Field("userID", user.Id))
		}
	}()

	arm.adminService.RecordActivity(&user.Id, tables.AdminActionLogin, "", "",
		"Staff member logged in to the console", middleware.ClientIP(r))

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

func (arm *AdminRoutesManager) HandleStaffLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	refreshToken := ""
	if val, err := lib.GetCookieValue(lib.RefreshCookieName, r); err == nil {
		refreshToken = val
	}

	if err := arm.authService.Logout(claims, refreshToken); err != nil {
		arm.logger.Error("Staff logout failed", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
	}

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionLogout, "", "",
		"Staff member logged out of the console", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithData(&structs.LogoutResponse{Message: "Logged out successfully"}),
		gecho.Send(),
	)
}

// HandleVerifySession lets the console check that the current session is
// still a valid staff session.
func (arm *AdminRoutesManager) HandleVerifySession(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	user, err := arm.authService.GetUserByID(claims.Sub)
	if err != nil || user == nil || !user.IsStaff() || !user.IsActive {
		gecho.Forbidden(w, gecho.WithMessage("Staff access required"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
