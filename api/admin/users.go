package admin

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/handling"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := handling.ParsePagination(r)
	search := r.URL.Query().Get("search")

	result, err := arm.userService.ListUsers(page, pageSize, search)
	if err != nil {
		arm.logger.Error("Failed to list users", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch users"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	userId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateUserRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract user body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the user details and try again"), gecho.Send())
		return
	}

	user, err := arm.userService.UpdateUser(userId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("User not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update user", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update user"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "user", user.Id.String(),
		"Updated user "+user.Username, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("User updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) GetUser(w http.ResponseWriter, r *http.Request) {
	userId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user ID"), gecho.Send())
		return
	}

	user, err := arm.userService.GetProfile(userId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("User not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch user", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch user"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.AdminCreateUserRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract user body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the user details and try again"), gecho.Send())
		return
	}

	user, err := arm.authService.Register(&structs.RegisterRequest{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("A user with this email or username already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create user", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create user"), gecho.Send())
		return
	}

	// Elevated role or inactive flag gets applied as a second step
	if body.Role != nil || body.IsActive != nil {
		user, err = arm.userService.UpdateUser(user.Id, &structs.UpdateUserRequest{
			Role:     body.Role,
			IsActive: body.IsActive,
		})
		if err != nil {
			arm.logger.Error("Failed to apply role to new user", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("User created but role could not be applied"), gecho.Send())
			return
		}
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionCreate, "user", user.Id.String(),
		"Created user "+user.Username, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("User created"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	userId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user ID"), gecho.Send())
		return
	}

	if userId == claims.Sub {
		gecho.Conflict(w, gecho.WithMessage("You cannot delete your own account"), gecho.Send())
		return
	}

	if err := arm.userService.DeleteUser(userId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("User not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete user", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete user"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "user", userId.String(),
		"Deleted user", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("User deleted"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	userId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user ID"), gecho.Send())
		return
	}

	if userId == claims.Sub {
		gecho.Conflict(w, gecho.WithMessage("You cannot deactivate your own account"), gecho.Send())
		return
	}

	existing, err := arm.userService.GetProfile(userId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("User not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch user", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update user"), gecho.Send())
		return
	}

	active := !existing.IsActive
	user, err := arm.userService.UpdateUser(userId, &structs.UpdateUserRequest{IsActive: &active})
	if err != nil {
		arm.logger.Error("Failed to toggle user status", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update user"), gecho.Send())
		return
	}

	action := "Deactivated user "
	if active {
		action = "Activated user "
	}
	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "user", user.Id.String(),
		action+user.Username, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("User status updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	userId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user ID"), gecho.Send())
		return
	}

	if userId == claims.Sub {
		gecho.Conflict(w, gecho.WithMessage("You cannot change your own role"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ChangeRoleRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract role body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please provide a valid role"), gecho.Send())
		return
	}

	user, err := arm.userService.UpdateUser(userId, &structs.UpdateUserRequest{Role: &body.Role})
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("User not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to change user role", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update user"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "user", user.Id.String(),
		"Changed role of "+user.Username+" to "+body.Role, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("User role updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
