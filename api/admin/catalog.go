package admin

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

// ListCategories includes inactive categories in the staff view
func (arm *AdminRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := arm.productService.ListCategories(true)
	if err != nil {
		arm.logger.Error("Failed to list categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch categories"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract category body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the category details and try again"), gecho.Send())
		return
	}

	category, err := arm.productService.CreateCategory(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("A category with this name already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create category", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create category"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionCreate, "category", category.Id.String(),
		"Created category "+category.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	categoryId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract category body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the category details and try again"), gecho.Send())
		return
	}

	category, err := arm.productService.UpdateCategory(categoryId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("categoryID", categoryId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update category"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "category", category.Id.String(),
		"Updated category "+category.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Category updated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	categoryId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category ID"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteCategory(categoryId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("categoryID", categoryId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete category"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "category", categoryId.String(),
		"Deleted category", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Category deleted"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateColor(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.ColorRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract color body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the color details and try again"), gecho.Send())
		return
	}

	color, err := arm.productService.CreateColor(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("A color with this name already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create color", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create color"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionCreate, "color", color.Id.String(),
		"Created color "+color.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Color created"),
		gecho.WithData(color),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateColor(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	colorId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid color ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ColorRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract color body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the color details and try again"), gecho.Send())
		return
	}

	color, err := arm.productService.UpdateColor(colorId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Color not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update color", gecho.Field("error", err), gecho.Field("colorID", colorId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update color"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "color", color.Id.String(),
		"Updated color "+color.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Color updated"),
		gecho.WithData(color),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteColor(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	colorId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid color ID"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteColor(colorId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Color not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete color", gecho.Field("error", err), gecho.Field("colorID", colorId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete color"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "color", colorId.String(),
		"Deleted color", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Color deleted"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateSize(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.SizeRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract size body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the size details and try again"), gecho.Send())
		return
	}

	size, err := arm.productService.CreateSize(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("A size with this name already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create size", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create size"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionCreate, "size", size.Id.String(),
		"Created size "+size.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Size created"),
		gecho.WithData(size),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateSize(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	sizeId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid size ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.SizeRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract size body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the size details and try again"), gecho.Send())
		return
	}

	size, err := arm.productService.UpdateSize(sizeId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Size not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update size", gecho.Field("error", err), gecho.Field("sizeID", sizeId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update size"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "size", size.Id.String(),
		"Updated size "+size.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Size updated"),
		gecho.WithData(size),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteSize(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	sizeId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid size ID"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteSize(sizeId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Size not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete size", gecho.Field("error", err), gecho.Field("sizeID", sizeId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete size"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "size", sizeId.String(),
		"Deleted size", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Size deleted"),
		gecho.Send(),
	)
}
