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

// ListProducts returns the full catalog including inactive products
func (arm *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid query parameters"), gecho.Send())
		return
	}

	opts.StaffView = true

	result, err := arm.productService.ListProducts(opts)
	if err != nil {
		arm.logger.Error("Failed to list products", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch products"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.CreateProductRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the product details and try again"), gecho.Send())
		return
	}

	product, err := arm.productService.CreateProduct(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("A product with this SKU or slug already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create product", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create product"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionCreate, "product", product.Id.String(),
		"Created product "+product.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the product details and try again"), gecho.Send())
		return
	}

	product, err := arm.productService.UpdateProduct(productId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("productID", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update product"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "product", product.Id.String(),
		"Updated product "+product.Name, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DeleteProduct deactivates a product rather than removing the row, so past
// orders keep their references.
func (arm *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteProduct(productId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("productID", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete product"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "product", productId.String(),
		"Deactivated product", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpsertProductSize(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductSizeRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract size body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the size details and try again"), gecho.Send())
		return
	}

	productSize, err := arm.productService.UpsertProductSize(productId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to upsert product size", gecho.Field("error", err), gecho.Field("productID", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save size stock"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "product", productId.String(),
		"Updated per-size stock", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Size stock saved"),
		gecho.WithData(productSize),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) AddProductImage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductImageRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract image body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the image details and try again"), gecho.Send())
		return
	}

	image, err := arm.productService.AddProductImage(productId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to add product image", gecho.Field("error", err), gecho.Field("productID", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to add image"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "product", productId.String(),
		"Added product image", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Image added"),
		gecho.WithData(image),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) SetPrimaryImage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	imageId, err := uuid.Parse(chi.URLParam(r, "imageId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid image ID"), gecho.Send())
		return
	}

	image, err := arm.productService.SetPrimaryImage(productId, imageId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Image not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to set primary image", gecho.Field("error", err), gecho.Field("imageID", imageId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to set primary image"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "product", productId.String(),
		"Changed primary product image", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Primary image updated"),
		gecho.WithData(image),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) SetDefaultColor(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	linkId, err := uuid.Parse(chi.URLParam(r, "colorId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid color ID"), gecho.Send())
		return
	}

	link, err := arm.productService.SetDefaultColor(productId, linkId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product color not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to set default color", gecho.Field("error", err), gecho.Field("colorID", linkId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to set default color"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "product", productId.String(),
		"Changed default product color", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Default color updated"),
		gecho.WithData(link),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	imageId, err := uuid.Parse(chi.URLParam(r, "imageId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid image ID"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteProductImage(productId, imageId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Image not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete product image", gecho.Field("error", err), gecho.Field("imageID", imageId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete image"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "product", productId.String(),
		"Removed product image", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Image deleted"),
		gecho.Send(),
	)
}
