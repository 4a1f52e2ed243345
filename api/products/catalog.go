package products

import (
	"errors"
	"net/http"
	"strconv"

	"fairfoul_server/handling"
	"fairfoul_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchProducts handles GET /products with filtering, pagination, and sorting
func (prm *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	// Public listings only show active products
	opts.OnlyActive = true

	result, err := prm.productService.ListProducts(opts)
	if err != nil {
		prm.logger.Error("Failed to fetch products", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch products"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		gecho.BadRequest(w, gecho.WithMessage("Product slug is required"), gecho.Send())
		return
	}

	product, err := prm.productService.GetProductBySlug(slug, false)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch product"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) fetchFlagged(w http.ResponseWriter, r *http.Request, flag string) {
	limit := 8
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil && val > 0 && val <= 50 {
			limit = val
		}
	}

	products, err := prm.productService.ListFlagged(flag, limit)
	if err != nil {
		prm.logger.Error("Failed to fetch flagged products", gecho.Field("error", err), gecho.Field("flag", flag))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch products"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchFeatured(w http.ResponseWriter, r *http.Request) {
	prm.fetchFlagged(w, r, "is_featured")
}

func (prm *ProductRoutesManager) FetchBestsellers(w http.ResponseWriter, r *http.Request) {
	prm.fetchFlagged(w, r, "is_bestseller")
}

func (prm *ProductRoutesManager) FetchNewArrivals(w http.ResponseWriter, r *http.Request) {
	prm.fetchFlagged(w, r, "is_new_arrival")
}

func (prm *ProductRoutesManager) FetchRelated(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := prm.productService.GetProductBySlug(slug, false)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch product"), gecho.Send())
		return
	}

	related, err := prm.productService.ListRelated(product, 4)
	if err != nil {
		prm.logger.Error("Failed to fetch related products", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch related products"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(related),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := prm.productService.ListCategories(false)
	if err != nil {
		prm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch categories"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := prm.productService.GetCategoryBySlug(slug, false)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to fetch category", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch category"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchColors(w http.ResponseWriter, r *http.Request) {
	colors, err := prm.productService.ListColors()
	if err != nil {
		prm.logger.Error("Failed to fetch colors", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch colors"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(colors),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := prm.productService.ListSizes()
	if err != nil {
		prm.logger.Error("Failed to fetch sizes", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch sizes"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(sizes),
		gecho.Send(),
	)
}
