package products

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/handling"
	"fairfoul_server/lib"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (prm *ProductRoutesManager) FetchReviews(w http.ResponseWriter, r *http.Request) {
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

	page, pageSize := handling.ParsePagination(r)

	reviews, err := prm.productService.ListReviews(product.Id, page, pageSize)
	if err != nil {
		prm.logger.Error("Failed to fetch reviews", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch reviews"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(reviews),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) SubmitReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

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

	body, err := lib.ExtractAndValidateBody[structs.ReviewRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract review body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your review and try again"), gecho.Send())
		return
	}

	review, err := prm.productService.UpsertReview(product.Id, claims.Sub, body)
	if err != nil {
		prm.logger.Error("Failed to save review", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save review"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review saved"),
		gecho.WithData(review),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

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

	if err := prm.productService.DeleteReview(product.Id, claims.Sub); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Review not found"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to delete review", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete review"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review deleted"),
		gecho.Send(),
	)
}
