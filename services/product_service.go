package services

import (
	"context"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// buildCatalogQuery assembles the base catalog query from parsed options
func (ps *ProductService) buildCatalogQuery(opts *structs.ProductListOptions) *database.QueryBuilder[tables.Product] {
	q := database.Query[tables.Product](ps.db).
		With("Category").
		With("Images").
		With("Sizes").
		With("Sizes.Size").
		With("Colors").
		With("Colors.Color")

	if opts.OnlyActive {
		q = q.Where("is_active", true)
	}

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Or().
			WhereOp("p.name", "ILIKE", pattern).
			WhereOp("p.description", "ILIKE", pattern).
			WhereOp("p.sku", "ILIKE", pattern).
			End()
	}

	if opts.Category != "" {
		q = q.WhereRaw("p.category_id IN (SELECT id FROM categories WHERE slug = ?)", opts.Category)
	}

	if opts.ColorId != nil {
		q = q.WhereRaw("EXISTS (SELECT 1 FROM product_colors pc WHERE pc.product_id = p.id AND pc.color_id = ?)", *opts.ColorId)
	}

	if opts.SizeId != nil {
		q = q.WhereRaw("EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = p.id AND ps.size_id = ? AND ps.stock_quantity > 0)", *opts.SizeId)
	}

	if opts.MinPrice != nil {
		q = q.WhereRaw("COALESCE(p.discount_price, p.price) >= ?", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		q = q.WhereRaw("COALESCE(p.discount_price, p.price) <= ?", *opts.MaxPrice)
	}

	if opts.InStock {
		q = q.WhereOp("p.stock_quantity", ">", 0)
	}

	direction := database.ASC
	if opts.SortDesc {
		direction = database.DESC
	}
	switch opts.SortBy {
	case "price":
		q = q.OrderBy("price", direction)
	case "name":
		q = q.OrderBy("name", direction)
	default:
		q = q.OrderBy("created_at", database.DESC)
	}

	return q
}

// ListProducts returns a paginated catalog page, served from cache when the
// exact option combination was requested recently.
func (ps *ProductService) ListProducts(opts *structs.ProductListOptions) (*database.PaginationResult[tables.Product], error) {
	cacheKey := catalogCacheKey(opts)

	// Staff views bypass the cache so edits are visible immediately
	if !opts.StaffView {
		cached, err := ps.cacheService.GetProductList(cacheKey)
		if err != nil {
			ps.logger.Warn("Product cache read failed", gecho.Field("error", err))
		} else if cached != nil {
			total, countErr := ps.buildCatalogQuery(opts).Count(context.Background())
			if countErr == nil {
				ps.logger.Debug("Catalog served from cache", gecho.Field("key", cacheKey))
				return &database.PaginationResult[tables.Product]{
					Data: cached,
					Pagination: database.Pagination{
						Page:     opts.Page,
						PageSize: opts.PageSize,
						Total:    total,
					},
				}, nil
			}
		}
	}

	result, err := database.Paginate(ps.buildCatalogQuery(opts), context.Background(), opts.Page, opts.PageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if !opts.StaffView {
		go func() {
			if err := ps.cacheService.SetProductList(cacheKey, result.Data); err != nil {
				ps.logger.Warn("Product cache write failed", gecho.Field("error", err))
			}
		}()
	}

	return result, nil
}

func catalogCacheKey(opts *structs.ProductListOptions) string {
	color, size := "", ""
	if opts.ColorId != nil {
		color = opts.ColorId.String()
	}
	if opts.SizeId != nil {
		size = opts.SizeId.String()
	}
	minPrice, maxPrice := int64(-1), int64(-1)
	if opts.MinPrice != nil {
		minPrice = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		maxPrice = *opts.MaxPrice
	}
	return fmt.Sprintf("list:p%d:s%d:q%s:c%s:col%s:sz%s:min%d:max%d:stock%v:sort%s:%v",
		opts.Page, opts.PageSize, opts.Search, opts.Category, color, size,
		minPrice, maxPrice, opts.InStock, opts.SortBy, opts.SortDesc)
}

// GetProductBySlug returns one active product with all relations loaded
func (ps *ProductService) GetProductBySlug(slug string, staffView bool) (*tables.Product, error) {
	q := database.Query[tables.Product](ps.db).
		Where("slug", slug).
		With("Category").
		With("Images").
		With("Images.Color").
		With("Sizes").
		With("Sizes.Size").
		With("Sizes.Color").
		With("Colors").
		With("Colors.Color")
	if !staffView {
		q = q.Where("is_active", true)
	}

	product, err := q.First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// GetProductByID returns one product by id
func (ps *ProductService) GetProductByID(id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		With("Images").
		With("Sizes").
		With("Colors").
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// ListFlagged returns active products carrying the given catalog flag
// ("is_featured", "is_bestseller" or "is_new_arrival").
func (ps *ProductService) ListFlagged(flag string, limit int) ([]tables.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 12
	}

	products, err := database.Query[tables.Product](ps.db).
		Where("is_active", true).
		Where(flag, true).
		With("Images").
		OrderBy("created_at", database.DESC).
		Limit(limit).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}

// ListRelated returns active products from the same category, excluding the
// product itself.
func (ps *ProductService) ListRelated(product *tables.Product, limit int) ([]tables.Product, error) {
	if limit < 1 || limit > 20 {
		limit = 4
	}
	if product.CategoryId == nil {
		return []tables.Product{}, nil
	}

	products, err := database.Query[tables.Product](ps.db).
		Where("is_active", true).
		Where("category_id", *product.CategoryId).
		WhereNot("id", product.Id).
		With("Images").
		OrderBy("created_at", database.DESC).
		Limit(limit).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}

// CreateProduct inserts a new product with a generated slug and SKU
func (ps *ProductService) CreateProduct(req *structs.CreateProductRequest) (*tables.Product, error) {
	sku := req.Sku
	if sku == "" {
		generated, err := lib.GenerateSKU(req.Name, 6)
		if err != nil {
			return nil, err
		}
		sku = generated
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &tables.Product{
		Name:          req.Name,
		Slug:          lib.Slugify(req.Name),
		Sku:           sku,
		Description:   req.Description,
		CategoryId:    req.CategoryId,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		StockQuantity: req.StockQuantity,
		IsActive:      isActive,
		IsFeatured:    req.IsFeatured,
		IsBestseller:  req.IsBestseller,
		IsNewArrival:  req.IsNewArrival,
		Material:      req.Material,
		CareGuide:     req.CareGuide,
		MetaTitle:     req.MetaTitle,
		MetaDesc:      req.MetaDesc,
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Product, error) {
		created, err := database.QueryTx[tables.Product](ps.db, tx).Insert(context.Background(), product)
		if err != nil {
			return nil, err
		}

		if len(req.ColorIds) > 0 {
			links := make([]tables.ProductColor, 0, len(req.ColorIds))
			for _, colorId := range req.ColorIds {
				links = append(links, tables.ProductColor{ProductId: created.Id, ColorId: colorId})
			}
			if _, err := database.QueryTx[tables.ProductColor](ps.db, tx).InsertMany(context.Background(), links); err != nil {
				return nil, err
			}
		}

		return created, nil
	})
	if err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, lib.MapPgError(err)
	}

	ps.invalidateCatalogCache()
	return result, nil
}

// UpdateProduct applies the provided fields to a product
func (ps *ProductService) UpdateProduct(id uuid.UUID, req *structs.UpdateProductRequest) (*tables.Product, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = lib.Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryId != nil {
		updates["category_id"] = *req.CategoryId
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DiscountPrice != nil {
		updates["discount_price"] = *req.DiscountPrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsBestseller != nil {
		updates["is_bestseller"] = *req.IsBestseller
	}
	if req.IsNewArrival != nil {
		updates["is_new_arrival"] = *req.IsNewArrival
	}
	if req.Material != nil {
		updates["material"] = *req.Material
	}
	if req.CareGuide != nil {
		updates["care_guide"] = *req.CareGuide
	}
	if req.MetaTitle != nil {
		updates["meta_title"] = *req.MetaTitle
	}
	if req.MetaDesc != nil {
		updates["meta_description"] = *req.MetaDesc
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Product, error) {
		results, err := database.QueryTx[tables.Product](ps.db, tx).Where("id", id).UpdateReturning(context.Background(), updates)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}

		// Replace the color set when provided
		if req.ColorIds != nil {
			if _, err := database.QueryTx[tables.ProductColor](ps.db, tx).Where("product_id", id).Delete(context.Background()); err != nil {
				return nil, err
			}
			if len(req.ColorIds) > 0 {
				links := make([]tables.ProductColor, 0, len(req.ColorIds))
				for _, colorId := range req.ColorIds {
					links = append(links, tables.ProductColor{ProductId: id, ColorId: colorId})
				}
				if _, err := database.QueryTx[tables.ProductColor](ps.db, tx).InsertMany(context.Background(), links); err != nil {
					return nil, err
				}
			}
		}

		return &results[0], nil
	})
	if err != nil {
		if err != lib.ErrNotFound {
			ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		}
		return nil, lib.MapPgError(err)
	}

	ps.invalidateCatalogCache()
	return result, nil
}

// DeleteProduct soft-deactivates a product rather than removing it, so
// order item references stay intact.
func (ps *ProductService) DeleteProduct(id uuid.UUID) error {
	count, err := database.Query[tables.Product](ps.db).Where("id", id).Update(context.Background(), map[string]any{
		"is_active":  false,
		"updated_at": time.Now(),
	})
	if err != nil {
		ps.logger.Error("Failed to deactivate product", gecho.Field("error", err), gecho.Field("product_id", id))
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return nil
}

func (ps *ProductService) invalidateCatalogCache() {
	if err := ps.cacheService.InvalidateProductCache(); err != nil {
		ps.logger.Warn("Failed to invalidate product cache", gecho.Field("error", err))
	}
}

// Categories

func (ps *ProductService) ListCategories(includeInactive bool) ([]tables.Category, error) {
	q := database.Query[tables.Category](ps.db).
		OrderBy("sort_order", database.ASC).
		OrderBy("name", database.ASC)
	if !includeInactive {
		q = q.Where("is_active", true)
	}

	categories, err := q.All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return categories, nil
}

func (ps *ProductService) GetCategoryBySlug(slug string, includeInactive bool) (*tables.Category, error) {
	q := database.Query[tables.Category](ps.db).Where("slug", slug)
	if !includeInactive {
		q = q.Where("is_active", true)
	}

	category, err := q.First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if category == nil {
		return nil, lib.ErrNotFound
	}
	return category, nil
}

func (ps *ProductService) CreateCategory(req *structs.CategoryRequest) (*tables.Category, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &tables.Category{
		Name:        req.Name,
		Slug:        lib.Slugify(req.Name),
		Description: req.Description,
		ParentId:    req.ParentId,
		ImageURL:    req.ImageURL,
		IsActive:    isActive,
		SortOrder:   req.SortOrder,
	}

	result, err := database.Query[tables.Category](ps.db).Insert(context.Background(), category)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ps.invalidateCatalogCache()
	return result, nil
}

func (ps *ProductService) UpdateCategory(id uuid.UUID, req *structs.CategoryRequest) (*tables.Category, error) {
	updates := map[string]any{
		"name":        req.Name,
		"slug":        lib.Slugify(req.Name),
		"description": req.Description,
		"image_url":   req.ImageURL,
		"sort_order":  req.SortOrder,
		"parent_id":   req.ParentId,
		"updated_at":  time.Now(),
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	results, err := database.Query[tables.Category](ps.db).Where("id", id).UpdateReturning(context.Background(), updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return &results[0], nil
}

func (ps *ProductService) DeleteCategory(id uuid.UUID) error {
	count, err := database.Query[tables.Category](ps.db).Where("id", id).Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return nil
}

// Colors and sizes

func (ps *ProductService) ListColors() ([]tables.Color, error) {
	colors, err := database.Query[tables.Color](ps.db).OrderBy("name", database.ASC).All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return colors, nil
}

func (ps *ProductService) CreateColor(req *structs.ColorRequest) (*tables.Color, error) {
	color := &tables.Color{Name: req.Name, HexCode: req.HexCode}
	result, err := database.Query[tables.Color](ps.db).Insert(context.Background(), color)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (ps *ProductService) UpdateColor(id uuid.UUID, req *structs.ColorRequest) (*tables.Color, error) {
	updates := map[string]any{"name": req.Name, "hex_code": req.HexCode}

	results, err := database.Query[tables.Color](ps.db).Where("id", id).UpdateReturning(context.Background(), updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return &results[0], nil
}

func (ps *ProductService) DeleteColor(id uuid.UUID) error {
	count, err := database.Query[tables.Color](ps.db).Where("id", id).Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return nil
}

func (ps *ProductService) ListSizes() ([]tables.Size, error) {
	sizes, err := database.Query[tables.Size](ps.db).OrderBy("sort_order", database.ASC).All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return sizes, nil
}

func (ps *ProductService) CreateSize(req *structs.SizeRequest) (*tables.Size, error) {
	size := &tables.Size{Name: req.Name, SortOrder: req.SortOrder}
	result, err := database.Query[tables.Size](ps.db).Insert(context.Background(), size)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (ps *ProductService) UpdateSize(id uuid.UUID, req *structs.SizeRequest) (*tables.Size, error) {
	updates := map[string]any{"name": req.Name, "sort_order": req.SortOrder}

	results, err := database.Query[tables.Size](ps.db).Where("id", id).UpdateReturning(context.Background(), updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return &results[0], nil
}

func (ps *ProductService) DeleteSize(id uuid.UUID) error {
	count, err := database.Query[tables.Size](ps.db).Where("id", id).Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return nil
}

// Per-size stock

func (ps *ProductService) UpsertProductSize(productId uuid.UUID, req *structs.ProductSizeRequest) (*tables.ProductSize, error) {
	existing, err := ps.findProductSize(productId, req.SizeId, req.ColorId)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		results, err := database.Query[tables.ProductSize](ps.db).Where("id", existing.Id).UpdateReturning(context.Background(), map[string]any{
			"stock_quantity": req.StockQuantity,
		})
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}
		return &results[0], nil
	}

	row := &tables.ProductSize{
		ProductId:     productId,
		SizeId:        req.SizeId,
		ColorId:       req.ColorId,
		StockQuantity: req.StockQuantity,
	}
	result, err := database.Query[tables.ProductSize](ps.db).Insert(context.Background(), row)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (ps *ProductService) findProductSize(productId, sizeId uuid.UUID, colorId *uuid.UUID) (*tables.ProductSize, error) {
	q := database.Query[tables.ProductSize](ps.db).
		Where("product_id", productId).
		Where("size_id", sizeId)
	if colorId != nil {
		q = q.Where("color_id", *colorId)
	} else {
		q = q.WhereNull("color_id")
	}

	row, err := q.First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return row, nil
}

// SetDefaultColor promotes one color link to the product's default and
// clears the flag on every sibling link in the same transaction.
func (ps *ProductService) SetDefaultColor(productId, linkId uuid.UUID) (*tables.ProductColor, error) {
	links, err := database.Query[tables.ProductColor](ps.db).
		Where("product_id", productId).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	linkPtrs := make([]*tables.ProductColor, len(links))
	for i := range links {
		linkPtrs[i] = &links[i]
	}
	if !tables.SetDefaultColorLink(linkPtrs, linkId) {
		return nil, lib.ErrNotFound
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.ProductColor, error) {
		ctx := context.Background()

		if _, err := database.QueryTx[tables.ProductColor](ps.db, tx).
			Where("product_id", productId).
			WhereNot("id", linkId).
			Update(ctx, map[string]any{"is_default": false}); err != nil {
			return nil, err
		}

		results, err := database.QueryTx[tables.ProductColor](ps.db, tx).
			Where("id", linkId).
			UpdateReturning(ctx, map[string]any{"is_default": true})
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

	ps.invalidateCatalogCache()
	return result, nil
}

// Images

func (ps *ProductService) AddProductImage(productId uuid.UUID, req *structs.ProductImageRequest) (*tables.ProductImage, error) {
	image := &tables.ProductImage{
		ProductId: productId,
		ColorId:   req.ColorId,
		ImageURL:  req.ImageURL,
		AltText:   req.AltText,
		IsPrimary: req.IsPrimary,
		SortOrder: req.SortOrder,
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.ProductImage, error) {
		if image.IsPrimary {
			if err := ps.unsetPrimaryImages(tx, productId, req.ColorId, uuid.Nil); err != nil {
				return nil, err
			}
		}
		return database.QueryTx[tables.ProductImage](ps.db, tx).Insert(context.Background(), image)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ps.invalidateCatalogCache()
	return result, nil
}

// SetPrimaryImage promotes the image to primary within its (product, color)
// group; the NULL-color group counts as its own group.
func (ps *ProductService) SetPrimaryImage(productId, imageId uuid.UUID) (*tables.ProductImage, error) {
	image, err := database.Query[tables.ProductImage](ps.db).
		Where("id", imageId).
		Where("product_id", productId).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if image == nil {
		return nil, lib.ErrNotFound
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.ProductImage, error) {
		if err := ps.unsetPrimaryImages(tx, productId, image.ColorId, imageId); err != nil {
			return nil, err
		}

		results, err := database.QueryTx[tables.ProductImage](ps.db, tx).
			Where("id", imageId).
			UpdateReturning(context.Background(), map[string]any{"is_primary": true})
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

	ps.invalidateCatalogCache()
	return result, nil
}

func (ps *ProductService) unsetPrimaryImages(tx bun.Tx, productId uuid.UUID, colorId *uuid.UUID, excludeId uuid.UUID) error {
	q := database.QueryTx[tables.ProductImage](ps.db, tx).
		Where("product_id", productId).
		Where("is_primary", true)
	if colorId != nil {
		q = q.Where("color_id", *colorId)
	} else {
		q = q.WhereNull("color_id")
	}
	if excludeId != uuid.Nil {
		q = q.WhereNot("id", excludeId)
	}

	_, err := q.Update(context.Background(), map[string]any{"is_primary": false})
	return err
}

func (ps *ProductService) DeleteProductImage(productId, imageId uuid.UUID) error {
	count, err := database.Query[tables.ProductImage](ps.db).
		Where("id", imageId).
		Where("product_id", productId).
		Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalogCache()
	return nil
}

// Reviews

func (ps *ProductService) ListReviews(productId uuid.UUID, page, pageSize int) (*database.PaginationResult[tables.ProductReview], error) {
	q := database.Query[tables.ProductReview](ps.db).
		Where("product_id", productId).
		Where("is_approved", true).
		With("User").
		OrderBy("created_at", database.DESC)

	result, err := database.Paginate(q, context.Background(), page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range result.Data {
		if result.Data[i].User != nil {
			result.Data[i].User.PasswordHash = ""
			result.Data[i].User.Email = ""
		}
	}
	return result, nil
}

// UpsertReview creates or replaces the user's review for a product
func (ps *ProductService) UpsertReview(productId, userId uuid.UUID, req *structs.ReviewRequest) (*tables.ProductReview, error) {
	existing, err := database.Query[tables.ProductReview](ps.db).
		Where("product_id", productId).
		Where("user_id", userId).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if existing != nil {
		results, err := database.Query[tables.ProductReview](ps.db).Where("id", existing.Id).UpdateReturning(context.Background(), map[string]any{
			"rating":     req.Rating,
			"title":      req.Title,
			"body":       req.Body,
			"updated_at": time.Now(),
		})
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return &results[0], nil
	}

	review := &tables.ProductReview{
		ProductId:  productId,
		UserId:     userId,
		Rating:     req.Rating,
		Title:      req.Title,
		Body:       req.Body,
		IsApproved: true,
	}
	result, err := database.Query[tables.ProductReview](ps.db).Insert(context.Background(), review)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (ps *ProductService) DeleteReview(productId, userId uuid.UUID) error {
	count, err := database.Query[tables.ProductReview](ps.db).
		Where("product_id", productId).
		Where("user_id", userId).
		Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// Wishlist

func (ps *ProductService) ListWishlist(userId uuid.UUID) ([]tables.WishlistItem, error) {
	items, err := database.Query[tables.WishlistItem](ps.db).
		Where("user_id", userId).
		With("Product").
		With("Product.Images").
		OrderBy("created_at", database.DESC).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return items, nil
}

func (ps *ProductService) AddToWishlist(userId, productId uuid.UUID) (*tables.WishlistItem, error) {
	// No-op when the product is already wishlisted
	existing, err := database.Query[tables.WishlistItem](ps.db).
		Where("user_id", userId).
		Where("product_id", productId).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if existing != nil {
		return existing, nil
	}

	item := &tables.WishlistItem{UserId: userId, ProductId: productId}
	result, err := database.Query[tables.WishlistItem](ps.db).Insert(context.Background(), item)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (ps *ProductService) RemoveFromWishlist(userId, productId uuid.UUID) error {
	count, err := database.Query[tables.WishlistItem](ps.db).
		Where("user_id", userId).
		Where("product_id", productId).
		Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}
