package structs

import "github.com/google/uuid"

type CreateProductRequest struct {
	Name          string      `json:"name" validate:"required,min=2,max=255"`
	Sku           string      `json:"sku" validate:"omitempty,max=64"`
	Description   string      `json:"description" validate:"omitempty,max=10000"`
	CategoryId    *uuid.UUID  `json:"category_id"`
	Price         int64       `json:"price" validate:"gte=0"`
	DiscountPrice *int64      `json:"discount_price" validate:"omitempty,gte=0"`
	StockQuantity int         `json:"stock_quantity" validate:"gte=0"`
	IsActive      *bool       `json:"is_active"`
	IsFeatured    bool        `json:"is_featured"`
	IsBestseller  bool        `json:"is_bestseller"`
	IsNewArrival  bool        `json:"is_new_arrival"`
	Material      string      `json:"material" validate:"omitempty,max=500"`
	CareGuide     string      `json:"care_guide" validate:"omitempty,max=5000"`
	MetaTitle     string      `json:"meta_title" validate:"omitempty,max=255"`
	MetaDesc      string      `json:"meta_description" validate:"omitempty,max=500"`
	ColorIds      []uuid.UUID `json:"color_ids" validate:"omitempty,dive,uuid4"`
}

type UpdateProductRequest struct {
	Name          *string     `json:"name" validate:"omitempty,min=2,max=255"`
	Description   *string     `json:"description" validate:"omitempty,max=10000"`
	CategoryId    *uuid.UUID  `json:"category_id"`
	Price         *int64      `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice *int64      `json:"discount_price" validate:"omitempty,gte=0"`
	StockQuantity *int        `json:"stock_quantity" validate:"omitempty,gte=0"`
	IsActive      *bool       `json:"is_active"`
	IsFeatured    *bool       `json:"is_featured"`
	IsBestseller  *bool       `json:"is_bestseller"`
	IsNewArrival  *bool       `json:"is_new_arrival"`
	Material      *string     `json:"material" validate:"omitempty,max=500"`
	CareGuide     *string     `json:"care_guide" validate:"omitempty,max=5000"`
	MetaTitle     *string     `json:"meta_title" validate:"omitempty,max=255"`
	MetaDesc      *string     `json:"meta_description" validate:"omitempty,max=500"`
	ColorIds      []uuid.UUID `json:"color_ids" validate:"omitempty,dive,uuid4"`
}

type CategoryRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	ParentId    *uuid.UUID `json:"parent_id"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool      `json:"is_active"`
	SortOrder   int        `json:"sort_order" validate:"gte=0"`
}

type ColorRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=50"`
	HexCode string `json:"hex_code" validate:"omitempty,hexcolor"`
}

type SizeRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=20"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type ProductSizeRequest struct {
	SizeId        uuid.UUID  `json:"size_id" validate:"required"`
	ColorId       *uuid.UUID `json:"color_id"`
	StockQuantity int        `json:"stock_quantity" validate:"gte=0"`
}

type ProductImageRequest struct {
	ColorId   *uuid.UUID `json:"color_id"`
	ImageURL  string     `json:"image_url" validate:"required,url"`
	AltText   string     `json:"alt_text" validate:"omitempty,max=255"`
	IsPrimary bool       `json:"is_primary"`
	SortOrder int        `json:"sort_order" validate:"gte=0"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title  string `json:"title" validate:"omitempty,max=255"`
	Body   string `json:"body" validate:"omitempty,max=4000"`
}

type WishlistRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
}

// ProductListOptions carries parsed catalog query parameters
type ProductListOptions struct {
	Page       int
	PageSize   int
	Search     string
	Category   string
	ColorId    *uuid.UUID
	SizeId     *uuid.UUID
	MinPrice   *int64
	MaxPrice   *int64
	InStock    bool
	SortBy     string
	SortDesc   bool
	StaffView  bool
	OnlyActive bool
}
