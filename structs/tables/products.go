package tables

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	tableName   struct{}   `bun:"table:categories,alias:cat"`
	Id          uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string     `bun:"name,notnull,unique" json:"name" validate:"required,min=2,max=100"`
	Slug        string     `bun:"slug,notnull,unique" json:"slug"`
	Description string     `bun:"description" json:"description,omitempty"`
	ParentId    *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	ImageURL    string     `bun:"image_url" json:"image_url,omitempty"`
	IsActive    bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	SortOrder   int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Parent      *Category  `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`
}

type Color struct {
	tableName struct{}  `bun:"table:colors,alias:col"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name" validate:"required,min=1,max=50"`
	HexCode   string    `bun:"hex_code" json:"hex_code,omitempty" validate:"omitempty,hexcolor"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type Size struct {
	tableName struct{}  `bun:"table:sizes,alias:sz"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name" validate:"required,min=1,max=20"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// Product prices are stored in cents.
type Product struct {
	tableName      struct{}        `bun:"table:products,alias:p"`
	Id             uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name           string          `bun:"name,notnull" json:"name" validate:"required,min=2,max=255"`
	Slug           string          `bun:"slug,notnull,unique" json:"slug"`
	Sku            string          `bun:"sku,notnull,unique" json:"sku" validate:"required,max=64"`
	Description    string          `bun:"description" json:"description,omitempty"`
	CategoryId     *uuid.UUID      `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	Price          int64           `bun:"price,notnull" json:"price" validate:"gte=0"`
	DiscountPrice  *int64          `bun:"discount_price" json:"discount_price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity  int             `bun:"stock_quantity,notnull,default:0" json:"stock_quantity" validate:"gte=0"`
	IsActive       bool            `bun:"is_active,notnull,default:true" json:"is_active"`
	IsFeatured     bool            `bun:"is_featured,notnull,default:false" json:"is_featured"`
	IsBestseller   bool            `bun:"is_bestseller,notnull,default:false" json:"is_bestseller"`
	IsNewArrival   bool            `bun:"is_new_arrival,notnull,default:false" json:"is_new_arrival"`
	Material       string          `bun:"material" json:"material,omitempty"`
	CareGuide      string          `bun:"care_guide" json:"care_guide,omitempty"`
	MetaTitle      string          `bun:"meta_title" json:"meta_title,omitempty"`
	MetaDesc       string          `bun:"meta_description" json:"meta_description,omitempty"`
	CreatedAt      time.Time       `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt      time.Time       `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Category       *Category       `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Images         []*ProductImage `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
	Sizes          []*ProductSize  `bun:"rel:has-many,join:id=product_id" json:"sizes,omitempty"`
	Colors         []*ProductColor `bun:"rel:has-many,join:id=product_id" json:"colors,omitempty"`
}

// EffectivePrice returns the discount price when set and lower than the
// base price, otherwise the base price.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

type ProductColor struct {
	tableName struct{}  `bun:"table:product_colors,alias:pc"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	ColorId   uuid.UUID `bun:"color_id,notnull,type:uuid" json:"color_id"`
	IsDefault bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	Color     *Color    `bun:"rel:belongs-to,join:color_id=id" json:"color,omitempty"`
}

// SetDefaultColorLink flags the link with the given id as the product's
// default color and clears the flag on every sibling. Returns false when no
// link has that id.
func SetDefaultColorLink(links []*ProductColor, id uuid.UUID) bool {
	found := false
	for _, link := range links {
		if link.Id == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for _, link := range links {
		link.IsDefault = link.Id == id
	}
	return true
}

// ProductSize carries per-size stock for a product, optionally scoped to a
// color variant.
type ProductSize struct {
	tableName     struct{}   `bun:"table:product_sizes,alias:ps"`
	Id            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId     uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	SizeId        uuid.UUID  `bun:"size_id,notnull,type:uuid" json:"size_id"`
	ColorId       *uuid.UUID `bun:"color_id,type:uuid" json:"color_id,omitempty"`
	StockQuantity int        `bun:"stock_quantity,notnull,default:0" json:"stock_quantity" validate:"gte=0"`
	Size          *Size      `bun:"rel:belongs-to,join:size_id=id" json:"size,omitempty"`
	Color         *Color     `bun:"rel:belongs-to,join:color_id=id" json:"color,omitempty"`
}

type ProductImage struct {
	tableName struct{}   `bun:"table:product_images,alias:pi"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	ColorId   *uuid.UUID `bun:"color_id,type:uuid" json:"color_id,omitempty"`
	ImageURL  string     `bun:"image_url,notnull" json:"image_url" validate:"required,url"`
	AltText   string     `bun:"alt_text" json:"alt_text,omitempty"`
	IsPrimary bool       `bun:"is_primary,notnull,default:false" json:"is_primary"`
	SortOrder int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	Color     *Color     `bun:"rel:belongs-to,join:color_id=id" json:"color,omitempty"`
}

type WishlistItem struct {
	tableName struct{}  `bun:"table:wishlist_items,alias:wi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	Product   *Product  `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}

type ProductReview struct {
	tableName  struct{}  `bun:"table:product_reviews,alias:pr"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId  uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	UserId     uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Rating     int       `bun:"rating,notnull" json:"rating" validate:"required,gte=1,lte=5"`
	Title      string    `bun:"title" json:"title,omitempty" validate:"omitempty,max=255"`
	Body       string    `bun:"body" json:"body,omitempty" validate:"omitempty,max=4000"`
	IsApproved bool      `bun:"is_approved,notnull,default:true" json:"is_approved"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	User       *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}
