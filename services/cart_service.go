package services

import (
	"context"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CartService struct {
	logger         *gecho.Logger
	db             *database.DB
	productService *ProductService
}

func NewCartService(logger *gecho.Logger, db *database.DB, productService *ProductService) *CartService {
	return &CartService{
		logger:         logger,
		db:             db,
		productService: productService,
	}
}

// GetOrCreateCart returns the user's cart with items loaded, creating an
// empty cart on first access.
func (cs *CartService) GetOrCreateCart(userId uuid.UUID) (*tables.Cart, error) {
	cart, err := database.Query[tables.Cart](cs.db).
		Where("user_id", userId).
		With("Items").
		With("Items.Product").
		With("Items.Product.Images").
		With("Items.Color").
		With("Items.Size").
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if cart != nil {
		return cart, nil
	}

	created, err := database.Query[tables.Cart](cs.db).Insert(context.Background(), &tables.Cart{UserId: userId})
	if err != nil {
		// Lost a concurrent create race, fetch the winner's cart
		if lib.IsUniqueViolation(err) {
			return cs.GetOrCreateCart(userId)
		}
		cs.logger.Error("Failed to create cart", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}

	created.Items = []*tables.CartItem{}
	return created, nil
}

// AddItem adds a product variant to the cart, merging quantity into an
// existing line for the same (product, color, size).
func (cs *CartService) AddItem(userId uuid.UUID, req *structs.AddCartItemRequest) (*tables.Cart, error) {
	product, err := cs.productService.GetProductByID(req.ProductId)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, lib.ErrNotFound
	}

	cart, err := cs.GetOrCreateCart(userId)
	if err != nil {
		return nil, err
	}

	existing, err := cs.findLine(cart.Id, req.ProductId, req.ColorId, req.SizeId)
	if err != nil {
		return nil, err
	}

	newQuantity := req.Quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}

	if err := cs.checkStock(product, req.SizeId, req.ColorId, newQuantity); err != nil {
		return nil, err
	}

	if existing != nil {
		_, err = database.Query[tables.CartItem](cs.db).Where("id", existing.Id).Update(context.Background(), map[string]any{
			"quantity":   newQuantity,
			"updated_at": time.Now(),
		})
	} else {
		item := &tables.CartItem{
			CartId:    cart.Id,
			ProductId: req.ProductId,
			ColorId:   req.ColorId,
			SizeId:    req.SizeId,
			Quantity:  req.Quantity,
		}
		_, err = database.Query[tables.CartItem](cs.db).Insert(context.Background(), item)
	}
	if err != nil {
		cs.logger.Error("Failed to add cart item", gecho.Field("error", err), gecho.Field("cart_id", cart.Id))
		return nil, lib.MapPgError(err)
	}

	cs.touchCart(cart.Id)
	return cs.GetOrCreateCart(userId)
}

// UpdateItem sets the quantity of a cart line
func (cs *CartService) UpdateItem(userId, itemId uuid.UUID, quantity int) (*tables.Cart, error) {
	cart, err := cs.GetOrCreateCart(userId)
	if err != nil {
		return nil, err
	}

	item, err := database.Query[tables.CartItem](cs.db).
		Where("id", itemId).
		Where("cart_id", cart.Id).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if item == nil {
		return nil, lib.ErrNotFound
	}

	product, err := cs.productService.GetProductByID(item.ProductId)
	if err != nil {
		return nil, err
	}
	if err := cs.checkStock(product, item.SizeId, item.ColorId, quantity); err != nil {
		return nil, err
	}

	_, err = database.Query[tables.CartItem](cs.db).Where("id", itemId).Update(context.Background(), map[string]any{
		"quantity":   quantity,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	cs.touchCart(cart.Id)
	return cs.GetOrCreateCart(userId)
}

// RemoveItem deletes a cart line
func (cs *CartService) RemoveItem(userId, itemId uuid.UUID) (*tables.Cart, error) {
	cart, err := cs.GetOrCreateCart(userId)
	if err != nil {
		return nil, err
	}

	count, err := database.Query[tables.CartItem](cs.db).
		Where("id", itemId).
		Where("cart_id", cart.Id).
		Delete(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if count == 0 {
		return nil, lib.ErrNotFound
	}

	cs.touchCart(cart.Id)
	return cs.GetOrCreateCart(userId)
}

// ClearCart removes every line from the user's cart
func (cs *CartService) ClearCart(userId uuid.UUID) (*tables.Cart, error) {
	cart, err := cs.GetOrCreateCart(userId)
	if err != nil {
		return nil, err
	}

	if _, err := database.Query[tables.CartItem](cs.db).Where("cart_id", cart.Id).Delete(context.Background()); err != nil {
		return nil, lib.MapPgError(err)
	}

	cs.touchCart(cart.Id)
	cart.Items = []*tables.CartItem{}
	return cart, nil
}

func (cs *CartService) findLine(cartId, productId uuid.UUID, colorId, sizeId *uuid.UUID) (*tables.CartItem, error) {
	q := database.Query[tables.CartItem](cs.db).
		Where("cart_id", cartId).
		Where("product_id", productId)
	if colorId != nil {
		q = q.Where("color_id", *colorId)
	} else {
		q = q.WhereNull("color_id")
	}
	if sizeId != nil {
		q = q.Where("size_id", *sizeId)
	} else {
		q = q.WhereNull("size_id")
	}

	item, err := q.First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return item, nil
}

// availableStock returns the quantity that governs a line: the per-size row
// when the line has one, otherwise the product's own stock. Checkout
// decrements the same row, so a size-only-stocked product stays orderable.
func availableStock(product *tables.Product, sizeRow *tables.ProductSize) int {
	if sizeRow != nil {
		return sizeRow.StockQuantity
	}
	return product.StockQuantity
}

// checkStock validates the requested quantity against per-size stock when a
// size is chosen, falling back to product-level stock otherwise.
func (cs *CartService) checkStock(product *tables.Product, sizeId, colorId *uuid.UUID, quantity int) error {
	var sizeRow *tables.ProductSize
	if sizeId != nil {
		row, err := cs.productService.findProductSize(product.Id, *sizeId, colorId)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrInsufficientStock
		}
		sizeRow = row
	}

	if quantity > availableStock(product, sizeRow) {
		return ErrInsufficientStock
	}
	return nil
}

func (cs *CartService) touchCart(cartId uuid.UUID) {
	if _, err := database.Query[tables.Cart](cs.db).Where("id", cartId).Update(context.Background(), map[string]any{
		"updated_at": time.Now(),
	}); err != nil {
		cs.logger.Warn("Failed to touch cart", gecho.Field("error", err), gecho.Field("cart_id", cartId))
	}
}
