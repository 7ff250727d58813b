package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/danuarts/woodshop/internal/domain/entity"
)

func productView(p *entity.Product) gin.H {
	images := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, gin.H{
			"id":         img.ID,
			"image_url":  img.ImageURL,
			"is_primary": img.IsPrimary,
		})
	}
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"main_image":  p.MainImage,
		"stock":       p.Stock,
		"is_featured": p.IsFeatured,
		"category_id": p.CategoryID,
		"images":      images,
	}
}

func productViews(products []entity.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productView(&products[i]))
	}
	return out
}

func categoryView(c *entity.Category) gin.H {
	return gin.H{
		"id":        c.ID,
		"name":      c.Name,
		"image_url": c.ImageURL,
	}
}

func categoryViews(categories []entity.Category) []gin.H {
	out := make([]gin.H, 0, len(categories))
	for i := range categories {
		out = append(out, categoryView(&categories[i]))
	}
	return out
}

func orderView(o *entity.Order) gin.H {
	return gin.H{
		"id":               o.ID,
		"customer_name":    o.CustomerName,
		"customer_email":   o.CustomerEmail,
		"customer_phone":   o.CustomerPhone,
		"shipping_address": o.ShippingAddress,
		"quantity":         o.Quantity,
		"total_price":      o.TotalPrice.StringFixed(2),
		"order_date":       o.OrderDate,
		"done":             o.Done,
		"product_id":       o.ProductID,
		"product_name":     o.ProductName,
	}
}

func orderViews(orders []entity.Order) []gin.H {
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderView(&orders[i]))
	}
	return out
}
