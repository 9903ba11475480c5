package handler

import (
	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// --- Domain → response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

func toBrandResponse(b *domain.Brand) brandResponse {
	return brandResponse{ID: b.ID, Name: b.Name, Description: b.Description}
}

func toProductResponse(p *domain.Product) productResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	resp := productResponse{
		ID:          p.ID,
		Type:        string(p.Type),
		CompanyID:   p.BrandID,
		ShortName:   p.ShortName,
		Title:       p.Title,
		Price:       p.Price,
		Currency:    domain.Currency,
		Description: p.Description,
		Images:      images,
		Warranty:    p.Warranty,
	}
	if p.Brand != nil {
		brand := toBrandResponse(p.Brand)
		resp.Company = &brand
	}
	if p.IsLaptop() {
		specs := p.Specs
		resp.GPU, resp.CPU, resp.RAM = &specs.GPU, &specs.CPU, &specs.RAM
		resp.Storage, resp.Display = &specs.Storage, &specs.Display
	}
	return resp
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		ir := orderItemResponse{ProductID: item.ProductID, Quantity: item.Quantity}
		if item.Product != nil {
			p := toProductResponse(item.Product)
			ir.Product = &p
		}
		items = append(items, ir)
	}

	return orderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Email:        o.Email,
		Address:      o.Address,
		Status:       string(o.Status),
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt.UTC(),
		Items:        items,
	}
}

func toContactResponse(c *domain.Contact) contactResponse {
	availability := c.Availability
	if availability == nil {
		availability = []string{}
	}
	return contactResponse{
		SalesHotline: c.SalesHotline,
		WhatsApp:     c.WhatsApp,
		SupportEmail: c.SupportEmail,
		Address:      c.Address,
		Availability: availability,
	}
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

// --- Request → service input ---

func toCreateProductInput(req createProductRequest) ports.CreateProductInput {
	category := req.Category
	if category == "" {
		category = req.Type
	}
	in := ports.CreateProductInput{
		Category:    category,
		BrandID:     req.CompanyID,
		ShortName:   req.ShortName,
		Title:       req.Title,
		Price:       req.Price.asFloat(),
		Description: req.Description,
		Images:      []string(req.Images),
		Specs: domain.LaptopSpecs{
			GPU:     req.GPU,
			CPU:     req.CPU,
			RAM:     req.RAM,
			Storage: req.Storage,
			Display: req.Display,
		},
	}
	if w := req.Warranty.asInt(); w != nil {
		in.Warranty = *w
	}
	return in
}

func toUpdateProductInput(req updateProductRequest) ports.UpdateProductInput {
	category := req.Category
	if category == nil {
		category = req.Type
	}
	in := ports.UpdateProductInput{
		Category:    category,
		BrandID:     req.CompanyID,
		ShortName:   req.ShortName,
		Title:       req.Title,
		Price:       req.Price.asFloat(),
		Description: req.Description,
		Warranty:    req.Warranty.asInt(),
		GPU:         req.GPU,
		CPU:         req.CPU,
		RAM:         req.RAM,
		Storage:     req.Storage,
		Display:     req.Display,
	}
	if req.Images != nil {
		images := []string(*req.Images)
		if images == nil {
			images = []string{}
		}
		in.Images = &images
	}
	return in
}

func toCreateOrderInput(req createOrderRequest) ports.CreateOrderInput {
	var items []ports.OrderItemInput
	if len(req.Items) > 0 {
		items = make([]ports.OrderItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, orderItemInput(item.ProductID, item.LaptopID, item.Quantity))
		}
	} else if req.ProductID != "" || req.LaptopID != "" {
		items = []ports.OrderItemInput{orderItemInput(req.ProductID, req.LaptopID, req.Quantity)}
	}

	return ports.CreateOrderInput{
		Items:        items,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Notes:        req.Notes,
	}
}

// orderItemInput defaults a missing quantity to 1; the service clamps the rest.
func orderItemInput(productID, laptopID string, quantity *number) ports.OrderItemInput {
	if productID == "" {
		productID = laptopID
	}
	item := ports.OrderItemInput{ProductID: productID, Quantity: 1}
	if q := quantity.asInt(); q != nil {
		item.Quantity = *q
	}
	return item
}

func toContact(req contactRequest) *domain.Contact {
	return &domain.Contact{
		SalesHotline: req.SalesHotline,
		WhatsApp:     req.WhatsApp,
		SupportEmail: req.SupportEmail,
		Address:      req.Address,
		Availability: []string(req.Availability),
	}
}
