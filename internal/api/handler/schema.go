package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/nourtech/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// --- Flexible request values ---

// stringList accepts a JSON array of strings or a single string holding
// entries separated by newlines.
// Entries are trimmed and blanks dropped.
type stringList []string

// imageList is a stringList that also splits on commas.
type imageList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	items, err := decodeList(b, "\n")
	*l = items
	return err
}

func (l *imageList) UnmarshalJSON(b []byte) error {
	items, err := decodeList(b, "\n,")
	*l = items
	return err
}

func decodeList(b []byte, separators string) ([]string, error) {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil, nil
	}

	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, domain.NewValidationError("expected a list of strings")
		}
		raw = strings.FieldsFunc(s, func(r rune) bool {
			return strings.ContainsRune(separators, r)
		})
	}

	items := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

// number accepts a JSON number or a numeric string.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.NewValidationError("expected a number")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return domain.NewValidationError("expected a number")
	}
	*n = number(f)
	return nil
}

func (n *number) asFloat() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

func (n *number) asInt() *int {
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"max=64"`
	Password string `json:"password" validate:"max=72"`
	FullName string `json:"fullName" validate:"max=120"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type meResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
}

// --- Catalogue ---

type createBrandRequest struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type brandResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createProductRequest struct {
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	CompanyID   string    `json:"companyId"`
	ShortName   string    `json:"shortName"`
	Title       string    `json:"title"`
	Price       *number   `json:"price"`
	Description string    `json:"description"`
	Images      imageList `json:"images"`
	Warranty    *number   `json:"warranty"`
	GPU         string    `json:"gpu"`
	CPU         string    `json:"cpu"`
	RAM         string    `json:"ram"`
	Storage     string    `json:"storage"`
	Display     string    `json:"display"`
}

type updateProductRequest struct {
	Category    *string    `json:"category"`
	Type        *string    `json:"type"`
	CompanyID   *string    `json:"companyId"`
	ShortName   *string    `json:"shortName"`
	Title       *string    `json:"title"`
	Price       *number    `json:"price"`
	Description *string    `json:"description"`
	Images      *imageList `json:"images"`
	Warranty    *number    `json:"warranty"`
	GPU         *string    `json:"gpu"`
	CPU         *string    `json:"cpu"`
	RAM         *string    `json:"ram"`
	Storage     *string    `json:"storage"`
	Display     *string    `json:"display"`
}

type productResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	CompanyID   string         `json:"companyId"`
	ShortName   string         `json:"shortName"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	Warranty    int            `json:"warranty"`
	Company     *brandResponse `json:"company"`

	// Laptop-only fields.
	GPU     *string `json:"gpu,omitempty"`
	CPU     *string `json:"cpu,omitempty"`
	RAM     *string `json:"ram,omitempty"`
	Storage *string `json:"storage,omitempty"`
	Display *string `json:"display,omitempty"`
}

// --- Orders ---

type orderItemRequest struct {
	ProductID string  `json:"productId"`
	LaptopID  string  `json:"laptopId"`
	Quantity  *number `json:"quantity"`
}

// createOrderRequest accepts either an items list or a single legacy
// productId/laptopId with quantity.
type createOrderRequest struct {
	Items        []orderItemRequest `json:"items"`
	ProductID    string             `json:"productId"`
	LaptopID     string             `json:"laptopId"`
	Quantity     *number            `json:"quantity"`
	CustomerName string             `json:"customerName" validate:"max=120"`
	Phone        string             `json:"phone"        validate:"max=40"`
	Email        string             `json:"email"        validate:"omitempty,email"`
	Address      string             `json:"address"      validate:"max=500"`
	Notes        string             `json:"notes"        validate:"max=2000"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *productResponse `json:"product"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	CustomerName string              `json:"customerName"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	Address      string              `json:"address"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes"`
	CreatedAt    time.Time           `json:"createdAt"`
	Items        []orderItemResponse `json:"items"`
}

// --- Contact ---

type contactRequest struct {
	SalesHotline string     `json:"salesHotline" validate:"max=80"`
	WhatsApp     string     `json:"whatsapp"     validate:"max=80"`
	SupportEmail string     `json:"supportEmail" validate:"omitempty,email"`
	Address      string     `json:"address"      validate:"max=500"`
	Availability stringList `json:"availability"`
}

type contactResponse struct {
	SalesHotline string   `json:"salesHotline"`
	WhatsApp     string   `json:"whatsapp"`
	SupportEmail string   `json:"supportEmail"`
	Address      string   `json:"address"`
	Availability []string `json:"availability"`
}

// --- Uploads ---

type uploadRequest struct {
	Data     string `json:"data"     validate:"required"`
	Filename string `json:"filename" validate:"max=255"`
}

type uploadResponse struct {
	URL string `json:"url"`
}
