package controllers

import (
	"github.com/sajifood/saji-cashier-station/internal/checkout"
	"github.com/sajifood/saji-cashier-station/internal/models"
)

// View DTOs returned to the terminal. Amounts go out both raw (smallest
// currency unit) and formatted for the fixed id-ID locale, so the display
// never formats money itself.

type cartLineView struct {
	models.CartLine
	PriceFormatted    string `json:"priceFormatted"`
	SubtotalFormatted string `json:"subtotalFormatted"`
}

type cartView struct {
	Items          []cartLineView `json:"items"`
	Total          int64          `json:"total"`
	TotalFormatted string         `json:"totalFormatted"`
}

type orderView struct {
	models.Order
	TotalFormatted string `json:"totalFormatted"`
}

type checkoutView struct {
	State         string     `json:"state"`
	Cart          cartView   `json:"cart"`
	CustomerEmail string     `json:"customerEmail,omitempty"`
	Order         *orderView `json:"order,omitempty"`
	TotalMismatch bool       `json:"totalMismatch,omitempty"`
}

type menuVariantView struct {
	models.ProductVariant
	PriceFormatted string `json:"priceFormatted"`
}

type menuToppingView struct {
	models.Topping
	PriceFormatted string `json:"priceFormatted"`
}

type menuView struct {
	Variants []menuVariantView `json:"variants"`
	Toppings []menuToppingView `json:"toppings"`
}

func toCartView(c models.Cart, total int64) cartView {
	items := make([]cartLineView, 0, len(c))
	for _, line := range c {
		items = append(items, cartLineView{
			CartLine:          line,
			PriceFormatted:    models.FormatIDR(line.Price),
			SubtotalFormatted: models.FormatIDR(line.Subtotal()),
		})
	}
	return cartView{
		Items:          items,
		Total:          total,
		TotalFormatted: models.FormatIDR(total),
	}
}

func toCheckoutView(snap checkout.Snapshot) checkoutView {
	view := checkoutView{
		State:         snap.State.String(),
		Cart:          toCartView(snap.Cart, snap.Total),
		CustomerEmail: snap.Email,
		TotalMismatch: snap.TotalMismatch,
	}
	if snap.Order != nil {
		view.Order = &orderView{
			Order:          *snap.Order,
			TotalFormatted: models.FormatIDR(snap.Order.TotalAmount),
		}
	}
	return view
}

func toMenuView(menu models.Menu) menuView {
	view := menuView{
		Variants: make([]menuVariantView, 0, len(menu.Variants)),
		Toppings: make([]menuToppingView, 0, len(menu.Toppings)),
	}
	for _, v := range menu.Variants {
		view.Variants = append(view.Variants, menuVariantView{
			ProductVariant: v,
			PriceFormatted: models.FormatIDR(v.Price),
		})
	}
	for _, t := range menu.Toppings {
		view.Toppings = append(view.Toppings, menuToppingView{
			Topping:        t,
			PriceFormatted: models.FormatIDR(t.Price),
		})
	}
	return view
}
