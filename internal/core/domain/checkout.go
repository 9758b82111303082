package domain

import "errors"

var ErrCartEmpty = errors.New("cart is empty")

const (
	DeliveryCourier = "delivery"
	DeliveryPickup  = "pickup"
)

// A CheckoutForm carries the order contact fields. Orders are not
// processed server-side; a valid checkout only clears the cart.
type CheckoutForm struct {
	Name         string
	Phone        string
	Address      string
	Comment      string
	DeliveryType string
}

func (f CheckoutForm) Validate() error {
	var errs []error

	if f.Name == "" {
		errs = append(errs, errors.New("name: required"))
	}
	if f.Phone == "" {
		errs = append(errs, errors.New("phone: required"))
	}
	if f.DeliveryType != DeliveryCourier && f.DeliveryType != DeliveryPickup {
		errs = append(errs, errors.New("delivery_type: must be delivery or pickup"))
	}
	if f.DeliveryType == DeliveryCourier && f.Address == "" {
		errs = append(errs, errors.New("address: required for delivery"))
	}

	return errors.Join(errs...)
}
