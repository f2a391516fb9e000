package service

import (
	"moviemart-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// Quote prices quantity units of item. The final amount is the plain product
// of unit price and quantity; booking fee and GST stay zero.
func Quote(item *model.PurchasableItem, seatType string, quantity int32) (*model.BookingDraft, error) {
	if item.Free {
		return nil, ErrFreeItem
	}

	unitPrice := item.Price
	switch item.Kind {
	case model.ItemKindEvent:
		if len(item.SeatTypes) > 0 {
			price, ok := item.SeatPrice(seatType)
			if !ok {
				return nil, ErrUnknownSeatType
			}
			unitPrice = price
		}
	case model.ItemKindVideo:
		seatType = ""
		quantity = 1
	default:
		return nil, ErrInvalidItemKind
	}

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt32(quantity))

	return &model.BookingDraft{
		ItemKind:    item.Kind,
		ItemID:      item.ID,
		ItemTitle:   item.Title,
		SeatType:    seatType,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
		BookingFee:  decimal.Zero,
		GST:         decimal.Zero,
		FinalAmount: subtotal,
		Currency:    item.Currency,
	}, nil
}
