package shortages

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sallaty-client/internal/gateway"
	"github.com/angelmondragon/sallaty-client/pkg/enums"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
)

func buildCreateRequest(input CreateInput) (*gateway.CreateShortageRequest, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(input.Quantity))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "الكمية غير صالحة")
	}
	if !quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "الكمية يجب أن تكون أكبر من صفر")
	}

	unit, err := enums.ParseUnit(strings.TrimSpace(input.Unit))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "الوحدة غير صالحة")
	}

	return &gateway.CreateShortageRequest{
		ProductName: strings.TrimSpace(input.ProductName),
		Quantity:    quantity,
		Unit:        unit,
		Notes:       strings.TrimSpace(input.Notes),
	}, nil
}
