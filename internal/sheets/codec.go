package sheets

import (
	"errors"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/grid"
	"github.com/Veraticus/agrotrade/internal/model"
)

// DecodeInventory maps a record onto an inventory item.
func DecodeInventory(rec grid.Record) (model.InventoryItem, error) {
	ownerType, err := model.ParseRole(rec.Text(FieldOwnerType))
	if err != nil {
		return model.InventoryItem{}, field(err, FieldOwnerType)
	}
	return model.InventoryItem{
		ID:            rec.Text(FieldID),
		ProductID:     rec.Text(FieldProductID),
		OwnerID:       rec.Text(FieldOwnerID),
		ProductName:   rec.Text(FieldProductName),
		Category:      rec.Text(FieldCategory),
		Quantity:      rec.Number(FieldQuantity),
		ListPrice:     rec.Money(FieldPricePerUnit),
		CostPrice:     rec.Money(FieldCostPrice),
		Unit:          rec.Text(FieldUnit),
		MinStockLevel: rec.Number(FieldMinStockLevel),
		OwnerType:     ownerType,
	}, nil
}

// EncodeInventory maps an inventory item onto a record. The status field
// carries the freshly derived stock status for layouts that display it.
func EncodeInventory(item model.InventoryItem) grid.Record {
	return grid.Record{
		FieldID:            item.ID,
		FieldProductID:     item.ProductID,
		FieldOwnerID:       item.OwnerID,
		FieldProductName:   item.ProductName,
		FieldCategory:      item.Category,
		FieldQuantity:      grid.FormatNumber(item.Quantity),
		FieldPricePerUnit:  grid.FormatMoney(item.ListPrice),
		FieldCostPrice:     grid.FormatMoney(item.CostPrice),
		FieldUnit:          item.Unit,
		FieldMinStockLevel: grid.FormatNumber(item.MinStockLevel),
		FieldOwnerType:     string(item.OwnerType),
		FieldStatus:        string(item.Status()),
	}
}

// DecodeProduct maps a record onto a catalogue product.
func DecodeProduct(rec grid.Record) (model.Product, error) {
	availability, err := model.ParseAvailability(rec.Text(FieldAvailableFor))
	if err != nil {
		return model.Product{}, field(err, FieldAvailableFor)
	}
	return model.Product{
		ID:           rec.Text(FieldID),
		OwnerID:      rec.Text(FieldOwnerID),
		Name:         rec.Text(FieldName),
		Category:     rec.Text(FieldCategory),
		Description:  rec.Text(FieldDescription),
		Price:        rec.Money(FieldBasePrice),
		Unit:         rec.Text(FieldUnit),
		AvailableFor: availability,
		ImageURL:     rec.Text(FieldImageURL),
	}, nil
}

// EncodeProduct maps a product onto a record.
func EncodeProduct(p model.Product) grid.Record {
	return grid.Record{
		FieldID:           p.ID,
		FieldOwnerID:      p.OwnerID,
		FieldName:         p.Name,
		FieldCategory:     p.Category,
		FieldDescription:  p.Description,
		FieldBasePrice:    grid.FormatMoney(p.Price),
		FieldUnit:         p.Unit,
		FieldAvailableFor: string(p.AvailableFor),
		FieldImageURL:     p.ImageURL,
	}
}

// DecodeTrade maps a record onto a trade. An empty amount cell leaves the
// amount to be derived from quantity and price.
func DecodeTrade(rec grid.Record) (model.Trade, error) {
	status, err := model.ParseTradeStatus(rec.Text(FieldStatus))
	if err != nil {
		return model.Trade{}, field(err, FieldStatus)
	}
	buyerType, err := model.ParseRole(rec.Text(FieldBuyerType))
	if err != nil {
		return model.Trade{}, field(err, FieldBuyerType)
	}

	trade := model.Trade{
		TradeID:      rec.Text(FieldTradeID),
		Date:         rec.Time(FieldDate),
		FarmerUID:    rec.Text(FieldFarmerUID),
		RetailerUID:  rec.Text(FieldRetailerUID),
		ProductName:  rec.Text(FieldProductName),
		Quantity:     rec.Number(FieldQuantity),
		PricePerUnit: rec.Money(FieldPricePerUnit),
		Unit:         rec.Text(FieldUnit),
		Status:       status,
		BuyerType:    buyerType,
		SellerName:   rec.Text(FieldSellerName),
		Details:      rec.Text(FieldDetails),
	}
	if rec.Text(FieldAmount) != "" {
		amount := rec.Money(FieldAmount)
		trade.StoredAmount = &amount
	}
	return trade, nil
}

// EncodeTrade maps a trade onto a record.
func EncodeTrade(t model.Trade) grid.Record {
	rec := grid.Record{
		FieldTradeID:      t.TradeID,
		FieldDate:         grid.FormatTimestamp(t.Date),
		FieldFarmerUID:    t.FarmerUID,
		FieldRetailerUID:  t.RetailerUID,
		FieldProductName:  t.ProductName,
		FieldQuantity:     grid.FormatNumber(t.Quantity),
		FieldPricePerUnit: grid.FormatMoney(t.PricePerUnit),
		FieldUnit:         t.Unit,
		FieldStatus:       string(t.Status),
		FieldBuyerType:    string(t.BuyerType),
		FieldSellerName:   t.SellerName,
		FieldDetails:      t.Details,
	}
	if t.StoredAmount != nil {
		rec[FieldAmount] = grid.FormatMoney(*t.StoredAmount)
	}
	return rec
}

// DecodeProfile maps a record onto a profile.
func DecodeProfile(rec grid.Record) (model.Profile, error) {
	role, err := model.ParseRole(rec.Text(FieldRole))
	if err != nil {
		return model.Profile{}, field(err, FieldRole)
	}

	profile := model.Profile{
		UID:         rec.Text(FieldUID),
		Name:        rec.Text(FieldName),
		Role:        role,
		Division:    rec.Text(FieldDivision),
		District:    rec.Text(FieldDistrict),
		SubDistrict: rec.Text(FieldSubDistrict),
		Contact:     rec.Text(FieldContact),
		About:       rec.Text(FieldAbout),
		AvatarURL:   rec.Text(FieldAvatarURL),
		JoinedDate:  rec.Time(FieldJoinedDate),
	}
	if rec.Text(FieldRating) != "" {
		rating := rec.Number(FieldRating)
		profile.Rating = &rating
	}
	return profile, nil
}

// EncodeProfile maps a profile onto a record.
func EncodeProfile(p model.Profile) grid.Record {
	rec := grid.Record{
		FieldUID:         p.UID,
		FieldName:        p.Name,
		FieldRole:        string(p.Role),
		FieldDivision:    p.Division,
		FieldDistrict:    p.District,
		FieldSubDistrict: p.SubDistrict,
		FieldContact:     p.Contact,
		FieldAbout:       p.About,
		FieldAvatarURL:   p.AvatarURL,
		FieldJoinedDate:  grid.FormatTimestamp(p.JoinedDate),
	}
	if p.Rating != nil {
		rec[FieldRating] = grid.FormatNumber(*p.Rating)
	}
	return rec
}

// DecodeAll decodes every record, stamping parse errors with the table name
// and the 1-based data row they came from.
func DecodeAll[T any](table string, records []grid.Record, decode func(grid.Record) (T, error)) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, rec := range records {
		v, err := decode(rec)
		if err != nil {
			return nil, Locate(err, table, i+1)
		}
		out = append(out, v)
	}
	return out, nil
}

// Locate stamps a parse error with the table and 1-based data row it came
// from. Other errors pass through unchanged.
func Locate(err error, table string, row int) error {
	var pe *common.ParseError
	if errors.As(err, &pe) {
		pe.Table = table
		pe.Row = row
	}
	return err
}

func field(err error, name string) error {
	var pe *common.ParseError
	if errors.As(err, &pe) {
		pe.Field = name
	}
	return err
}
