package sheets

import "github.com/Veraticus/agrotrade/internal/grid"

// Record fields. Both layouts key their columns by these names so the codecs
// never need to know which layout produced a record.
const (
	FieldID            = "id"
	FieldProductID     = "product_id"
	FieldOwnerID       = "owner_id"
	FieldProductName   = "product_name"
	FieldName          = "name"
	FieldCategory      = "category"
	FieldDescription   = "description"
	FieldQuantity      = "quantity"
	FieldPricePerUnit  = "price_per_unit"
	FieldCostPrice     = "cost_price"
	FieldBasePrice     = "base_price"
	FieldUnit          = "unit"
	FieldMinStockLevel = "min_stock_level"
	FieldOwnerType     = "owner_type"
	FieldStatus        = "status"
	FieldAvailableFor  = "available_for"
	FieldImageURL      = "image_url"
	FieldTradeID       = "trade_id"
	FieldDate          = "date"
	FieldFarmerUID     = "farmer_uid"
	FieldRetailerUID   = "retailer_uid"
	FieldAmount        = "amount"
	FieldBuyerType     = "buyer_type"
	FieldSellerName    = "seller_name"
	FieldDetails       = "details"
	FieldUID           = "uid"
	FieldRole          = "role"
	FieldDivision      = "division"
	FieldDistrict      = "district"
	FieldSubDistrict   = "sub_district"
	FieldContact       = "contact"
	FieldAbout         = "about"
	FieldAvatarURL     = "avatar_url"
	FieldRating        = "rating"
	FieldJoinedDate    = "joined_date"
)

// Layout is the set of schemas for the four tables in one variant.
type Layout struct {
	Inventory    grid.Schema
	Products     grid.Schema
	TradeHistory grid.Schema
	Profiles     grid.Schema
	Variant      Variant
}

// LayoutFor returns the schemas of variant. Unknown variants get the legacy layout.
func LayoutFor(variant Variant) Layout {
	if variant == VariantTyped {
		return typedLayout
	}
	return legacyLayout
}

func col(header, field string, typ grid.ColumnType) grid.Column {
	return grid.Column{Header: header, Field: field, Type: typ}
}

var legacyLayout = Layout{
	Variant: VariantLegacy,
	Inventory: grid.Schema{
		Name: "inventory",
		Columns: []grid.Column{
			col("productId", FieldID, grid.Text),
			col("productName", FieldProductName, grid.Text),
			col("category", FieldCategory, grid.Text),
			col("quantity", FieldQuantity, grid.Number),
			col("listPrice", FieldPricePerUnit, grid.Money),
			col("costPrice", FieldCostPrice, grid.Money),
			{Header: "status", Field: FieldStatus, Type: grid.Text, Derived: true},
		},
	},
	Products: grid.Schema{
		Name: "products",
		Columns: []grid.Column{
			col("productId", FieldID, grid.Text),
			col("name", FieldName, grid.Text),
			col("category", FieldCategory, grid.Text),
			col("description", FieldDescription, grid.Text),
			col("price", FieldBasePrice, grid.Money),
			col("imageUrl", FieldImageURL, grid.Text),
		},
	},
	TradeHistory: grid.Schema{
		Name: "trade_history",
		Columns: []grid.Column{
			col("date", FieldDate, grid.Date),
			col("tradeId", FieldTradeID, grid.Text),
			col("farmerUid", FieldFarmerUID, grid.Text),
			col("retailerUid", FieldRetailerUID, grid.Text),
			col("amount", FieldAmount, grid.Money),
			col("status", FieldStatus, grid.Text),
			col("details", FieldDetails, grid.Text),
		},
	},
	Profiles: grid.Schema{
		Name: "profiles",
		Columns: []grid.Column{
			col("uid", FieldUID, grid.Text),
			col("name", FieldName, grid.Text),
			col("role", FieldRole, grid.Text),
			col("division", FieldDivision, grid.Text),
			col("district", FieldDistrict, grid.Text),
			col("subDistrict", FieldSubDistrict, grid.Text),
			col("contact", FieldContact, grid.Text),
			col("about", FieldAbout, grid.Text),
			col("avatarUrl", FieldAvatarURL, grid.Text),
		},
	},
}

var typedLayout = Layout{
	Variant: VariantTyped,
	Inventory: grid.Schema{
		Name: "inventory",
		Columns: []grid.Column{
			col("id", FieldID, grid.Text),
			col("product_id", FieldProductID, grid.Text),
			col("owner_id", FieldOwnerID, grid.Text),
			col("product_name", FieldProductName, grid.Text),
			col("category", FieldCategory, grid.Text),
			col("quantity", FieldQuantity, grid.Number),
			col("price_per_unit", FieldPricePerUnit, grid.Money),
			col("cost_price", FieldCostPrice, grid.Money),
			col("unit", FieldUnit, grid.Text),
			col("min_stock_level", FieldMinStockLevel, grid.Number),
			col("owner_type", FieldOwnerType, grid.Text),
		},
	},
	Products: grid.Schema{
		Name: "products",
		Columns: []grid.Column{
			col("id", FieldID, grid.Text),
			col("owner_id", FieldOwnerID, grid.Text),
			col("name", FieldName, grid.Text),
			col("category", FieldCategory, grid.Text),
			col("description", FieldDescription, grid.Text),
			col("base_price", FieldBasePrice, grid.Money),
			col("unit", FieldUnit, grid.Text),
			col("available_for", FieldAvailableFor, grid.Text),
			col("image_url", FieldImageURL, grid.Text),
		},
	},
	TradeHistory: grid.Schema{
		Name: "trade_history",
		Columns: []grid.Column{
			col("trade_id", FieldTradeID, grid.Text),
			col("date", FieldDate, grid.Date),
			col("farmer_uid", FieldFarmerUID, grid.Text),
			col("retailer_uid", FieldRetailerUID, grid.Text),
			col("product_name", FieldProductName, grid.Text),
			col("quantity", FieldQuantity, grid.Number),
			col("price_per_unit", FieldPricePerUnit, grid.Money),
			col("amount", FieldAmount, grid.Money),
			col("unit", FieldUnit, grid.Text),
			col("status", FieldStatus, grid.Text),
			col("buyer_type", FieldBuyerType, grid.Text),
			col("seller_name", FieldSellerName, grid.Text),
			col("details", FieldDetails, grid.Text),
		},
	},
	Profiles: grid.Schema{
		Name: "profiles",
		Columns: []grid.Column{
			col("uid", FieldUID, grid.Text),
			col("name", FieldName, grid.Text),
			col("role", FieldRole, grid.Text),
			col("division", FieldDivision, grid.Text),
			col("district", FieldDistrict, grid.Text),
			col("sub_district", FieldSubDistrict, grid.Text),
			col("contact", FieldContact, grid.Text),
			col("about", FieldAbout, grid.Text),
			col("avatar_url", FieldAvatarURL, grid.Text),
			col("rating", FieldRating, grid.Number),
			col("joined_date", FieldJoinedDate, grid.Date),
		},
	},
}
