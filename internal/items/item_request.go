package items

type InventoryQuery struct {
	Location string `form:"location" binding:"required"`
	LDAP     string `form:"ldap"`
}

type SearchQuery struct {
	Q        string `form:"q" binding:"required"`
	Location string `form:"location"`
}

type ItemURI struct {
	ItemID int `uri:"item_id" binding:"required"`
}
