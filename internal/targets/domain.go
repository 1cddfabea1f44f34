package targets

import "time"

// Known catalogs and account types. The progress calculators accumulate only
// these keys; anything else in the store is dropped in this path. The DSR
// aggregator intentionally does the opposite.
const (
	CatalogArtvio   = "Artvio"
	CatalogWoodrica = "Woodrica"
	CatalogArtis    = "Artis"

	AccountDistributor = "distributor"
	AccountDealer      = "dealer"
	AccountArchitect   = "architect"
	AccountOEM         = "OEM"
	AccountRetailer    = "retailer"
)

// KnownCatalogs lists the catalogs a target can be set against.
func KnownCatalogs() []string {
	return []string{CatalogArtvio, CatalogWoodrica, CatalogArtis}
}

// KnownAccountTypes lists the account types a visit target can be set against.
func KnownAccountTypes() []string {
	return []string{AccountDistributor, AccountDealer, AccountArchitect, AccountOEM, AccountRetailer}
}

// Target is one rep's goals for one month, keyed {userId}_{month}. Nil map
// values mean "no target set for that dimension", which is different from a
// zero target; target-setting upstream rejects values <= 0.
type Target struct {
	ID                   string          `bson:"_id"`
	UserID               string          `bson:"userId"`
	Month                string          `bson:"month"`
	TargetsByCatalog     map[string]*int `bson:"targetsByCatalog,omitempty"`
	TargetsByAccountType map[string]*int `bson:"targetsByAccountType,omitempty"`
	AutoRenew            bool            `bson:"autoRenew"`
	SourceTargetID       *string         `bson:"sourceTargetId,omitempty"`
	CreatedBy            string          `bson:"createdBy"`
	CreatedByName        string          `bson:"createdByName"`
	CreatedAt            time.Time       `bson:"createdAt"`
	UpdatedAt            time.Time       `bson:"updatedAt"`
}

// TargetID builds the deterministic document id for a rep and month.
func TargetID(userID, month string) string {
	return userID + "_" + month
}

// Progress is one computed achieved-vs-target row. Dimension holds the
// catalog or account type. Dimensions without a set target get no row.
type Progress struct {
	Dimension  string `json:"dimension"`
	Target     int    `json:"target"`
	Achieved   int    `json:"achieved"`
	Percentage int    `json:"percentage"`
}
