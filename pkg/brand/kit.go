package brand

import (
	docstate "github.com/goliatone/go-docstate"
)

// StorageKey is the persistence key for the brand kit document.
const StorageKey = "brandKit"

// assetKeyPrefix namespaces raw asset records (logo bytes) away from
// document keys.
const assetKeyPrefix = "brandAsset/"

// Palette is the brand colour set, as #rrggbb values.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Kit is the brand document: the logo reference plus the palette and type
// choices every document view renders with.
type Kit struct {
	LogoAssetID string  `json:"logoAssetId"`
	Palette     Palette `json:"palette"`
	FontFamily  string  `json:"fontFamily"`
}

// Asset is one stored binary asset (the logo). Data is base64-encoded on the
// wire by the JSON codec.
type Asset struct {
	ID   string `json:"id"`
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// DefaultKit returns the starter brand.
func DefaultKit() Kit {
	return Kit{
		Palette: Palette{
			Primary:    "#1f2a44",
			Secondary:  "#4a5a80",
			Accent:     "#e2a33d",
			Background: "#ffffff",
			Text:       "#14161a",
		},
		FontFamily: "Inter",
	}
}

var kitRules = []docstate.Rule{
	{Field: "palette.primary", Expr: `call("matches", palette.primary, "^#[0-9a-fA-F]{6}$")`, Message: "colours must be #rrggbb values"},
	{Field: "palette.secondary", Expr: `call("matches", palette.secondary, "^#[0-9a-fA-F]{6}$")`, Message: "colours must be #rrggbb values"},
	{Field: "palette.accent", Expr: `call("matches", palette.accent, "^#[0-9a-fA-F]{6}$")`, Message: "colours must be #rrggbb values"},
	{Field: "palette.background", Expr: `call("matches", palette.background, "^#[0-9a-fA-F]{6}$")`, Message: "colours must be #rrggbb values"},
	{Field: "palette.text", Expr: `call("matches", palette.text, "^#[0-9a-fA-F]{6}$")`, Message: "colours must be #rrggbb values"},
}

// KitSchema requires a complete palette of #rrggbb colours.
func KitSchema() docstate.Schema[Kit] {
	return docstate.NewRuleSchema(
		docstate.NewStructSchema[Kit](
			docstate.StructRequired[Kit]("palette"),
		),
		kitRules,
		docstate.RuleWithFunctionRegistry[Kit](docstate.DefaultFunctionRegistry()),
		docstate.RuleWithKey[Kit](StorageKey),
	)
}

func assetKey(id string) string {
	return assetKeyPrefix + id
}
