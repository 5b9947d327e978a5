package domain

// Canonical field names of the licence-record schema. The normalizer maps
// bulletin columns onto these; the validator and exports consume them.
const (
	FieldLicenceNumber    = "licence_number"
	FieldGrantDate        = "grant_date"
	FieldHolderName       = "holder_name"
	FieldLicensedName     = "licensed_name"
	FieldActiveIngredient = "active_ingredient"
	FieldQuantity         = "quantity"
	FieldUnits            = "units"
	FieldLegalStatus      = "legal_status"
	FieldTerritory        = "territory"
	FieldWorkType         = "work_type"
	FieldAuthStatus       = "auth_status"
)
