package registry

// Reader provides read-only access to the registry tables. Reads are pure
// and may run concurrently with unrelated reconciliation batches.
type Reader interface {
	// Canonical entity lookups
	Utility(id UtilityID) (Utility, error)
	Plant(id PlantID) (Plant, error)
	Utilities() *Utilities
	Plants() *Plants

	// Source record lookups
	SourceUtility(source SourceID, sourceID int) (SourceUtility, error)
	SourcePlant(key SourcePlantKey) (SourcePlant, error)
	SourceUtilities(source SourceID) []SourceUtility
	SourcePlants(source SourceID) []SourcePlant
	SourceUtilitiesFor(canonical UtilityID) []SourceUtility
	SourcePlantsFor(canonical PlantID) []SourcePlant

	// Association queries
	Associated(utilityID UtilityID, plantID PlantID) bool
	UtilitiesForPlant(plantID PlantID) []UtilityID
	PlantsForUtility(utilityID UtilityID) []PlantID
	Associations() []Association
}

// Writer is the contract the reconciliation engine writes its decisions
// through: canonical entity minting plus source-record linkage.
type Writer interface {
	UpsertUtility(name string) (UtilityID, error)
	UpsertPlant(name string) (PlantID, error)
	LinkSourceUtility(source SourceID, sourceID int, name string, canonical UtilityID, opts ...LinkOption) error
	LinkFERC1Plant(utilityID int, name string, canonical PlantID, opts ...LinkOption) error
	LinkEIA923Plant(plantID int, name string, canonical PlantID, opts ...LinkOption) error
}

// Associator records and queries utility-plant association facts.
type Associator interface {
	RecordAssociation(utilityID UtilityID, plantID PlantID) error
	UtilitiesForPlant(plantID PlantID) []UtilityID
	PlantsForUtility(utilityID UtilityID) []PlantID
}
