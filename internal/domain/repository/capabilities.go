package repository

// DataSourceCapabilities describes which optional tables and columns exist in
// the ledger schema. It is resolved once at startup; components that depend
// on optional sources degrade to zero or estimated values instead of probing
// schema metadata per call or failing.
type DataSourceCapabilities struct {
	// HasSaleStatus is true when the sales table carries a status column,
	// enabling revenue filters on completed sales
	HasSaleStatus bool
	HasExpenses   bool
	HasEmployees  bool
	HasAccounts   bool
}

// FullCapabilities reports every data source as present, the normal state
// after auto-migration.
func FullCapabilities() DataSourceCapabilities {
	return DataSourceCapabilities{
		HasSaleStatus: true,
		HasExpenses:   true,
		HasEmployees:  true,
		HasAccounts:   true,
	}
}
