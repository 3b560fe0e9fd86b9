package mixin

// DataSource records whether an object describes recorded or simulated
// events. The zero value is simulated (MC).
type DataSource struct {
	isData bool
}

// NewDataSource creates a DataSource with the given classification.
func NewDataSource(isData bool) DataSource {
	return DataSource{isData: isData}
}

// IsData reports whether the object describes recorded events.
func (d *DataSource) IsData() bool {
	return d.isData
}

// IsMC reports whether the object describes simulated events.
func (d *DataSource) IsMC() bool {
	return !d.isData
}

// SetIsData marks the object as recorded data.
func (d *DataSource) SetIsData() {
	d.isData = true
}

// SetIsMC marks the object as simulated.
func (d *DataSource) SetIsMC() {
	d.isData = false
}

// Source returns "data" or "mc".
func (d *DataSource) Source() string {
	if d.isData {
		return "data"
	}
	return "mc"
}
