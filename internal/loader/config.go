package loader

import (
	"fmt"

	"catalog-reconciliation-service/internal/models"
)

// DisabledColumn marks an optional column as absent from the source layout
const DisabledColumn = -1

// ERPMapping fixes the column positions of the internal catalog export.
// Positions are 0-based and follow the legacy export layout by default;
// they stay configurable because the export format is position-bound, not
// header-bound. Badge columns are optional and can be disabled.
type ERPMapping struct {
	BadgeCode        int  `mapstructure:"badge_code"`
	BadgeDescription int  `mapstructure:"badge_description"`
	Code             int  `mapstructure:"code"`
	PublicPrice      int  `mapstructure:"public_price"`
	CostPrice        int  `mapstructure:"cost_price"`
	HasHeader        bool `mapstructure:"has_header"`
}

// DefaultERPMapping returns the extended catalog layout including badge columns
func DefaultERPMapping() *ERPMapping {
	return &ERPMapping{
		BadgeCode:        0,
		BadgeDescription: 2,
		Code:             18,
		PublicPrice:      14,
		CostPrice:        20,
		HasHeader:        true,
	}
}

// MinimalERPMapping returns the layout without badge columns
func MinimalERPMapping() *ERPMapping {
	m := DefaultERPMapping()
	m.BadgeCode = DisabledColumn
	m.BadgeDescription = DisabledColumn
	return m
}

// HasBadgeFields reports whether badge columns are part of the layout
func (m *ERPMapping) HasBadgeFields() bool {
	return m.BadgeCode != DisabledColumn && m.BadgeDescription != DisabledColumn
}

// Validate checks the mapping for usable column positions
func (m *ERPMapping) Validate() error {
	required := map[string]int{
		"code":         m.Code,
		"public_price": m.PublicPrice,
		"cost_price":   m.CostPrice,
	}
	for field, index := range required {
		if index < 0 {
			return fmt.Errorf("erp mapping: column index for %s cannot be negative", field)
		}
	}

	if (m.BadgeCode == DisabledColumn) != (m.BadgeDescription == DisabledColumn) {
		return fmt.Errorf("erp mapping: badge code and badge description must be enabled together")
	}
	if m.BadgeCode < DisabledColumn || m.BadgeDescription < DisabledColumn {
		return fmt.Errorf("erp mapping: badge column indexes cannot be below %d", DisabledColumn)
	}

	return nil
}

// MaxIndex returns the highest column position the mapping references
func (m *ERPMapping) MaxIndex() int {
	max := m.Code
	for _, index := range []int{m.PublicPrice, m.CostPrice, m.BadgeCode, m.BadgeDescription} {
		if index > max {
			max = index
		}
	}
	return max
}

// PublicMapping fixes the column positions of the supplier public-price list
type PublicMapping struct {
	Code        int  `mapstructure:"code"`
	Description int  `mapstructure:"description"`
	PublicPrice int  `mapstructure:"public_price"`
	HasHeader   bool `mapstructure:"has_header"`
}

// DefaultPublicMapping returns the standard supplier public list layout
func DefaultPublicMapping() *PublicMapping {
	return &PublicMapping{
		Code:        0,
		Description: 1,
		PublicPrice: 2,
		HasHeader:   true,
	}
}

// Validate checks the mapping for usable column positions
func (m *PublicMapping) Validate() error {
	required := map[string]int{
		"code":         m.Code,
		"description":  m.Description,
		"public_price": m.PublicPrice,
	}
	for field, index := range required {
		if index < 0 {
			return fmt.Errorf("public mapping: column index for %s cannot be negative", field)
		}
	}
	return nil
}

// MaxIndex returns the highest column position the mapping references
func (m *PublicMapping) MaxIndex() int {
	max := m.Code
	for _, index := range []int{m.Description, m.PublicPrice} {
		if index > max {
			max = index
		}
	}
	return max
}

// CostMapping fixes the column positions of the supplier cost-price list
type CostMapping struct {
	Code      int  `mapstructure:"code"`
	CostPrice int  `mapstructure:"cost_price"`
	HasHeader bool `mapstructure:"has_header"`
}

// DefaultCostMapping returns the standard supplier cost list layout
func DefaultCostMapping() *CostMapping {
	return &CostMapping{
		Code:      0,
		CostPrice: 9,
		HasHeader: true,
	}
}

// Validate checks the mapping for usable column positions
func (m *CostMapping) Validate() error {
	if m.Code < 0 {
		return fmt.Errorf("cost mapping: column index for code cannot be negative")
	}
	if m.CostPrice < 0 {
		return fmt.Errorf("cost mapping: column index for cost_price cannot be negative")
	}
	return nil
}

// MaxIndex returns the highest column position the mapping references
func (m *CostMapping) MaxIndex() int {
	if m.CostPrice > m.Code {
		return m.CostPrice
	}
	return m.Code
}

// Mappings bundles the per-source column mappings for one analysis run
type Mappings struct {
	ERP    *ERPMapping    `mapstructure:"erp"`
	Public *PublicMapping `mapstructure:"public"`
	Cost   *CostMapping   `mapstructure:"cost"`
}

// DefaultMappings returns mappings matching the legacy fixed positions
func DefaultMappings() *Mappings {
	return &Mappings{
		ERP:    DefaultERPMapping(),
		Public: DefaultPublicMapping(),
		Cost:   DefaultCostMapping(),
	}
}

// Validate validates every per-source mapping
func (m *Mappings) Validate() error {
	if m.ERP == nil || m.Public == nil || m.Cost == nil {
		return fmt.Errorf("mappings for all source kinds must be set")
	}
	if err := m.ERP.Validate(); err != nil {
		return err
	}
	if err := m.Public.Validate(); err != nil {
		return err
	}
	return m.Cost.Validate()
}

// Diagnostic records one recovered cleaning fallback. Unparsable money
// cells default to zero instead of failing the run; each such recovery is
// observable here.
type Diagnostic struct {
	Source  models.SourceKind `json:"source"`
	Row     int               `json:"row"`
	Column  int               `json:"column"`
	Field   string            `json:"field"`
	Value   string            `json:"value"`
	Message string            `json:"message"`
}

// String returns a human-readable representation of the diagnostic
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s row %d col %d (%s='%s'): %s",
		d.Source, d.Row, d.Column, d.Field, d.Value, d.Message)
}

// Diagnostics is the ordered list of recoveries from one extraction
type Diagnostics []Diagnostic

// Add appends a diagnostic entry
func (ds *Diagnostics) Add(source models.SourceKind, row, column int, field, value, message string) {
	*ds = append(*ds, Diagnostic{
		Source:  source,
		Row:     row,
		Column:  column,
		Field:   field,
		Value:   value,
		Message: message,
	})
}
