package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is used to assign
// stable IDs to company records that arrive without one.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeValue lowercases a display value and collapses internal whitespace
// to underscores, producing the canonical form used for filter option values
// and membership checks.
func NormalizeValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// DenormalizeValue converts a normalized value back to its space-separated form.
func DenormalizeValue(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// Address is a company's postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Industry classifies a company's line of business.
type Industry struct {
	PrimaryIndustry string   `json:"primaryIndustry,omitempty"`
	SubIndustries   []string `json:"subIndustries,omitempty"`
}

// WeldingCapability describes a company's welding capacity.
type WeldingCapability struct {
	MinThickness float64  `json:"minThickness,omitempty"`
	MaxThickness float64  `json:"maxThickness,omitempty"`
	Types        []string `json:"types,omitempty"`
}

// CuttingCapability describes a company's cutting capacity.
type CuttingCapability struct {
	Types        []string `json:"types,omitempty"`
	MaxThickness float64  `json:"maxThickness,omitempty"`
}

// BendingCapability describes a company's bending capacity.
type BendingCapability struct {
	MaxLength    float64 `json:"maxLength,omitempty"`
	MaxThickness float64 `json:"maxThickness,omitempty"`
}

// PipeCapability describes a company's pipe fabrication capacity.
type PipeCapability struct {
	MinDiameter float64  `json:"minDiameter,omitempty"`
	MaxDiameter float64  `json:"maxDiameter,omitempty"`
	Materials   []string `json:"materials,omitempty"`
}

// MachiningCapability describes a company's machining capacity.
type MachiningCapability struct {
	MaxLength   float64 `json:"maxLength,omitempty"`
	MaxDiameter float64 `json:"maxDiameter,omitempty"`
	Tolerance   float64 `json:"tolerance,omitempty"`
}

// Capabilities holds a company's manufacturing capabilities. Processes and
// Materials are ordered lists of display names; the remaining fields carry
// per-process attributes when known.
type Capabilities struct {
	Processes []string             `json:"processes,omitempty"`
	Materials []string             `json:"materials,omitempty"`
	Welding   *WeldingCapability   `json:"welding,omitempty"`
	Cutting   *CuttingCapability   `json:"cutting,omitempty"`
	Bending   *BendingCapability   `json:"bending,omitempty"`
	Pipes     *PipeCapability      `json:"pipes,omitempty"`
	Machining *MachiningCapability `json:"machining,omitempty"`
}

// Keys returns the names of the top-level capability fields that are present.
// Each key contributes at most once, which is what the analytics ledger counts
// per contact event.
func (c *Capabilities) Keys() []string {
	if c == nil {
		return nil
	}
	var keys []string
	if len(c.Processes) > 0 {
		keys = append(keys, "processes")
	}
	if len(c.Materials) > 0 {
		keys = append(keys, "materials")
	}
	if c.Welding != nil {
		keys = append(keys, "welding")
	}
	if c.Cutting != nil {
		keys = append(keys, "cutting")
	}
	if c.Bending != nil {
		keys = append(keys, "bending")
	}
	if c.Pipes != nil {
		keys = append(keys, "pipes")
	}
	if c.Machining != nil {
		keys = append(keys, "machining")
	}
	return keys
}

// Provenance records where a company record came from and how trustworthy it is.
type Provenance struct {
	Name        string    `json:"name,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"` // in [0,1]
	RetrievedAt time.Time `json:"retrievedAt,omitzero"`
}

// Company is a single directory entry. Records are immutable for the duration
// of a session once loaded; scoring attaches relevance through SearchResult
// rather than mutating the record.
type Company struct {
	ID             string        `json:"id"`
	CVR            string        `json:"cvr,omitempty"` // central business register number
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Address        *Address      `json:"address,omitempty"`
	Phone          string        `json:"phone,omitempty"`
	Email          string        `json:"email,omitempty"`
	Website        string        `json:"website,omitempty"`
	Industry       *Industry     `json:"industry,omitempty"`
	Capabilities   *Capabilities `json:"capabilities,omitempty"`
	Certifications []string      `json:"certifications,omitempty"`
	Employees      string        `json:"employees,omitempty"`
	Founded        int           `json:"founded,omitempty"`
	Source         *Provenance   `json:"source,omitempty"`
}

// FilterType identifies the input widget a filter parameter renders as.
// The set is closed; ValidateFilterType rejects anything else.
type FilterType string

const (
	// FilterTypeRange is a numeric min/max pair.
	FilterTypeRange FilterType = "range"
	// FilterTypeSelect is a single-choice dropdown.
	FilterTypeSelect FilterType = "select"
	// FilterTypeMultiSelect is a multi-choice checkbox group.
	FilterTypeMultiSelect FilterType = "multiselect"
	// FilterTypeBoolean is an on/off toggle.
	FilterTypeBoolean FilterType = "boolean"
)

// FilterOption is a selectable value for select and multiselect parameters.
// Value is the normalized form, Label the original display text.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterParameter is a single selectable filter definition. Parameters are
// created by discovery from catalog data or seeded statically, and merged
// (options appended, occurrences incremented) when rediscovered.
type FilterParameter struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Type        FilterType     `json:"type"`
	Unit        string         `json:"unit,omitempty"`
	Min         float64        `json:"min,omitempty"`
	Max         float64        `json:"max,omitempty"`
	Step        float64        `json:"step,omitempty"`
	Options     []FilterOption `json:"options,omitempty"`
	Category    string         `json:"category,omitempty"`
	Occurrences int            `json:"occurrences,omitempty"`
	AddedAt     time.Time      `json:"addedAt,omitzero"`
}

// Clone returns a deep copy of the parameter.
func (p *FilterParameter) Clone() *FilterParameter {
	cp := *p
	if p.Options != nil {
		cp.Options = make([]FilterOption, len(p.Options))
		copy(cp.Options, p.Options)
	}
	return &cp
}

// HasOption reports whether the parameter already carries an option with the
// given normalized value.
func (p *FilterParameter) HasOption(value string) bool {
	for _, opt := range p.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// FilterSet is the persisted registry snapshot: the evolving list of filter
// parameters plus a usage popularity map.
type FilterSet struct {
	Parameters  []*FilterParameter `json:"parameters"`
	Popularity  map[string]int     `json:"popularity"`
	LastUpdated time.Time          `json:"lastUpdated,omitzero"`
}

// NewFilterSet returns an empty filter set.
func NewFilterSet() *FilterSet {
	return &FilterSet{Popularity: make(map[string]int)}
}

// Clone returns a deep copy of the filter set.
func (fs *FilterSet) Clone() *FilterSet {
	cp := &FilterSet{
		Parameters:  make([]*FilterParameter, len(fs.Parameters)),
		Popularity:  make(map[string]int, len(fs.Popularity)),
		LastUpdated: fs.LastUpdated,
	}
	for i, p := range fs.Parameters {
		cp.Parameters[i] = p.Clone()
	}
	for k, v := range fs.Popularity {
		cp.Popularity[k] = v
	}
	return cp
}

// Find returns the parameter with the given id, or nil.
func (fs *FilterSet) Find(id string) *FilterParameter {
	for _, p := range fs.Parameters {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FilterSelection is a user's selection for one filter parameter. Which fields
// are populated depends on the parameter type: Min/Max for range, Values for
// select (one entry) and multiselect, Enabled for boolean.
type FilterSelection struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Values  []string `json:"values,omitempty"`
	Enabled bool     `json:"enabled,omitempty"`
}

// SearchRequest is a single search invocation. Distance is accepted but not
// evaluated against any geodesic computation.
type SearchRequest struct {
	Query    string                     `json:"query"`
	Filters  map[string]FilterSelection `json:"filters,omitempty"`
	Location string                     `json:"location,omitempty"`
	Distance int                        `json:"distance,omitempty"`
	Page     int                        `json:"page"`
	Limit    int                        `json:"limit"`
}

// SearchResult pairs a company with its relevance score in [0,100].
type SearchResult struct {
	Company *Company `json:"company"`
	Score   int      `json:"score"`
}

// SearchEvent records one search invocation for analytics.
type SearchEvent struct {
	Query       string                     `json:"query"`
	Filters     map[string]FilterSelection `json:"filters,omitempty"`
	ResultCount int                        `json:"resultCount"`
	Timestamp   time.Time                  `json:"timestamp"`
}

// ClickEvent records a user opening a company from the result list.
type ClickEvent struct {
	CompanyID string    `json:"companyId"`
	Query     string    `json:"query,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactEvent records a user contacting a company. It carries a snapshot of
// the company's capabilities at contact time; this is the conversion signal
// that feeds filter prioritization.
type ContactEvent struct {
	CompanyID    string        `json:"companyId"`
	Capabilities *Capabilities `json:"capabilities,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Ledger is the persisted analytics state: bounded event logs plus the
// derived per-capability success counts.
type Ledger struct {
	Searches         []SearchEvent  `json:"searches"`
	Clicks           []ClickEvent   `json:"clicks"`
	Contacts         []ContactEvent `json:"contacts"`
	ParameterSuccess map[string]int `json:"parameterSuccess"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ParameterSuccess: make(map[string]int)}
}

// ParameterScore is one entry of the ranked success scores.
type ParameterScore struct {
	Param string `json:"param"`
	Score int    `json:"score"`
}

// HistoryEntry records one search in the user-visible history.
type HistoryEntry struct {
	Query     string                     `json:"query"`
	Filters   map[string]FilterSelection `json:"filters,omitempty"`
	Location  string                     `json:"location,omitempty"`
	Distance  int                        `json:"distance,omitempty"`
	Timestamp time.Time                  `json:"timestamp"`
}

// Preferences holds per-user settings.
type Preferences struct {
	Theme           string `json:"theme"`
	DefaultLocation string `json:"defaultLocation,omitempty"`
	DefaultDistance int    `json:"defaultDistance,omitempty"`
}

// DefaultPreferences returns the preferences used when none are stored.
func DefaultPreferences() *Preferences {
	return &Preferences{Theme: "light"}
}
