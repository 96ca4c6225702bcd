// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
)

// ValidateCompany validates a Company according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Source confidence, when present, must be in [0,1]
//
// NOT validated (populated by the catalog loader):
//   - ID (assigned from content hash when missing)
//   - Capabilities and certifications (may be empty)
func ValidateCompany(company *Company) error {
	if company == nil {
		return fmt.Errorf("%w: company is nil", ErrInvalidCompany)
	}

	if company.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, ErrEmptyCompanyName)
	}

	if company.Source != nil {
		if company.Source.Confidence < 0 || company.Source.Confidence > 1 {
			return fmt.Errorf("%w: %w: %v", ErrInvalidCompany, ErrInvalidConfidence, company.Source.Confidence)
		}
	}

	return nil
}

// ValidateFilterParameter validates a FilterParameter according to domain rules.
//
// Validation rules:
//   - ID and Label must not be empty
//   - Type must be one of the closed set
//   - Range parameters must have min <= max
//   - Select and multiselect option values must be unique within the parameter
//
// NOT validated (populated by the registry on merge):
//   - Occurrences and AddedAt
func ValidateFilterParameter(param *FilterParameter) error {
	if param == nil {
		return fmt.Errorf("%w: parameter is nil", ErrInvalidParameter)
	}

	if param.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, ErrEmptyParameterID)
	}

	if param.Label == "" {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, ErrEmptyParameterLabel)
	}

	switch param.Type {
	case FilterTypeRange:
		if param.Max != 0 && param.Min > param.Max {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, ErrInvalidRange)
		}
	case FilterTypeSelect, FilterTypeMultiSelect:
		seen := make(map[string]bool, len(param.Options))
		for _, opt := range param.Options {
			if seen[opt.Value] {
				return fmt.Errorf("%w: %w: %q", ErrInvalidParameter, ErrDuplicateOptionValue, opt.Value)
			}
			seen[opt.Value] = true
		}
	case FilterTypeBoolean:
		// No type-specific metadata to check.
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidParameter, ErrUnknownFilterType, param.Type)
	}

	return nil
}

// ValidateFilterType validates that a FilterType has a valid value.
func ValidateFilterType(ft FilterType) error {
	switch ft {
	case FilterTypeRange, FilterTypeSelect, FilterTypeMultiSelect, FilterTypeBoolean:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilterType, ft)
	}
}
