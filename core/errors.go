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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCompany indicates a Company failed validation.
	ErrInvalidCompany = errors.New("invalid company")

	// ErrInvalidParameter indicates a FilterParameter failed validation.
	ErrInvalidParameter = errors.New("invalid filter parameter")

	// ErrEmptyCompanyName indicates the company Name field is empty.
	ErrEmptyCompanyName = errors.New("company name cannot be empty")

	// ErrInvalidConfidence indicates a provenance confidence outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be in [0,1]")

	// ErrEmptyParameterID indicates the parameter ID field is empty.
	ErrEmptyParameterID = errors.New("parameter id cannot be empty")

	// ErrEmptyParameterLabel indicates the parameter Label field is empty.
	ErrEmptyParameterLabel = errors.New("parameter label cannot be empty")

	// ErrUnknownFilterType indicates a FilterType outside the closed set.
	ErrUnknownFilterType = errors.New("unknown filter type")

	// ErrInvalidRange indicates a range parameter with min greater than max.
	ErrInvalidRange = errors.New("range min cannot exceed max")

	// ErrDuplicateOptionValue indicates two options sharing a normalized value.
	ErrDuplicateOptionValue = errors.New("duplicate option value")
)
