// Copyright 2025 Equilex Authors
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
	// ErrInvalidEvidence indicates an Evidence failed validation.
	ErrInvalidEvidence = errors.New("invalid evidence")

	// ErrInvalidLexiconTerm indicates a LexiconTerm failed validation.
	ErrInvalidLexiconTerm = errors.New("invalid lexicon term")

	// ErrInvalidKeyPhrase indicates a KeyPhrase failed validation.
	ErrInvalidKeyPhrase = errors.New("invalid key phrase")

	// ErrInvalidPatternRule indicates a PatternRule failed validation.
	ErrInvalidPatternRule = errors.New("invalid pattern rule")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidLevel indicates a level outside the 1-4 range.
	ErrInvalidLevel = errors.New("level must be between 1 and 4")

	// ErrEmptySnippet indicates the evidence snippet is empty.
	ErrEmptySnippet = errors.New("snippet cannot be empty")

	// ErrEmptyTerm indicates the dictionary term is empty.
	ErrEmptyTerm = errors.New("term cannot be empty")

	// ErrEmptyPattern indicates the pattern rule regex is empty.
	ErrEmptyPattern = errors.New("pattern cannot be empty")

	// ErrEmptyDocName indicates the document name is empty.
	ErrEmptyDocName = errors.New("document name cannot be empty")

	// ErrMissingConcept indicates a dictionary row without a concept reference.
	ErrMissingConcept = errors.New("concept id is required")
)
