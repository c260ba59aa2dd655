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


// Package match turns a single sentence into scored concept candidates.
//
// MatchSentence runs three passes over a dictionary index: lexicon terms
// (whole-token containment on lemmatized text, with a fuzzy partial-ratio
// fallback on the raw text), key phrases (case-insensitive substring), and
// compiled pattern rules. Pattern hits without a concept borrow the
// strongest concept found by the lexical passes, or are discarded when the
// sentence produced none. Candidates are then merged so each concept keeps
// only its best-scoring hit.
//
// A non-negation rule whose negation pattern also fires keeps its level but
// has its score multiplied by the configured dampening factor.
//
// All constants of the confidence formula live in Scoring; DefaultScoring
// gives the standard values and LoadScoring applies YAML overrides.
package match
