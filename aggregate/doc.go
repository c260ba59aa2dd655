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


// Package aggregate rolls a document's evidences up into derived aggregates.
//
// One RecomputeDoc call rebuilds, from scratch, the document's per-concept
// scores (best level and evidence count), its group mention counts, the
// concept-group co-occurrence matrix (counted once per snippet), and the
// coverage indices with their percentages over the concept catalog. Manual
// overrides floor the final level used for the quality index but are never
// written by aggregation, so they survive every rebuild.
//
// A document without evidences gets all-zero indices and empty aggregates
// rather than stale rows.
package aggregate
