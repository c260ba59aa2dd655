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


// Package pipeline orchestrates document processing end to end.
//
// Ingest registers a document and segments its text into stored sentences
// (status parsed). ProcessDocument then matches every sentence against the
// cached dictionary index, stores the resulting evidences (deduplicated by
// content so reruns are idempotent) and recomputes the document's
// aggregates (status processed). A failure at any stage marks the document
// error with the cause recorded and surfaces the error to the caller.
//
// ProcessBatch fans parsed documents out over a worker pool; one failing
// document does not stop the batch. A RunMonitor can observe each stage.
package pipeline
