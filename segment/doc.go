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


// Package segment splits extracted document text into pages and sentences.
//
// Pages cuts full document text on form feeds. A Segmenter then turns each
// page into ordered sentences carrying both the raw text and a lemma text
// used by the lexical matching pass.
//
// The built-in Naive segmenter splits on sentence-final punctuation and
// blank lines and approximates lemmas by lowercasing tokens; it pre-chunks
// oversized pages with a recursive character splitter. A proper linguistic
// pipeline can replace it by implementing the Segmenter interface, and the
// mock subpackage provides a test double.
package segment
