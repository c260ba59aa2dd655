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


package segment

import (
	"context"
	"strings"

	"github.com/equilex/equilex/core"
)

// Segmenter splits one page of extracted text into sentences with lemma
// text. Implementations must be thread-safe for concurrent use.
//
// The returned sentences have Lang, Text, LemmaText and Index (position
// within the page) set; the caller fills in DocID and Page.
type Segmenter interface {
	// SegmentPage splits page text into ordered sentences. An empty or
	// whitespace-only page yields an empty slice, not an error.
	SegmentPage(ctx context.Context, text, lang string) ([]core.Sentence, error)
}

// Pages splits full document text into per-page texts on form feeds.
// Text without form feeds is a single page. Page numbers are 1-based.
func Pages(text string) []string {
	return strings.Split(text, "\f")
}
