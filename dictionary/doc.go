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


// Package dictionary builds fast in-memory match indexes from the stored
// dictionary and keeps them fresh.
//
// The Index is an immutable snapshot partitioned by language: lexicon terms,
// key phrases and compiled pattern rules each live in per-language buckets,
// with an empty-language wildcard bucket appended to every lookup. Pattern
// regexes are compiled once at build time with case-insensitive multiline
// flags; rules that fail to compile are logged and dropped.
//
// The Cache wraps a store and rebuilds the Index whenever the store-side
// dictionary version moves, so long-running pipelines pick up dictionary
// syncs without restarting.
//
// The Syncer loads dictionary CSV files (concepts, lexicon terms, key
// phrases, pattern rules, groups, group terms), classified by file name,
// with per-row tolerance and deterministic content-hash IDs for rows that
// carry none.
package dictionary
