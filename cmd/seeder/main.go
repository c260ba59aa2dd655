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


// Seeder loads a small demonstration dictionary and two sample policy
// documents into a database, then processes them. Useful for trying the
// CLI without preparing CSV files first.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/equilex/equilex"
	"github.com/equilex/equilex/core"
)

var concepts = []*core.Concept{
	{Id: 1, NameEN: "accessibility", NamePT: "acessibilidade"},
	{Id: 2, NameEN: "non-discrimination", NamePT: "não discriminação"},
	{Id: 3, NameEN: "participation", NamePT: "participação"},
	{Id: 4, NameEN: "capacity building", NamePT: "capacitação"},
	{Id: 5, NameEN: "quality", NamePT: "qualidade"},
}

var lexiconTerms = []*core.LexiconTerm{
	{ConceptID: 1, Lang: "en", Term: "ramp", Lemma: "ramp"},
	{ConceptID: 1, Lang: "en", Term: "wheelchair accessible", Lemma: "wheelchair accessible"},
	{ConceptID: 1, Lang: "en", Term: "braille", Lemma: "braille"},
	{ConceptID: 1, Lang: "pt", Term: "rampa", Lemma: "rampa"},
	{ConceptID: 2, Lang: "en", Term: "discrimination", Lemma: "discrimination"},
	{ConceptID: 2, Lang: "en", Term: "equal treatment", Lemma: "equal treatment"},
	{ConceptID: 3, Lang: "en", Term: "consultation", Lemma: "consultation"},
	{ConceptID: 3, Lang: "en", Term: "stakeholder", Lemma: "stakeholder"},
	{ConceptID: 4, Lang: "en", Term: "training", Lemma: "training"},
	{ConceptID: 5, Lang: "en", Term: "quality standard", Lemma: "quality standard"},
}

var keyPhrases = []*core.KeyPhrase{
	{ConceptID: 1, Lang: "en", Phrase: "wheelchair access"},
	{ConceptID: 1, Lang: "en", Phrase: "reasonable accommodation"},
	{ConceptID: 2, Lang: "en", Phrase: "on an equal basis"},
	{ConceptID: 3, Lang: "en", Phrase: "public consultation"},
	{ConceptID: 4, Lang: "en", Phrase: "staff training programme"},
}

var patternRules = []*core.PatternRule{
	{Lang: "en", LevelType: "promise", Pattern: `\b(we|the ministry|the government) (will|shall|commits? to)\b`},
	{Lang: "en", LevelType: "action", Pattern: `\b(has|have|was|were) (been )?(implemented|established|built|delivered)\b`},
	{Lang: "en", LevelType: "monitor", Pattern: `\b(annual|quarterly|periodic) (report|review|audit)s?\b`},
	{Lang: "en", LevelType: "monitor", Pattern: `\bprogress (is|will be) (tracked|monitored|measured)\b`},
	{
		Lang: "en", LevelType: "promise",
		Pattern:         `\bfunding (will|shall) be (allocated|provided)\b`,
		NegationPattern: `\b(no|not|without) funding\b`,
	},
}

var groups = []*core.Group{
	{Id: 1, NameEN: "wheelchair users", NamePT: "utilizadores de cadeira de rodas"},
	{Id: 2, NameEN: "children", NamePT: "crianças"},
	{Id: 3, NameEN: "older persons", NamePT: "pessoas idosas"},
	{Id: 4, NameEN: "refugees", NamePT: "refugiados"},
}

var groupTerms = []*core.GroupTerm{
	{GroupID: 1, Lang: "en", Term: "wheelchair users"},
	{GroupID: 1, Lang: "en", Term: "persons with reduced mobility"},
	{GroupID: 2, Lang: "en", Term: "children"},
	{GroupID: 2, Lang: "en", Term: "minors"},
	{GroupID: 3, Lang: "en", Term: "older persons"},
	{GroupID: 3, Lang: "en", Term: "elderly"},
	{GroupID: 4, Lang: "en", Term: "refugees"},
	{GroupID: 4, Lang: "en", Term: "asylum seekers"},
}

var sampleDocs = []struct {
	name string
	lang string
	text string
}{
	{
		name: "national-access-plan.txt",
		lang: "en",
		text: "All public buildings must provide wheelchair access. A ramp has been " +
			"built at every municipal office, and braille signage was installed in " +
			"the main library. The ministry will allocate funding for elevators in " +
			"schools attended by children with reduced mobility.\f" +
			"Progress is tracked through annual reports published by the oversight " +
			"board. A public consultation with wheelchair users and older persons " +
			"was held in March.",
	},
	{
		name: "education-strategy.txt",
		lang: "en",
		text: "The government commits to equal treatment of refugees in school " +
			"enrolment. Staff training programme modules on non-discrimination " +
			"have been delivered in all districts. Quality standards for classroom " +
			"materials will be reviewed through periodic audits.",
	},
}

var dbPath = flag.String("db", "./equilex_db", "database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	ctx := context.Background()

	db, err := equilex.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	store := db.Store()
	if err := store.UpsertConcepts(ctx, concepts...); err != nil {
		panic(err)
	}
	if err := store.UpsertLexiconTerms(ctx, lexiconTerms...); err != nil {
		panic(err)
	}
	if err := store.UpsertKeyPhrases(ctx, keyPhrases...); err != nil {
		panic(err)
	}
	if err := store.UpsertPatternRules(ctx, patternRules...); err != nil {
		panic(err)
	}
	if err := store.UpsertGroups(ctx, groups...); err != nil {
		panic(err)
	}
	if err := store.UpsertGroupTerms(ctx, groupTerms...); err != nil {
		panic(err)
	}
	slog.Info("dictionary seeded",
		"concepts", len(concepts),
		"terms", len(lexiconTerms),
		"phrases", len(keyPhrases),
		"rules", len(patternRules),
		"groups", len(groups))

	p, err := db.NewPipeline()
	if err != nil {
		panic(err)
	}
	defer p.Release()

	for _, sample := range sampleDocs {
		doc, err := p.Ingest(ctx, sample.name, sample.lang, sample.text)
		if err != nil {
			slog.Error("ingest failed", "doc", sample.name, "err", err)
			continue
		}
		summary, err := p.ProcessDocument(ctx, doc.Id)
		if err != nil {
			slog.Error("processing failed", "doc", sample.name, "err", err)
			continue
		}
		slog.Info("document processed",
			"doc", summary.DocName,
			"sentences", summary.Sentences,
			"evidences", summary.Evidences,
			"concepts_covered", summary.ConceptsCovered,
			"groups_covered", summary.GroupsCovered)
	}
}
