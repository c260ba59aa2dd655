package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// CSV row shapes. Everything is a string so one malformed cell skips a row
// instead of failing the file.
type conceptRow struct {
	ID           string `csv:"id"`
	ConceptID    string `csv:"concept_id"` // id alias
	NameEN       string `csv:"concept_name_en"`
	NameENAlt    string `csv:"name_en"` // name aliases seen in older exports
	Name         string `csv:"name"`
	ConceptName  string `csv:"concept_name"`
	NamePT       string `csv:"concept_name_pt"`
	NamePTAlt    string `csv:"name_pt"`
	DefinitionEN string `csv:"definition_en"`
	DefinitionPT string `csv:"definition_pt"`
}

type lexiconRow struct {
	ConceptID string `csv:"concept_id"`
	Lang      string `csv:"lang"`
	Term      string `csv:"term"`
	Lemma     string `csv:"lemma"`
	Weight    string `csv:"weight"`
	Priority  string `csv:"priority"`
	SourceRef string `csv:"source_ref"`
	Source    string `csv:"source"`
}

type phraseRow struct {
	ConceptID string `csv:"concept_id"`
	Lang      string `csv:"lang"`
	Phrase    string `csv:"phrase"`
	Weight    string `csv:"weight"`
	Priority  string `csv:"priority"`
	SourceRef string `csv:"source_ref"`
	Source    string `csv:"source"`
}

type ruleRow struct {
	ID              string `csv:"id"`
	Lang            string `csv:"lang"`
	LevelType       string `csv:"level_type"`
	Pattern         string `csv:"pattern"`
	NegationPattern string `csv:"negation_pattern"`
	Priority        string `csv:"priority"`
	SourceRef       string `csv:"source_ref"`
	Source          string `csv:"source"`
}

type groupRow struct {
	ID     string `csv:"id"`
	NameEN string `csv:"group_name_en"`
	NamePT string `csv:"group_name_pt"`
}

type groupTermRow struct {
	GroupID   string `csv:"group_id"`
	VGID      string `csv:"vg_id"` // legacy column name
	Lang      string `csv:"lang"`
	Term      string `csv:"term"`
	Weight    string `csv:"weight"`
	Priority  string `csv:"priority"`
	SourceRef string `csv:"source_ref"`
	Source    string `csv:"source"`
}

// FileReport describes the outcome of syncing one CSV file.
type FileReport struct {
	File    string
	Kind    string
	Upserts int
	Skipped int
	Err     string
}

// SyncReport summarizes a directory sync.
type SyncReport struct {
	ProcessedFiles int
	TotalUpserts   int
	Files          []FileReport
}

// Syncer loads dictionary and group vocabulary CSV files into the store.
// Files are classified by name; unknown files are reported and skipped.
type Syncer struct {
	dict   storage.DictionaryRepository
	groups storage.GroupRepository
	logger *slog.Logger
}

// NewSyncer creates a Syncer over the given repositories.
func NewSyncer(dict storage.DictionaryRepository, groups storage.GroupRepository) *Syncer {
	return &Syncer{
		dict:   dict,
		groups: groups,
		logger: slog.Default(),
	}
}

// SyncDir syncs every CSV file directly under dir, in name order. Per-file
// errors are recorded in the report, never fatal.
func (s *Syncer) SyncDir(ctx context.Context, dir string) (*SyncReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	report := &SyncReport{}
	for _, file := range files {
		fr := s.SyncFile(ctx, file)
		report.ProcessedFiles++
		report.TotalUpserts += fr.Upserts
		report.Files = append(report.Files, fr)
	}
	return report, nil
}

// SyncFile syncs a single CSV file, classified by its name.
func (s *Syncer) SyncFile(ctx context.Context, path string) FileReport {
	kind := classifyCSV(path)
	fr := FileReport{File: path, Kind: kind}
	if kind == "" {
		fr.Kind = "unknown"
		fr.Err = "unknown csv type"
		return fr
	}

	f, err := os.Open(path)
	if err != nil {
		fr.Err = err.Error()
		return fr
	}
	defer f.Close()

	switch kind {
	case "concepts":
		fr.Upserts, fr.Skipped, err = s.loadConcepts(ctx, f)
	case "lexicon_terms":
		fr.Upserts, fr.Skipped, err = s.loadLexiconTerms(ctx, f)
	case "key_phrases":
		fr.Upserts, fr.Skipped, err = s.loadKeyPhrases(ctx, f)
	case "pattern_rules":
		fr.Upserts, fr.Skipped, err = s.loadPatternRules(ctx, f)
	case "groups":
		fr.Upserts, fr.Skipped, err = s.loadGroups(ctx, f)
	case "group_terms":
		fr.Upserts, fr.Skipped, err = s.loadGroupTerms(ctx, f)
	}
	if err != nil {
		fr.Err = err.Error()
	}

	s.logger.Info("synced dictionary file",
		"file", filepath.Base(path), "kind", kind,
		"upserts", fr.Upserts, "skipped", fr.Skipped)
	return fr
}

// classifyCSV maps a file name to the table it feeds. Group terms must be
// checked before groups, key phrases before the generic term match.
func classifyCSV(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "group_term") || strings.Contains(name, "vg_term"):
		return "group_terms"
	case strings.Contains(name, "group") || strings.Contains(name, "vulnerable"):
		return "groups"
	case strings.Contains(name, "concept"):
		return "concepts"
	case strings.Contains(name, "key_phrase") || strings.Contains(name, "keyphrase") || strings.Contains(name, "key-phrase"):
		return "key_phrases"
	case strings.Contains(name, "pattern"):
		return "pattern_rules"
	case strings.Contains(name, "lexicon") || strings.Contains(name, "term"):
		return "lexicon_terms"
	}
	return ""
}

func (s *Syncer) loadConcepts(ctx context.Context, f *os.File) (int, int, error) {
	var rows []*conceptRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	var concepts []*core.Concept
	skipped := 0
	for _, row := range rows {
		nameEN := firstNonEmpty(row.NameEN, row.NameENAlt, row.Name, row.ConceptName)
		if nameEN == "" {
			skipped++
			continue
		}
		id := parseID(row.ID)
		if id == 0 {
			id = parseID(row.ConceptID)
		}
		if id == 0 {
			id = core.IDFromContent("concept:" + nameEN)
		}
		concepts = append(concepts, &core.Concept{
			Id:           id,
			NameEN:       nameEN,
			NamePT:       firstNonEmpty(row.NamePT, row.NamePTAlt),
			DefinitionEN: strings.TrimSpace(row.DefinitionEN),
			DefinitionPT: strings.TrimSpace(row.DefinitionPT),
		})
	}
	if len(concepts) == 0 {
		return 0, skipped, nil
	}
	return len(concepts), skipped, s.dict.UpsertConcepts(ctx, concepts...)
}

func (s *Syncer) loadLexiconTerms(ctx context.Context, f *os.File) (int, int, error) {
	var rows []*lexiconRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	var terms []*core.LexiconTerm
	skipped := 0
	for _, row := range rows {
		conceptID := parseID(row.ConceptID)
		term := strings.TrimSpace(row.Term)
		if conceptID == 0 || term == "" || strings.TrimSpace(row.Lang) == "" {
			skipped++
			continue
		}
		lang := core.NormalizeLang(row.Lang) // "*" becomes the wildcard bucket
		lemma := strings.TrimSpace(row.Lemma)
		if lemma == "" {
			lemma = term
		}
		terms = append(terms, &core.LexiconTerm{
			ConceptID: conceptID,
			Lang:      lang,
			Term:      term,
			Lemma:     lemma,
			Weight:    parseFloat(row.Weight, 1.0),
			Priority:  parseInt(row.Priority, 1),
			SourceRef: sourceRef(row.SourceRef, row.Source),
		})
	}
	if len(terms) == 0 {
		return 0, skipped, nil
	}
	return len(terms), skipped, s.dict.UpsertLexiconTerms(ctx, terms...)
}

func (s *Syncer) loadKeyPhrases(ctx context.Context, f *os.File) (int, int, error) {
	var rows []*phraseRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	var phrases []*core.KeyPhrase
	skipped := 0
	for _, row := range rows {
		conceptID := parseID(row.ConceptID)
		phrase := strings.TrimSpace(row.Phrase)
		if conceptID == 0 || phrase == "" || strings.TrimSpace(row.Lang) == "" {
			skipped++
			continue
		}
		lang := core.NormalizeLang(row.Lang)
		phrases = append(phrases, &core.KeyPhrase{
			ConceptID: conceptID,
			Lang:      lang,
			Phrase:    phrase,
			Weight:    parseFloat(row.Weight, 1.0),
			Priority:  parseInt(row.Priority, 1),
			SourceRef: sourceRef(row.SourceRef, row.Source),
		})
	}
	if len(phrases) == 0 {
		return 0, skipped, nil
	}
	return len(phrases), skipped, s.dict.UpsertKeyPhrases(ctx, phrases...)
}

func (s *Syncer) loadPatternRules(ctx context.Context, f *os.File) (int, int, error) {
	var rows []*ruleRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	var rules []*core.PatternRule
	skipped := 0
	for _, row := range rows {
		levelType := strings.TrimSpace(row.LevelType)
		pattern := strings.TrimSpace(row.Pattern)
		if strings.TrimSpace(row.Lang) == "" || levelType == "" || pattern == "" {
			skipped++
			continue
		}
		lang := core.NormalizeLang(row.Lang)
		id := parseID(row.ID)
		if id == 0 {
			id = core.IDFromContent(lang + "|" + levelType + "|" + pattern)
		}
		rules = append(rules, &core.PatternRule{
			Id:              id,
			Lang:            lang,
			LevelType:       levelType,
			Pattern:         pattern,
			NegationPattern: strings.TrimSpace(row.NegationPattern),
			Priority:        parseInt(row.Priority, 1),
			SourceRef:       sourceRef(row.SourceRef, row.Source),
		})
	}
	if len(rules) == 0 {
		return 0, skipped, nil
	}
	return len(rules), skipped, s.dict.UpsertPatternRules(ctx, rules...)
}

func (s *Syncer) loadGroups(ctx context.Context, f *os.File) (int, int, error) {
	var rows []*groupRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	var groups []*core.Group
	skipped := 0
	for _, row := range rows {
		nameEN := strings.TrimSpace(row.NameEN)
		if nameEN == "" {
			skipped++
			continue
		}
		id := parseID(row.ID)
		if id == 0 {
			id = core.IDFromContent("group:" + nameEN)
		}
		groups = append(groups, &core.Group{
			Id:     id,
			NameEN: nameEN,
			NamePT: strings.TrimSpace(row.NamePT),
		})
	}
	if len(groups) == 0 {
		return 0, skipped, nil
	}
	return len(groups), skipped, s.groups.UpsertGroups(ctx, groups...)
}

func (s *Syncer) loadGroupTerms(ctx context.Context, f *os.File) (int, int, error) {
	var rows []*groupTermRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	var terms []*core.GroupTerm
	skipped := 0
	for _, row := range rows {
		groupID := parseID(row.GroupID)
		if groupID == 0 {
			groupID = parseID(row.VGID)
		}
		term := strings.TrimSpace(row.Term)
		if groupID == 0 || term == "" {
			skipped++
			continue
		}
		terms = append(terms, &core.GroupTerm{
			GroupID:   groupID,
			Lang:      core.NormalizeLang(row.Lang),
			Term:      term,
			Weight:    parseFloat(row.Weight, 1.0),
			Priority:  parseInt(row.Priority, 1),
			SourceRef: sourceRef(row.SourceRef, row.Source),
		})
	}
	if len(terms) == 0 {
		return 0, skipped, nil
	}
	return len(terms), skipped, s.groups.UpsertGroupTerms(ctx, terms...)
}

func parseID(s string) core.ID {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return core.ID(v)
}

func parseInt(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func sourceRef(primary, alias string) string {
	if ref := strings.TrimSpace(primary); ref != "" {
		return ref
	}
	return strings.TrimSpace(alias)
}
