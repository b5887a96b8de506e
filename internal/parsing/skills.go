package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/sections"
)

const (
	maxSkills         = 25
	maxTokensPerLabel = 20
	minSkillTokenLen  = 2
	maxSkillTokenLen  = 49
)

// vocabMatcher tests one canonical vocabulary entry against text.
type vocabMatcher struct {
	name string
	re   *regexp.Regexp
}

// compileVocabulary builds one matcher per vocabulary entry. Entries of one
// or two characters ("R", "Go", "C#") match case-sensitively so ordinary
// words do not trigger them.
func compileVocabulary(cat *catalog.Catalog) []vocabMatcher {
	vocab := cat.Vocabulary()
	matchers := make([]vocabMatcher, 0, len(vocab))
	for _, name := range vocab {
		flags := "(?i)"
		if len(name) <= 2 {
			flags = ""
		}
		pattern := flags + `(?:^|[^A-Za-z0-9])` + regexp.QuoteMeta(name) + `(?:$|[^A-Za-z0-9])`
		matchers = append(matchers, vocabMatcher{name: name, re: regexp.MustCompile(pattern)})
	}
	return matchers
}

// extractSkills merges vocabulary hits with tokens from labeled lines.
// Vocabulary hits come first so their spelling wins on duplicates.
func (p *Parser) extractSkills(text string) []string {
	scope, ok := p.seg.Extract(text, sections.Skills)
	if !ok {
		scope = text
	}

	var (
		skills []string
		seen   = make(map[string]bool)
	)
	add := func(s string) bool {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return true
		}
		if len(skills) >= maxSkills {
			return false
		}
		seen[key] = true
		skills = append(skills, s)
		return true
	}

	for _, vm := range p.vocab {
		if vm.re.MatchString(scope) && !add(vm.name) {
			return skills
		}
	}

	for _, re := range skillLabelPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, token := range splitSkillTokens(m[1]) {
				if !add(normalizeSkill(p.cat, token)) {
					return skills
				}
			}
		}
	}

	if len(skills) == 0 {
		p.miss("skills")
	}
	return skills
}

// splitSkillTokens splits a labeled line into candidate skill names.
func splitSkillTokens(s string) []string {
	var tokens []string
	for _, raw := range skillSplitRe.Split(s, -1) {
		token := strings.TrimSpace(skillBracketRe.ReplaceAllString(raw, " "))
		token = strings.Join(strings.Fields(token), " ")
		if len(token) < minSkillTokenLen || len(token) > maxSkillTokenLen {
			continue
		}
		if digitsOnlyRe.MatchString(token) || !hasLetterRe.MatchString(token) {
			continue
		}
		tokens = append(tokens, token)
		if len(tokens) == maxTokensPerLabel {
			break
		}
	}
	return tokens
}
