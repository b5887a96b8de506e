package parsing

import "regexp"

// PatternTableVersion identifies the revision of the pattern tables below.
// Bump it whenever a table changes so stored profiles can be re-parsed.
const PatternTableVersion = "2024.3"

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Optional +91 / +1 prefix, then 3-3-4 or 5-5 digit groups with any separator.
	phoneRe = regexp.MustCompile(`(?:\+?91[-.\s]?)?(?:\+?1[-.\s]?)?(?:\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}|[0-9]{5}[-.\s]?[0-9]{5})\b`)

	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/([A-Za-z0-9_%\-]+)`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_\-]+)`)

	yearRe = regexp.MustCompile(`\b(19\d{2}|20[0-3]\d)\b`)
)

// namePatterns are tried in order over the whole document.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:full\s*)?name\s*[:\-]\s*([A-Za-z][a-z]+(?:\s+[A-Za-z][a-z]+)+)\s*$`),
	regexp.MustCompile(`(?m)^([A-Z][A-Z ]{2,30})$`),
	regexp.MustCompile(`(?m)^([A-Z][a-z]{2,15}(?: [A-Z][a-z]{2,15}){1,3})$`),
	regexp.MustCompile(`(?m)^([A-Z][a-z]{2,15} [A-Z]\.? [A-Z][a-z]{2,15})$`),
}

var (
	nameCharsRe = regexp.MustCompile(`^[A-Za-z\s.'\-]+$`)
	nameWordRe  = regexp.MustCompile(`^(?:[A-Z][a-z]+(?:['\-][A-Z]?[a-z]+)*|[A-Z]+|[A-Z]\.?)$`)
)

// nameRejectPatterns disqualify a line from being a name.
var nameRejectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)@|http|www|\.com|\.org`),
	regexp.MustCompile(`(?i)\b(?:resume|curriculum|cv|profile|objective)\b`),
	regexp.MustCompile(`\d{4}|\d{10}`),
	regexp.MustCompile(`(?i)\b(?:skills?|experience|education|projects?)\b`),
	regexp.MustCompile(`(?i)\b(?:address|phone|email|mobile)\b`),
}

// nonNames are headings that pass the name predicate but are not names.
var nonNames = map[string]bool{
	"RESUME":           true,
	"CURRICULUM VITAE": true,
	"PERSONAL DETAILS": true,
	"CONTACT INFO":     true,
	"PROFILE":          true,
	"SUMMARY":          true,
}

// addressPatterns are tried in priority order over the résumé header.
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Mumbai|Delhi|Bangalore|Bengaluru|Chennai|Hyderabad|Pune|Kolkata|India|Ahmedabad|Surat|Jaipur|Lucknow|Kanpur|Nagpur|Visakhapatnam|Bhopal|Patna)\b[^\n]*`),
	regexp.MustCompile(`[A-Za-z][A-Za-z ]*,\s*[A-Z]{2}\s*\d{5}`),
	regexp.MustCompile(`(?i)\d+[^,\n]*\b(?:street|st\.|road|rd\.|avenue|ave|lane|drive|nagar)\b[^\n]*`),
	regexp.MustCompile(`[A-Za-z][A-Za-z ]+,[ ]*[A-Za-z][A-Za-z ]+,[ ]*[A-Za-z][A-Za-z ]+`),
}

// degreePattern maps a degree regex to its canonical label. When the
// pattern has a capture group it holds the specialization.
type degreePattern struct {
	label        string
	re           *regexp.Regexp
	defaultField string
}

// degreePatterns are checked per line in priority order; the first hit wins.
var degreePatterns = []degreePattern{
	{label: "B.Tech", re: regexp.MustCompile(`(?i)\b(?:b\.?\s?tech|bachelor\s+of\s+technology)\b\.?(?:\s+(?:in|of)\b)?[\s:\-]*([^,\n]*)`)},
	{label: "B.E.", re: regexp.MustCompile(`(?i)\b(?:b\.e\.?|bachelor\s+of\s+engineering)(?:\s+(?:in|of)\b)?[\s:\-]*([^,\n]*)`)},
	{label: "B.Sc", re: regexp.MustCompile(`(?i)\b(?:b\.?\s?sc\b\.?|bachelor\s+of\s+science\b)(?:\s+(?:in|of)\b)?[\s:\-]*([^,\n]*)`)},
	{label: "BCA", re: regexp.MustCompile(`(?i)\b(?:bca|bachelor\s+of\s+computer\s+applications?)\b`), defaultField: "Computer Applications"},
	{label: "M.Tech", re: regexp.MustCompile(`(?i)\b(?:m\.?\s?tech|master\s+of\s+technology)\b\.?(?:\s+(?:in|of)\b)?[\s:\-]*([^,\n]*)`)},
	{label: "MCA", re: regexp.MustCompile(`(?i)\b(?:mca|master\s+of\s+computer\s+applications?)\b`), defaultField: "Computer Applications"},
	{label: "Degree", re: regexp.MustCompile(`(?i)\b(?:bachelor(?:'s)?|master(?:'s)?|ph\.?d)\b\.?(?:\s+(?:of|in|degree)\b)*[\s:\-]*([^,\n]*)`)},
}

// degreeFieldCutRe trims trailing noise from a captured specialization.
var degreeFieldCutRe = regexp.MustCompile(`(?i)\s*(?:\(|\||\s-\s|\bfrom\b|\bat\b|\b(?:19|20)\d{2}\b|\bc?gpa\b|\bpercentage\b|\d+(?:\.\d+)?\s*%).*$`)

var institutionKeywordRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|institution|school|academy|iit|nit|iiit|bits|vit|srm|amrita|manipal)\b`)

// cgpaPatterns capture a score and an optional explicit denominator.
var cgpaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bc?gpa\b\s*(?:of\s*)?[:\-]?\s*(\d{1,2}(?:\.\d+)?)(?:\s*(?:/|out\s+of)\s*(\d{1,2}(?:\.\d+)?))?`),
	regexp.MustCompile(`(?i)(\d{1,2}\.\d+)(?:\s*(?:/|out\s+of)\s*(\d{1,2}(?:\.\d+)?))?\s*c?gpa\b`),
	regexp.MustCompile(`(\d{1,2}\.\d+)\s*/\s*(\d{1,2}(?:\.\d+)?)`),
}

var percentagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`),
	regexp.MustCompile(`(?i)\b(?:percentage|marks?)\s*[:\-]?\s*(\d{1,3}(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d{2,3}(?:\.\d+)?)\s*(?:percent|percentage)\b`),
}

// skillLabelPatterns capture the remainder of a labeled skills line.
var skillLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^[ \t]*(?:programming\s+)?languages?[ \t]*[:\-][ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^[ \t]*(?:technologies|technology|tech\s+stack)[ \t]*[:\-][ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^[ \t]*frameworks?(?:\s*(?:&|and)\s*libraries)?[ \t]*[:\-][ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^[ \t]*databases?[ \t]*[:\-][ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^[ \t]*tools?(?:\s*(?:&|and)\s*platforms)?[ \t]*[:\-][ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^[ \t]*(?:technical\s+)?skills[ \t]*[:\-][ \t]*(.+)$`),
}

var (
	skillSplitRe   = regexp.MustCompile(`[,;|\n•·▪▫◦‣⁃]|\s+-\s+`)
	skillBracketRe = regexp.MustCompile(`[()\[\]{}]`)
	digitsOnlyRe   = regexp.MustCompile(`^\d+$`)
	hasLetterRe    = regexp.MustCompile(`[A-Za-z]`)
)

var jobTitleRe = regexp.MustCompile(`(?i)\b(?:engineer|developer|analyst|manager|lead|senior|junior|associate|specialist|consultant|architect|designer|scientist|researcher|coordinator|executive|officer|administrator|programmer)s?\b`)

var internRe = regexp.MustCompile(`(?i)\b(?:intern|interns|internship|trainee)\b`)

var companyIndicatorRe = regexp.MustCompile(`(?i)\b(?:ltd|inc|corp|corporation|technologies|solutions|systems|services|pvt|llc|labs|limited)\b`)

// durationPatterns decide whether a line holds a date range or span. The
// month range separator is optional because normalization turns en dashes
// into spaces.
var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{4}\s*(?:-|–|to)?\s*(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{4}|present|current|now|till\s+date)`),
	regexp.MustCompile(`\d{4}\s*(?:-|–|to)\s*\d{4}`),
	regexp.MustCompile(`(?i)\d{4}\s*(?:-|–|to)\s*(?:present|current|now|till\s+date)`),
	regexp.MustCompile(`\w+\s+\d{4}\s*(?:-|–|to)\s*\w+\s+\d{4}`),
	regexp.MustCompile(`(?i)\b\d+\s+(?:months?|years?|yrs?|mos?)\b`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{4}`),
}

var locationRe = regexp.MustCompile(`(?i)\b(?:mumbai|delhi|new delhi|bangalore|bengaluru|chennai|hyderabad|pune|kolkata|ahmedabad|surat|jaipur|noida|gurgaon|gurugram|india|remote|hybrid)\b`)

var (
	numberedMarkerRe = regexp.MustCompile(`^\(?\d+[.)]$`)
	numberedPrefixRe = regexp.MustCompile(`^\(?\d+[.)]\s+`)
	projectNoiseRe   = regexp.MustCompile(`(?i)technology|technologies|description|http|www\.|@`)
)

// projectFallbackPatterns capture a project phrase from prose.
var projectFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bproject\s*[:\-]?\s*([^.\n]{10,80})`),
	regexp.MustCompile(`(?i)\b(?:developed|built|created)\s+([^.\n]{10,80})`),
	regexp.MustCompile(`(?i)\b(?:worked\s+on|implemented)\s+([^.\n]{10,80})`),
}

var internFallbackRe = regexp.MustCompile(`(?i)[^.\n]*\b(?:intern|internship|trainee)\b[^.\n]*`)

var bulletPrefixRe = regexp.MustCompile(`^[-*•·▪◦>]+\s*`)
