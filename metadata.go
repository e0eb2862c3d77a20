package thml2epub

import "sort"

// Meta holds the Dublin Core metadata harvested from the ThML head.
type Meta struct {
	// Titles contains all DC.Title values. The first entry is the primary title.
	Titles []string

	// Creators contains the resolved DC.Creator entries.
	Creators []Creator

	// Identifiers contains all DC.Identifier values.
	Identifiers []string

	// Languages contains all DC.Language values.
	Languages []string

	// Publishers contains all DC.Publisher values.
	Publishers []string

	// Dates contains all DC.Date values (raw strings).
	Dates []string

	// Descriptions contains all DC.Description values.
	Descriptions []string

	// Rights contains all DC.Rights values.
	Rights []string
}

// Creator is a resolved DC.Creator entry.
type Creator struct {
	// Name is the display form of the creator (ThML scheme "short-form").
	Name string

	// FileAs is the sorting form (ThML scheme "file-as").
	FileAs string

	// Role is the MARC relator code derived from the ThML "sub" attribute
	// (e.g., "aut", "edt", "trl").
	Role string
}

// dcEntry is one raw element harvested from a <DC> block.
type dcEntry struct {
	name   string // element name without the "dc." prefix, e.g. "title"
	value  string
	sub    string
	scheme string
}

// containsEntry reports whether entries already holds an identical entry.
func containsEntry(entries []dcEntry, e dcEntry) bool {
	for _, have := range entries {
		if have == e {
			return true
		}
	}
	return false
}

// creatorRoles maps ThML DC.Creator "sub" values to MARC relator codes.
var creatorRoles = map[string]string{
	"Author":                "aut",
	"Author of section":     "aut",
	"Author of Section":     "aut",
	"Author of Part":        "aut",
	"Editor":                "edt",
	"Adapter":               "adp",
	"Annotator":             "ann",
	"Arranger":              "arr",
	"Artist":                "art",
	"Commentator":           "cmm",
	"Compiler":              "com",
	"Illustrator":           "ill",
	"Lyricist":              "lyr",
	"Musician":              "mus",
	"Narrator":              "nrt",
	"Photographer":          "pht",
	"Printer":               "prt",
	"Redactor":              "red",
	"Reviewer":              "rev",
	"Transcriber":           "trc",
	"Translator":            "trl",
	"Translator and Editor": "trl",
	"Other":                 "oth",
}

// creatorRole resolves a ThML "sub" value to a relator code, defaulting to
// "oth" for values outside the table.
func creatorRole(sub string, warn func(string, ...any)) string {
	if role, ok := creatorRoles[sub]; ok {
		return role
	}
	if sub != "" && warn != nil {
		warn("unhandled DC.Creator sub value %q", sub)
	}
	return "oth"
}

// buildMeta turns the raw harvested DC entries into a Meta. Creator
// entries are grouped by role: the "short-form" scheme supplies the
// display name and "file-as" the sorting form, each falling back to the
// other when only one is present. Entries under other schemes (internal
// archive identifiers) are dropped.
func buildMeta(entries []dcEntry, warn func(string, ...any)) Meta {
	var m Meta
	names := make(map[string]string)
	fileAs := make(map[string]string)

	for _, e := range entries {
		switch e.name {
		case "title":
			m.Titles = append(m.Titles, e.value)
		case "creator":
			role := creatorRole(e.sub, warn)
			switch e.scheme {
			case "short-form":
				names[role] = e.value
			case "file-as":
				fileAs[role] = e.value
			}
		case "identifier":
			m.Identifiers = append(m.Identifiers, e.value)
		case "language":
			m.Languages = append(m.Languages, e.value)
		case "publisher":
			m.Publishers = append(m.Publishers, e.value)
		case "date":
			m.Dates = append(m.Dates, e.value)
		case "description":
			m.Descriptions = append(m.Descriptions, e.value)
		case "rights":
			m.Rights = append(m.Rights, e.value)
		}
	}

	roles := make([]string, 0, len(names)+len(fileAs))
	seen := make(map[string]bool)
	for role := range names {
		if !seen[role] {
			roles = append(roles, role)
			seen[role] = true
		}
	}
	for role := range fileAs {
		if !seen[role] {
			roles = append(roles, role)
			seen[role] = true
		}
	}
	sort.Strings(roles)

	for _, role := range roles {
		c := Creator{Name: names[role], FileAs: fileAs[role], Role: role}
		if c.Name == "" {
			c.Name = c.FileAs
		}
		if c.FileAs == "" {
			c.FileAs = c.Name
		}
		m.Creators = append(m.Creators, c)
	}

	return m
}

// primaryTitle returns the first harvested title, or "".
func (m Meta) primaryTitle() string {
	if len(m.Titles) > 0 {
		return m.Titles[0]
	}
	return ""
}

// primaryIdentifier returns the first harvested identifier, or "".
func (m Meta) primaryIdentifier() string {
	if len(m.Identifiers) > 0 {
		return m.Identifiers[0]
	}
	return ""
}

// language returns the first harvested language, defaulting to "en".
func (m Meta) language() string {
	if len(m.Languages) > 0 {
		return m.Languages[0]
	}
	return "en"
}
