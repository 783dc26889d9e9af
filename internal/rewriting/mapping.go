package rewriting

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/latex"
)

// BulletEdit is a bullet change resolved to its source line.
type BulletEdit struct {
	Change BulletChange
	Bullet latex.Bullet
	Entry  string
}

// MapBulletEdits resolves (section, entry_index, bullet_index) targets to the
// bullets of m. Sections naming projects address m.Projects; everything else
// addresses m.Experience. Changes whose target does not exist are returned as
// unresolved.
func MapBulletEdits(m *latex.StructuralMap, changes []BulletChange) (edits []BulletEdit, unresolved []BulletChange) {
	for _, c := range changes {
		bullets, entry, ok := entryBullets(m, c)
		if !ok || c.BulletIndex < 0 || c.BulletIndex >= len(bullets) {
			unresolved = append(unresolved, c)
			continue
		}
		edits = append(edits, BulletEdit{Change: c, Bullet: bullets[c.BulletIndex], Entry: entry})
	}
	return edits, unresolved
}

func entryBullets(m *latex.StructuralMap, c BulletChange) ([]latex.Bullet, string, bool) {
	if c.EntryIndex < 0 {
		return nil, "", false
	}
	if isProjectSection(c.Section) {
		if c.EntryIndex >= len(m.Projects) {
			return nil, "", false
		}
		p := m.Projects[c.EntryIndex]
		return p.Bullets, p.Name, true
	}
	if c.EntryIndex >= len(m.Experience) {
		return nil, "", false
	}
	e := m.Experience[c.EntryIndex]
	return e.Bullets, e.Company, true
}

func isProjectSection(name string) bool {
	return strings.Contains(strings.ToLower(name), "project")
}
