package validate

import (
	"errors"
	"fmt"
	"path"
	"slices"

	"github.com/argus-labs/godesc/pkg/ddf"
	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/argus-labs/godesc/pkg/resource"
)

var (
	atlasExts      = []string{".atlas", ".tilesource", ".tileset"}
	materialExts   = []string{".material"}
	collectionExts = []string{".collection"}
	gameObjectExts = []string{".go"}
)

// issueAt builds an issue positioned at pos.
func issueAt(code Code, sev Severity, entry string, pos ddf.Position, format string, args ...any) Issue {
	return Issue{
		Code:     code,
		Severity: sev,
		Entry:    entry,
		Message:  fmt.Sprintf(format, args...),
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// decodeIssue turns a decoding failure into the single issue reported for an unreadable file.
func decodeIssue(err error) Issue {
	code := CodeParse
	switch {
	case errors.Is(err, descriptor.ErrDuplicateID):
		code = CodeDuplicateID
	case errors.Is(err, descriptor.ErrMissingField):
		code = CodeMissingField
	case errors.Is(err, descriptor.ErrInvalidValue):
		code = CodePropertyValue
	}

	var de *ddf.Error
	if errors.As(err, &de) {
		return Issue{Code: code, Severity: SeverityError, Message: de.Msg, Line: de.Pos.Line, Column: de.Pos.Column}
	}
	return Issue{Code: code, Severity: SeverityError, Message: err.Error()}
}

func checkRotations(r *Report, g *descriptor.GameObject) {
	for _, e := range g.Entries() {
		if !e.Rotation.IsUnit() {
			r.add(issueAt(CodeRotationNotUnit, SeverityError, e.ID, e.Pos,
				"rotation of %q is not a unit quaternion (norm %.4f)", e.ID, e.Rotation.Norm()))
		}
	}
}

func checkProperties(r *Report, g *descriptor.GameObject) {
	for _, c := range g.Components {
		for _, p := range c.Properties {
			if _, err := p.Decode(); err != nil {
				r.add(issueAt(CodePropertyValue, SeverityError, c.ID, p.Pos, "%s", err.Error()))
			}
		}
	}
}

// expectedExts returns the file extensions a reference may point at, or nil when any is fine.
func expectedExts(owner string, ref descriptor.Reference) []string {
	switch ref.Kind {
	case descriptor.RefAtlas:
		return atlasExts
	case descriptor.RefMaterial:
		return materialExts
	case descriptor.RefCollection:
		return collectionExts
	case descriptor.RefPrototype:
		if owner == descriptor.TypeCollectionFactory {
			return collectionExts
		}
		return gameObjectExts
	case descriptor.RefComponent, descriptor.RefSound, descriptor.RefMesh, descriptor.RefTexture,
		descriptor.RefResource:
	}
	return nil
}

// checkReferences verifies every referenced resource: that it has the right kind, that it exists
// and, for sprite atlases, that the default animation is provided by the atlas.
func (v *Validator) checkReferences(r *Report, g *descriptor.GameObject) {
	if v.resolver == nil {
		return
	}

	for _, ref := range g.References() {
		entry, _ := g.Entry(ref.Owner)
		var ownerType string
		if entry.Embedded != nil {
			ownerType = entry.Embedded.Type
		}

		if exts := expectedExts(ownerType, ref); exts != nil && !slices.Contains(exts, path.Ext(ref.Path)) {
			r.add(issueAt(CodeReferenceKind, SeverityError, ref.Owner, ref.Pos,
				"%s of %q must reference a %s resource, got %q", ref.Field, ref.Owner, joinExts(exts), ref.Path))
			continue
		}

		missing := CodeUnresolvedReference
		if ref.Kind == descriptor.RefAtlas && ownerType == descriptor.TypeSprite {
			missing = CodeSpriteAtlas
		}
		if err := v.resolver.Exists(ref.Path); err != nil {
			r.add(issueAt(missing, SeverityError, ref.Owner, ref.Pos, "%s of %q: %s", ref.Field, ref.Owner,
				resolveMessage(ref.Path, err)))
			continue
		}

		if missing == CodeSpriteAtlas {
			v.checkSpriteAnimation(r, entry.Embedded, ref)
		}
	}

	for _, e := range g.EmbeddedComponents {
		if sprite, ok := e.Payload.(*descriptor.Sprite); ok && sprite.Atlas() == "" {
			r.add(issueAt(CodeSpriteAtlas, SeverityError, e.ID, e.DataPos, "sprite %q has no atlas", e.ID))
		}
	}
}

func (v *Validator) checkSpriteAnimation(r *Report, e *descriptor.EmbeddedComponent, ref descriptor.Reference) {
	sprite := e.Payload.(*descriptor.Sprite)
	// The default animation is looked up in the primary atlas only.
	if ref.Path != sprite.Atlas() {
		return
	}
	if sprite.DefaultAnimation == "" {
		r.add(issueAt(CodeSpriteAnimation, SeverityWarning, e.ID, e.DataPos,
			"sprite %q has no default animation", e.ID))
		return
	}

	names, err := v.resolver.Animations(ref.Path)
	if err != nil {
		r.add(issueAt(CodeSpriteAtlas, SeverityError, e.ID, ref.Pos, "atlas %s of sprite %q: %v",
			ref.Path, e.ID, err))
		return
	}
	if names == nil {
		return
	}
	if !slices.Contains(names, sprite.DefaultAnimation) {
		r.add(issueAt(CodeSpriteAnimation, SeverityError, e.ID, e.DataPos,
			"animation %q of sprite %q not found in %s", sprite.DefaultAnimation, e.ID, ref.Path))
	}
}

func (v *Validator) checkRules(r *Report, g *descriptor.GameObject) {
	if len(v.rules) == 0 {
		return
	}
	for _, e := range g.Entries() {
		env := entryEnv(r.File, e)
		for i := range v.rules {
			rule := &v.rules[i]
			ok, err := rule.eval(env)
			if err != nil {
				issue := issueAt(CodeRule, SeverityError, e.ID, e.Pos, "rule %q could not be evaluated: %v", rule.Name, err)
				issue.Rule = rule.Name
				r.add(issue)
				continue
			}
			if !ok {
				issue := issueAt(CodeRule, rule.Severity, e.ID, e.Pos, "%s", rule.message(e.ID))
				issue.Rule = rule.Name
				r.add(issue)
			}
		}
	}
}

func resolveMessage(p string, err error) string {
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return fmt.Sprintf("resource %s does not exist", p)
	case errors.Is(err, resource.ErrOutsideRoot):
		return fmt.Sprintf("resource %s is outside the project", p)
	case errors.Is(err, resource.ErrNotAbsolute):
		return fmt.Sprintf("resource path %q must start with /", p)
	default:
		return err.Error()
	}
}

func joinExts(exts []string) string {
	s := exts[0]
	for i := 1; i < len(exts); i++ {
		if i == len(exts)-1 {
			s += " or " + exts[i]
		} else {
			s += ", " + exts[i]
		}
	}
	return s
}
