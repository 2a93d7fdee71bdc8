// Package assemble merges generator fragments into one area document.
//
// The assembler is the only component that sees every fragment together. It
// groups entries by category in a fixed category order, preserves
// generator-submission order within each category, and enforces the
// document-wide unique-id invariant: any collision is an authoring error
// surfaced immediately as a *DuplicateIDError, never papered over.
package assemble

import (
	"fmt"

	"github.com/muurk/areacfg/internal/entity"
)

// Document is the fully merged configuration for one area, ready to render.
type Document struct {
	// AreaName is the display name used as the document's top-level key.
	AreaName string

	// Slug is the normalized area name, used for the output filename.
	Slug string

	// Templates holds one ConfigFragment per category that has entries,
	// in entity.CategoryOrder.
	Templates []entity.ConfigFragment

	// InputNumbers and InputBooleans are the helper definitions, in
	// generator order.
	InputNumbers  []entity.InputNumber
	InputBooleans []entity.InputBoolean
}

// Merge combines generator fragments into a Document.
//
// Entries are grouped by category; within a category, entries appear in the
// order their fragments were submitted. Unique ids are checked across the
// whole document, including fan keys and input helper keys, since they all
// share one identifier namespace in the target platform.
func Merge(areaName, slug string, fragments []entity.ConfigFragment, numbers []entity.InputNumber, booleans []entity.InputBoolean) (*Document, error) {
	merged := make(map[entity.Category]*entity.ConfigFragment)
	seen := make(map[string]idOwner)

	for _, frag := range fragments {
		target, ok := merged[frag.Category]
		if !ok {
			target = &entity.ConfigFragment{Category: frag.Category}
			merged[frag.Category] = target
		}

		for _, e := range frag.Entries {
			if err := claim(seen, e.UniqueID, e.Name, string(frag.Category)); err != nil {
				return nil, err
			}
			target.Entries = append(target.Entries, e)
		}
		for _, fan := range frag.Fans {
			if err := claim(seen, fan.Key, fan.FriendlyName, string(entity.CategoryFan)); err != nil {
				return nil, err
			}
			target.Fans = append(target.Fans, fan)
		}
	}

	for _, n := range numbers {
		if err := claim(seen, n.Key, n.Name, "input_number"); err != nil {
			return nil, err
		}
	}
	for _, b := range booleans {
		if err := claim(seen, b.Key, b.Name, "input_boolean"); err != nil {
			return nil, err
		}
	}

	doc := &Document{
		AreaName:      areaName,
		Slug:          slug,
		InputNumbers:  numbers,
		InputBooleans: booleans,
	}
	for _, cat := range entity.CategoryOrder {
		if frag, ok := merged[cat]; ok {
			doc.Templates = append(doc.Templates, *frag)
		}
	}

	return doc, nil
}

// idOwner records which entity first claimed a unique id, for collision
// reporting.
type idOwner struct {
	Name     string
	Category string
}

func claim(seen map[string]idOwner, id, name, category string) error {
	if id == "" {
		return fmt.Errorf("entity %q (%s) has an empty unique id", name, category)
	}
	if owner, ok := seen[id]; ok {
		return &DuplicateIDError{
			UniqueID:   id,
			FirstName:  owner.Name,
			FirstCat:   owner.Category,
			SecondName: name,
			SecondCat:  category,
		}
	}
	seen[id] = idOwner{Name: name, Category: category}
	return nil
}
