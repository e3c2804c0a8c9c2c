// Package bundle joins a Project file's tag tables against Standard
// files' label/message tables, producing decorated messages whose
// in-line control records resolve to named tag descriptors.
//
// Grounded on original_source/lib/oms.py's OMSProject/OMSText
// three-step resolution: locate the one .msbp, build the tag tables,
// then resolve every .msbt's TXT2 against its LBL1.
package bundle

import (
	"fmt"
	"strings"

	"github.com/msgstudio/lms/archive"
	"github.com/msgstudio/lms/errs"
	"github.com/msgstudio/lms/msf"
)

// TagParameter is one named, typed parameter slot in the Project's
// TGP2 table.
type TagParameter struct {
	Name  string
	Type  uint8
	Items []uint16
}

// Tag is a named control tag; Parameters is the ordered list of
// parameter descriptors a record under this tag may carry.
type Tag struct {
	Name       string
	Parameters []TagParameter
}

// TagGroup is a named collection of tags, indexed by a TXT2 control
// record's group field.
type TagGroup struct {
	Name string
	Tags []Tag
}

// ProjectTables is the flattened, cross-referenced view of a Project
// file's TGP2/TAG2/TGG2 blocks.
type ProjectTables struct {
	Parameters []TagParameter
	Tags       []Tag
	Groups     []TagGroup
}

// ResolvedTag is one in-line control record, decorated with its
// resolved descriptors when resolution succeeded.
type ResolvedTag struct {
	GroupIndex int32
	TagIndex   int32
	Group      *TagGroup
	TagDesc    *Tag
	param      []byte
	Unresolved bool
}

// RawControlBytes exposes a control record's raw parameter bytes so a
// caller can attempt game-specific interpretation without the core
// needing to understand them. Supplements the distilled spec per
// original_source/lib/msbt.py's decode_txt2_entry /
// _txt2_handle_control_seq, which interpret these bytes per game.
func (r ResolvedTag) RawControlBytes() []byte { return r.param }

// Message is a TXT2 entry resolved against a Bundle's ProjectTables:
// display text with one placeholder per tag, plus the ordered tag
// list the placeholders refer to.
type Message struct {
	Label       string
	DisplayText string
	Tags        []ResolvedTag
}

// OMSText is one Standard file's resolved messages, keyed by label.
type OMSText struct {
	Path     string
	Messages map[string]*Message
}

// UnresolvedTagRef records a control record whose group or tag index
// didn't resolve against the Project's tables. Collecting these is
// non-fatal: the offending record keeps its raw indices (spec.md
// §4.4).
type UnresolvedTagRef struct {
	Path       string
	Label      string
	GroupIndex int32
	TagIndex   int32
}

func (u UnresolvedTagRef) Error() string {
	return fmt.Sprintf("bundle: %s: message %q: unresolved tag ref (group=%d, tag=%d)",
		u.Path, u.Label, u.GroupIndex, u.TagIndex)
}

// Unwrap lets errors.Is(err, errs.ErrUnresolvedTagRef) match a
// collected UnresolvedTagRef.
func (u UnresolvedTagRef) Unwrap() error {
	return errs.ErrUnresolvedTagRef
}

// Bundle is a Project file's tag tables joined against every Standard
// file found alongside it in an archive.
type Bundle struct {
	Project     ProjectTables
	Texts       map[string]*OMSText
	Unresolved  []UnresolvedTagRef
	ProjectFile *msf.File
}

// FromArchive locates the archive's single *.msbp file, builds its
// tag tables, then resolves every *.msbt file's TXT2 block against
// them. Returns errs.ErrMissingProject unless exactly one project file
// is present.
func FromArchive(tree *archive.Tree) (*Bundle, error) {
	var projectEntry *archive.Entry
	projectCount := 0
	var textEntries []archive.Entry

	for e := range tree.Entries() {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), ".msbp"):
			projectCount++
			if projectEntry == nil {
				v := e
				projectEntry = &v
			}
		case strings.HasSuffix(e.Name(), ".msbt"):
			textEntries = append(textEntries, e)
		}
	}

	if projectEntry == nil {
		return nil, errs.ErrMissingProject
	}
	if projectCount > 1 {
		return nil, fmt.Errorf("%w: found %d project files", errs.ErrMissingProject, projectCount)
	}

	projData, err := projectEntry.Data()
	if err != nil {
		return nil, err
	}
	projFile, err := msf.Parse(projData)
	if err != nil {
		return nil, fmt.Errorf("bundle: project file: %w", err)
	}

	tables, err := buildProjectTables(projFile)
	if err != nil {
		return nil, fmt.Errorf("bundle: project tables: %w", err)
	}

	b := &Bundle{
		Project:     tables,
		Texts:       map[string]*OMSText{},
		ProjectFile: projFile,
	}

	for _, e := range textEntries {
		data, err := e.Data()
		if err != nil {
			return nil, err
		}
		stdFile, err := msf.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("bundle: %s: %w", e.Path(), err)
		}

		text, unresolved, err := resolveStandardFile(e.Path(), stdFile, &b.Project)
		if err != nil {
			return nil, fmt.Errorf("bundle: %s: %w", e.Path(), err)
		}
		b.Texts[e.Path()] = text
		b.Unresolved = append(b.Unresolved, unresolved...)
	}

	return b, nil
}

// Rebind re-resolves every already-decorated message's tag descriptors
// against Project's current tables, without re-parsing any Standard
// file from bytes. Supplements the distilled spec per
// original_source/lib/oms.py: the object model allows cross-
// references to be rebound after an editor mutates TGG2/TAG2/TGP2 in
// place (spec.md §3).
func (b *Bundle) Rebind() error {
	if b.ProjectFile != nil {
		tables, err := buildProjectTables(b.ProjectFile)
		if err != nil {
			return fmt.Errorf("bundle: rebind: %w", err)
		}
		b.Project = tables
	}

	b.Unresolved = nil
	for path, text := range b.Texts {
		for _, msg := range text.Messages {
			for i := range msg.Tags {
				r := &msg.Tags[i]
				*r = resolveTag(r.GroupIndex, r.TagIndex, r.param, &b.Project)
				if r.Unresolved {
					b.Unresolved = append(b.Unresolved, UnresolvedTagRef{
						Path: path, Label: msg.Label,
						GroupIndex: r.GroupIndex, TagIndex: r.TagIndex,
					})
				}
			}
		}
	}
	return nil
}
