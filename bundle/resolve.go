package bundle

import (
	"fmt"

	"github.com/msgstudio/lms/errs"
	"github.com/msgstudio/lms/msf"
)

// resolveStandardFile resolves one Standard file's TXT2 messages
// against tables, keyed by label via LBL1, per
// original_source/lib/oms.py's _import_msbt.
func resolveStandardFile(path string, f *msf.File, tables *ProjectTables) (*OMSText, []UnresolvedTagRef, error) {
	lbl1, ok := f.Get(msf.TagLBL1)
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing LBL1", errs.ErrTruncated)
	}
	txt2, ok := f.Get(msf.TagTXT2)
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing TXT2", errs.ErrTruncated)
	}

	messages := txt2.(msf.TXT2Block).Messages
	text := &OMSText{Path: path, Messages: map[string]*Message{}}
	var unresolved []UnresolvedTagRef

	for _, e := range lbl1.(msf.HashTableBlock).Entries {
		if int(e.Value) >= len(messages) {
			return nil, nil, fmt.Errorf("%w: label %q references out-of-range message %d", errs.ErrTruncated, e.Label, e.Value)
		}
		raw := messages[e.Value]

		var tags []ResolvedTag
		for _, part := range raw.Parts {
			if part.Control == nil {
				continue
			}
			rt := resolveTag(part.Control.Group, part.Control.Tag, part.Control.Param, tables)
			if rt.Unresolved {
				unresolved = append(unresolved, UnresolvedTagRef{
					Path: path, Label: e.Label,
					GroupIndex: rt.GroupIndex, TagIndex: rt.TagIndex,
				})
			}
			tags = append(tags, rt)
		}

		text.Messages[e.Label] = &Message{
			Label:       e.Label,
			DisplayText: raw.DisplayText(),
			Tags:        tags,
		}
	}

	return text, unresolved, nil
}

// resolveTag looks group/tag up against tables. The synthetic
// (-1, -1) button-label shorthand is never a table reference and so
// is never marked Unresolved.
func resolveTag(group, tag int32, param []byte, tables *ProjectTables) ResolvedTag {
	rt := ResolvedTag{GroupIndex: group, TagIndex: tag, param: param}

	if group < 0 && tag < 0 {
		return rt
	}

	if group < 0 || int(group) >= len(tables.Groups) {
		rt.Unresolved = true
		return rt
	}
	g := &tables.Groups[group]
	rt.Group = g

	if tag < 0 || int(tag) >= len(g.Tags) {
		rt.Unresolved = true
		return rt
	}
	rt.TagDesc = &g.Tags[tag]

	return rt
}
