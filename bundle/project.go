package bundle

import (
	"fmt"

	"github.com/msgstudio/lms/errs"
	"github.com/msgstudio/lms/msf"
)

// buildProjectTables flattens a Project file's TGP2/TAG2/TGG2 blocks
// into the cross-referenced ProjectTables shape, per
// original_source/lib/oms.py's _import_msbp.
func buildProjectTables(f *msf.File) (ProjectTables, error) {
	tgp2, ok := f.Get(msf.TagTGP2)
	if !ok {
		return ProjectTables{}, fmt.Errorf("%w: missing TGP2", errs.ErrTruncated)
	}
	tag2, ok := f.Get(msf.TagTAG2)
	if !ok {
		return ProjectTables{}, fmt.Errorf("%w: missing TAG2", errs.ErrTruncated)
	}
	tgg2, ok := f.Get(msf.TagTGG2)
	if !ok {
		return ProjectTables{}, fmt.Errorf("%w: missing TGG2", errs.ErrTruncated)
	}

	params := make([]TagParameter, len(tgp2.(msf.TGP2Block).Params))
	for i, p := range tgp2.(msf.TGP2Block).Params {
		params[i] = TagParameter{Name: p.Name, Type: p.Type, Items: p.Items}
	}

	tagEntries := tag2.(msf.TAG2Block).Entries
	tags := make([]Tag, len(tagEntries))
	for i, e := range tagEntries {
		tagParams := make([]TagParameter, 0, len(e.Items))
		for _, idx := range e.Items {
			if int(idx) >= len(params) {
				return ProjectTables{}, fmt.Errorf("%w: tag %q references out-of-range parameter %d", errs.ErrTruncated, e.Name, idx)
			}
			tagParams = append(tagParams, params[idx])
		}
		tags[i] = Tag{Name: e.Name, Parameters: tagParams}
	}

	groupEntries := tgg2.(msf.TGG2Block).Entries
	groups := make([]TagGroup, len(groupEntries))
	for i, e := range groupEntries {
		groupTags := make([]Tag, 0, len(e.Items))
		for _, idx := range e.Items {
			if int(idx) >= len(tags) {
				return ProjectTables{}, fmt.Errorf("%w: group %q references out-of-range tag %d", errs.ErrTruncated, e.Name, idx)
			}
			groupTags = append(groupTags, tags[idx])
		}
		groups[i] = TagGroup{Name: e.Name, Tags: groupTags}
	}

	return ProjectTables{Parameters: params, Tags: tags, Groups: groups}, nil
}
