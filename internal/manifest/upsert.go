package manifest

import "sort"

// UpsertResult reports which entries an upsert inserted and which it updated.
type UpsertResult struct {
	Inserted []string
	Updated  []string
}

// Upsert merges entries into the Modules array. An entry whose Name matches
// an existing object is overlaid onto it key by key, leaving keys this tool
// does not own untouched; other entries are appended. When the source already
// holds duplicate names, the last one receives the update. The array is then
// stable-sorted by Name, with unnamed entries sorting as "".
func (d *Document) Upsert(entries []Entry) (*UpsertResult, error) {
	items, err := d.modules()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Object, len(items))
	for _, item := range items {
		if item.indexable() {
			byName[item.name()] = item.obj
		}
	}

	result := &UpsertResult{}
	for _, e := range entries {
		obj := e.object()
		if existing, ok := byName[e.Name]; ok {
			existing.Overlay(obj)
			result.Updated = append(result.Updated, e.Name)
			continue
		}
		items = append(items, moduleItem{obj: obj})
		byName[e.Name] = obj
		result.Inserted = append(result.Inserted, e.Name)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].name() < items[j].name()
	})

	if err := d.setModules(items); err != nil {
		return nil, err
	}
	return result, nil
}
