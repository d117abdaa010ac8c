package model

// Checkpoint is a snapshot of every append-only collection in a document.
// Restoring it truncates the collections back to their recorded lengths,
// which undoes anything appended since the snapshot was taken.
type Checkpoint struct {
	doc     *Document
	blocks  []int
	notes   []int
	tags    []string
	alts    []int
	stats   map[string]float64
	custom  map[string]string
	reports int
}

// Checkpoint records the current state of the document.
func (d *Document) Checkpoint() *Checkpoint {
	cp := &Checkpoint{
		doc:     d,
		stats:   make(map[string]float64, len(d.stats)),
		custom:  make(map[string]string, len(d.Metadata.Custom)),
		reports: len(d.reports),
	}
	for k, v := range d.stats {
		cp.stats[k] = v
	}
	for k, v := range d.Metadata.Custom {
		cp.custom[k] = v
	}
	d.walkAnnotated(func(a *annotationList) {
		cp.blocks = append(cp.blocks, len(a.classes))
	})
	for _, s := range d.Sentences() {
		cp.notes = append(cp.notes, len(s.notes.classes))
		for _, t := range s.tokens {
			cp.notes = append(cp.notes, len(t.notes.classes))
			cp.tags = append(cp.tags, t.tag)
			cp.alts = append(cp.alts, len(t.alternatives))
		}
	}
	return cp
}

// Restore rolls the document back to the checkpoint.
func (cp *Checkpoint) Restore() {
	d := cp.doc
	i := 0
	d.walkAnnotated(func(a *annotationList) {
		a.truncate(cp.blocks[i])
		i++
	})
	n, k := 0, 0
	for _, s := range d.Sentences() {
		s.notes.truncate(cp.notes[n])
		n++
		for _, t := range s.tokens {
			t.notes.truncate(cp.notes[n])
			n++
			t.tag = cp.tags[k]
			if cp.alts[k] < len(t.alternatives) {
				t.alternatives = t.alternatives[:cp.alts[k]]
			}
			k++
		}
	}
	d.stats = make(map[string]float64, len(cp.stats))
	for k, v := range cp.stats {
		d.stats[k] = v
	}
	d.Metadata.Custom = make(map[string]string, len(cp.custom))
	for k, v := range cp.custom {
		d.Metadata.Custom[k] = v
	}
	if cp.reports < len(d.reports) {
		d.reports = d.reports[:cp.reports]
	}
}

// walkAnnotated visits the annotation list of every block, including the
// nested paragraphs of enumerations and floats.
func (d *Document) walkAnnotated(fn func(*annotationList)) {
	for _, b := range d.blocks {
		if a, ok := b.(annotated); ok {
			fn(a.annotations())
		}
		switch v := b.(type) {
		case *Enumeration:
			for _, item := range v.Items {
				fn(item.annotations())
			}
		case *Float:
			if v.Caption != nil {
				fn(v.Caption.annotations())
			}
		}
	}
}
