package sync

// Diff partitions two snapshots by relative path. It is derived once per
// cycle and never mutated afterwards.
type Diff struct {
	DeletedFolders PathSet
	DeletedFiles   PathSet
	CreatedFolders PathSet
	CreatedFiles   PathSet
	CommonFiles    PathSet

	// Withheld holds entries left out of the deleted and created sets
	// because the other side could not be read.
	Withheld PathSet
}

// ComputeDiff compares a source snapshot against a replica snapshot. It does
// no I/O; timestamps are compared later by the update step.
//
// A replica entry is only scheduled for deletion when its source location was
// readable, and a source entry is only scheduled for creation when its replica
// location was readable.
func ComputeDiff(source, replica *Snapshot) *Diff {
	d := &Diff{
		DeletedFolders: replica.Folders.Minus(source.Folders),
		DeletedFiles:   replica.Files.Minus(source.Files),
		CreatedFolders: source.Folders.Minus(replica.Folders),
		CreatedFiles:   source.Files.Minus(replica.Files),
		CommonFiles:    source.Files.Intersect(replica.Files),
		Withheld:       PathSet{},
	}

	withhold(d.DeletedFolders, source.Unreadable, d.Withheld)
	withhold(d.DeletedFiles, source.Unreadable, d.Withheld)
	withhold(d.CreatedFolders, replica.Unreadable, d.Withheld)
	withhold(d.CreatedFiles, replica.Unreadable, d.Withheld)
	return d
}

// Empty reports whether the diff schedules no deletions or creations.
func (d *Diff) Empty() bool {
	return len(d.DeletedFolders) == 0 && len(d.DeletedFiles) == 0 &&
		len(d.CreatedFolders) == 0 && len(d.CreatedFiles) == 0
}

func withhold(set, unreadable, withheld PathSet) {
	if len(unreadable) == 0 {
		return
	}
	for p := range set {
		if underAny(unreadable, p) {
			delete(set, p)
			withheld.Add(p)
		}
	}
}
