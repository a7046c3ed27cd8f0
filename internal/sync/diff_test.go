package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotOf(files, folders []string, unreadable ...string) *Snapshot {
	return &Snapshot{
		Files:      NewPathSet(files...),
		Folders:    NewPathSet(folders...),
		Unreadable: NewPathSet(unreadable...),
	}
}

func TestComputeDiff(t *testing.T) {
	source := snapshotOf(
		[]string{"keep.txt", "new.txt", "B/y"},
		[]string{"B", "shared"},
	)
	replica := snapshotOf(
		[]string{"keep.txt", "old.txt", "A/x"},
		[]string{"A", "shared"},
	)

	d := ComputeDiff(source, replica)

	assert.Equal(t, []string{"A"}, d.DeletedFolders.Sorted())
	assert.Equal(t, []string{"A/x", "old.txt"}, d.DeletedFiles.Sorted())
	assert.Equal(t, []string{"B"}, d.CreatedFolders.Sorted())
	assert.Equal(t, []string{"B/y", "new.txt"}, d.CreatedFiles.Sorted())
	assert.Equal(t, []string{"keep.txt"}, d.CommonFiles.Sorted())
	assert.Empty(t, d.Withheld)
	assert.False(t, d.Empty())
}

func TestComputeDiff_Identical(t *testing.T) {
	s := snapshotOf([]string{"a", "d/b"}, []string{"d"})

	d := ComputeDiff(s, snapshotOf([]string{"a", "d/b"}, []string{"d"}))

	assert.True(t, d.Empty())
	assert.Equal(t, []string{"a", "d/b"}, d.CommonFiles.Sorted())
}

func TestComputeDiff_WithholdsDeletionsBelowUnreadableSource(t *testing.T) {
	source := snapshotOf(nil, []string{"locked"}, "locked")
	replica := snapshotOf(
		[]string{"locked/secret.txt", "locked/deep/x", "stale.txt"},
		[]string{"locked", "locked/deep"},
	)

	d := ComputeDiff(source, replica)

	assert.Empty(t, d.DeletedFolders)
	assert.Equal(t, []string{"stale.txt"}, d.DeletedFiles.Sorted())
	assert.Equal(t, []string{"locked/deep", "locked/deep/x", "locked/secret.txt"}, d.Withheld.Sorted())
}

func TestComputeDiff_WithholdsCreationsBelowUnreadableReplica(t *testing.T) {
	source := snapshotOf([]string{"jail/a", "free/b"}, []string{"jail", "free"})
	replica := snapshotOf(nil, []string{"jail"}, "jail")

	d := ComputeDiff(source, replica)

	assert.Equal(t, []string{"free"}, d.CreatedFolders.Sorted())
	assert.Equal(t, []string{"free/b"}, d.CreatedFiles.Sorted())
	assert.Equal(t, []string{"jail/a"}, d.Withheld.Sorted())
}
