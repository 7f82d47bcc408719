package result

import (
	"reflect"
	"testing"
)

func TestIndexRecorder(t *testing.T) {
	r := NewIndexRecorder()
	r.RecordMatch(984, 2, Complex)
	r.RecordMatch(1297, 2, Complex)
	r.RecordMatch(1545, 3, Atomic)

	if got, want := r.Finish(), []int{984, 1297, 1545}; !reflect.DeepEqual(got, want) {
		t.Errorf("Finish() = %v, want %v", got, want)
	}
}

func TestIndexRecorderEmpty(t *testing.T) {
	r := NewIndexRecorder()
	if got := r.Finish(); len(got) != 0 {
		t.Errorf("Finish() = %v, want empty", got)
	}
}
