package services

import (
	"testing"

	"realty/dto"
)

func TestMergeFiltersFillsGaps(t *testing.T) {
	old := &dto.ObjectFilters{ObjectTypeID: uintPtr(1), DealTypeID: uintPtr(2)}
	merged := MergeFilters(old, &dto.ObjectFilters{StatusID: uintPtr(3)})

	if merged.ObjectTypeID == nil || *merged.ObjectTypeID != 1 {
		t.Errorf("objectTypeId = %v, want carried-over 1", merged.ObjectTypeID)
	}
	if merged.DealTypeID == nil || *merged.DealTypeID != 2 {
		t.Errorf("dealTypeId = %v, want carried-over 2", merged.DealTypeID)
	}
	if merged.StatusID == nil || *merged.StatusID != 3 {
		t.Errorf("statusId = %v, want new 3", merged.StatusID)
	}
}

func TestMergeFiltersNewWins(t *testing.T) {
	old := &dto.ObjectFilters{ObjectTypeID: uintPtr(1)}
	merged := MergeFilters(old, &dto.ObjectFilters{ObjectTypeID: uintPtr(5)})

	if merged.ObjectTypeID == nil || *merged.ObjectTypeID != 5 {
		t.Errorf("objectTypeId = %v, want the newer 5", merged.ObjectTypeID)
	}
}

func TestFiltersEmpty(t *testing.T) {
	if !(dto.ObjectFilters{}).Empty() {
		t.Error("zero filters not reported empty")
	}
	if (dto.ObjectFilters{StatusID: uintPtr(1)}).Empty() {
		t.Error("set filter reported empty")
	}
}
