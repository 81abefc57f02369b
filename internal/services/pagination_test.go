package services

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		size        int
		total       int64
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"first of many", 1, 7, 20, 3, true, false},
		{"middle page", 2, 7, 20, 3, true, true},
		{"last page", 3, 7, 20, 3, false, true},
		{"exact multiple", 2, 5, 10, 2, false, true},
		{"single page", 1, 7, 3, 1, false, false},
		{"empty set", 1, 7, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.size, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantHasNext)
			}
			if p.HasPrevPage != tt.wantHasPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.wantHasPrev)
			}
			if p.TotalRecords != tt.total || p.CurrentPage != tt.page {
				t.Errorf("Pagination echoed wrong inputs: %+v", p)
			}
		})
	}
}
