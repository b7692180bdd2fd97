package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	catalogerrors "podquest/internal/catalog/errors"
	"podquest/pkg/config"
	"podquest/pkg/logger"
	"podquest/pkg/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Service: "test"}),
	}
}

func newTestCatalog(t *testing.T) CatalogService {
	t.Helper()
	svc, err := NewCatalogService(DefaultPods(), testConfig())
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	return svc
}

func TestDefaultPods_FloorPlan(t *testing.T) {
	pods := DefaultPods()

	if len(pods) != 13 {
		t.Fatalf("expected 13 pods, got %d", len(pods))
	}

	capacities := map[int]int{}
	for _, pod := range pods {
		capacities[pod.Capacity]++
	}
	if capacities[1] != 8 || capacities[2] != 2 || capacities[6] != 3 {
		t.Errorf("unexpected capacity distribution: %v", capacities)
	}

	if pods[0].Name != "Single Pod 1" || pods[0].ID != 1 {
		t.Errorf("first pod = %+v, want Single Pod 1 with id 1", pods[0])
	}
	if pods[12].Name != "Big Pod 3" || pods[12].ID != 13 {
		t.Errorf("last pod = %+v, want Big Pod 3 with id 13", pods[12])
	}
}

func TestListEligible_FiltersByCapacity(t *testing.T) {
	svc := newTestCatalog(t)

	tests := []struct {
		guests int
		want   int
	}{
		{1, 13},
		{2, 5},
		{3, 3},
		{6, 3},
		{7, 0},
	}

	for _, tt := range tests {
		got := svc.ListEligible(tt.guests)
		if len(got) != tt.want {
			t.Errorf("ListEligible(%d) returned %d pods, want %d", tt.guests, len(got), tt.want)
		}
		for _, pod := range got {
			if pod.Capacity < tt.guests {
				t.Errorf("ListEligible(%d) returned pod %q with capacity %d", tt.guests, pod.Name, pod.Capacity)
			}
		}
	}
}

func TestListEligible_MonotonicInGuestCount(t *testing.T) {
	svc := newTestCatalog(t)

	// Raising the guest count must never add pods; each result set is a
	// subset of the one for any lower count.
	previous := map[int]struct{}{}
	for _, pod := range svc.ListEligible(1) {
		previous[pod.ID] = struct{}{}
	}

	for g := 2; g <= 8; g++ {
		current := svc.ListEligible(g)
		for _, pod := range current {
			if _, ok := previous[pod.ID]; !ok {
				t.Errorf("ListEligible(%d) returned pod %d absent from ListEligible(%d)", g, pod.ID, g-1)
			}
		}
		previous = map[int]struct{}{}
		for _, pod := range current {
			previous[pod.ID] = struct{}{}
		}
	}
}

func TestListEligible_PreservesDefinitionOrder(t *testing.T) {
	svc := newTestCatalog(t)

	got := svc.ListEligible(2)
	wantNames := []string{"Double Pod 1", "Double Pod 2", "Big Pod 1", "Big Pod 2", "Big Pod 3"}
	if len(got) != len(wantNames) {
		t.Fatalf("ListEligible(2) returned %d pods, want %d", len(got), len(wantNames))
	}
	for i, pod := range got {
		if pod.Name != wantNames[i] {
			t.Errorf("ListEligible(2)[%d] = %q, want %q", i, pod.Name, wantNames[i])
		}
	}
}

func TestListEligible_InvalidGuestCount(t *testing.T) {
	svc := newTestCatalog(t)

	for _, g := range []int{0, -1} {
		if got := svc.ListEligible(g); len(got) != 0 {
			t.Errorf("ListEligible(%d) = %d pods, want empty", g, len(got))
		}
	}
}

func TestFindByName(t *testing.T) {
	svc := newTestCatalog(t)

	pod, err := svc.FindByName("Big Pod 1")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if pod.ID != 11 || pod.Capacity != 6 {
		t.Errorf("FindByName returned %+v", pod)
	}

	// Lookup normalizes whitespace the same way booking input does.
	if _, err := svc.FindByName("  Big Pod 1 "); err != nil {
		t.Errorf("FindByName with padding: %v", err)
	}

	_, err = svc.FindByName("Mega Pod")
	if !errors.Is(err, catalogerrors.ErrPodNotFound) {
		t.Errorf("FindByName unknown pod: got %v, want ErrPodNotFound", err)
	}
}

func TestNewCatalogService_RejectsInvalidPods(t *testing.T) {
	tests := []struct {
		name string
		pods []model.Pod
	}{
		{"zero capacity", []model.Pod{{ID: 1, Name: "Pod A", Capacity: 0}}},
		{"empty name", []model.Pod{{ID: 1, Name: "", Capacity: 1}}},
		{"duplicate id", []model.Pod{{ID: 1, Name: "Pod A", Capacity: 1}, {ID: 1, Name: "Pod B", Capacity: 1}}},
		{"duplicate name", []model.Pod{{ID: 1, Name: "Pod A", Capacity: 1}, {ID: 2, Name: "Pod A", Capacity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalogService(tt.pods, testConfig())
			if !errors.Is(err, catalogerrors.ErrInvalidCatalog) {
				t.Errorf("got %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestLoadPodsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "id,name,capacity\n1,Quiet Pod,1\n2,Team Pod,4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pods, err := LoadPodsFile(path)
	if err != nil {
		t.Fatalf("LoadPodsFile: %v", err)
	}
	if len(pods) != 2 {
		t.Fatalf("expected 2 pods, got %d", len(pods))
	}
	if pods[1].ID != 2 || pods[1].Name != "Team Pod" || pods[1].Capacity != 4 {
		t.Errorf("pods[1] = %+v", pods[1])
	}
}

func TestLoadPodsFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"header only", "id,name,capacity\n"},
		{"bad id", "id,name,capacity\nx,Pod A,1\n"},
		{"bad capacity", "id,name,capacity\n1,Pod A,many\n"},
		{"zero capacity", "id,name,capacity\n1,Pod A,0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPodsFile(path); !errors.Is(err, catalogerrors.ErrInvalidCatalog) {
				t.Errorf("got %v, want ErrInvalidCatalog", err)
			}
		})
	}
}
