package service

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"strconv"

	catalogerrors "podquest/internal/catalog/errors"
	"podquest/pkg/config"
	apperrors "podquest/pkg/errors"
	"podquest/pkg/model"
	"podquest/pkg/sanitizer"
)

// CatalogService answers capacity-eligibility queries over the fixed pod
// set. The catalog is defined once at startup and never mutated, so the
// service is read-only and safe for concurrent callers.
type CatalogService interface {
	ListEligible(guestCount int) []model.Pod
	FindByName(name string) (*model.Pod, error)
	Pods() []model.Pod
}

type catalogService struct {
	pods []model.Pod
	cfg  *config.Config
}

// DefaultPods is the standard office floor plan: eight single pods, two
// double pods and three big pods.
func DefaultPods() []model.Pod {
	pods := make([]model.Pod, 0, 13)
	for i := 1; i <= 8; i++ {
		pods = append(pods, model.Pod{ID: i, Name: fmt.Sprintf("Single Pod %d", i), Capacity: 1})
	}
	for i := 1; i <= 2; i++ {
		pods = append(pods, model.Pod{ID: 8 + i, Name: fmt.Sprintf("Double Pod %d", i), Capacity: 2})
	}
	for i := 1; i <= 3; i++ {
		pods = append(pods, model.Pod{ID: 10 + i, Name: fmt.Sprintf("Big Pod %d", i), Capacity: 6})
	}
	return pods
}

// LoadPodsFile reads a catalog override file with columns id,name,capacity
// and a header row. The file replaces the default floor plan wholesale.
func LoadPodsFile(path string) ([]model.Pod, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: catalog file has no pod rows", catalogerrors.ErrInvalidCatalog)
	}

	pods := make([]model.Pod, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 3 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want 3", catalogerrors.ErrInvalidCatalog, i+2, len(rec))
		}
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d has non-numeric id %q", catalogerrors.ErrInvalidCatalog, i+2, rec[0])
		}
		capacity, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d has non-numeric capacity %q", catalogerrors.ErrInvalidCatalog, i+2, rec[2])
		}
		pods = append(pods, model.Pod{ID: id, Name: sanitizer.NormalizePodName(rec[1]), Capacity: capacity})
	}

	if err := validatePods(pods); err != nil {
		return nil, err
	}
	return pods, nil
}

func validatePods(pods []model.Pod) error {
	seenIDs := make(map[int]struct{}, len(pods))
	seenNames := make(map[string]struct{}, len(pods))

	for _, pod := range pods {
		if pod.Capacity < 1 {
			return fmt.Errorf("%w: pod %q has capacity %d", catalogerrors.ErrInvalidCatalog, pod.Name, pod.Capacity)
		}
		if pod.Name == "" {
			return fmt.Errorf("%w: pod %d has an empty name", catalogerrors.ErrInvalidCatalog, pod.ID)
		}
		if _, ok := seenIDs[pod.ID]; ok {
			return fmt.Errorf("%w: duplicate pod id %d", catalogerrors.ErrInvalidCatalog, pod.ID)
		}
		if _, ok := seenNames[pod.Name]; ok {
			return fmt.Errorf("%w: duplicate pod name %q", catalogerrors.ErrInvalidCatalog, pod.Name)
		}
		seenIDs[pod.ID] = struct{}{}
		seenNames[pod.Name] = struct{}{}
	}
	return nil
}

func NewCatalogService(pods []model.Pod, cfg *config.Config) (CatalogService, error) {
	if err := validatePods(pods); err != nil {
		return nil, err
	}

	owned := make([]model.Pod, len(pods))
	copy(owned, pods)

	return &catalogService{pods: owned, cfg: cfg}, nil
}

// ListEligible returns every pod whose capacity covers guestCount, in
// catalog definition order. A non-positive guest count yields an empty
// slice rather than an error; the boundary validates its own input.
func (s *catalogService) ListEligible(guestCount int) []model.Pod {
	eligible := make([]model.Pod, 0, len(s.pods))
	if guestCount < 1 {
		return eligible
	}

	for _, pod := range s.pods {
		if pod.Capacity >= guestCount {
			eligible = append(eligible, pod)
		}
	}
	return eligible
}

func (s *catalogService) FindByName(name string) (*model.Pod, error) {
	name = sanitizer.NormalizePodName(name)
	for _, pod := range s.pods {
		if pod.Name == name {
			p := pod
			return &p, nil
		}
	}
	return nil, apperrors.Wrap(catalogerrors.ErrPodNotFound, apperrors.CodeNotFound,
		fmt.Sprintf("Pod %q not found", name), http.StatusNotFound).WithDetails(map[string]any{"name": name})
}

// Pods returns a copy of the full catalog in definition order.
func (s *catalogService) Pods() []model.Pod {
	out := make([]model.Pod, len(s.pods))
	copy(out, s.pods)
	return out
}
