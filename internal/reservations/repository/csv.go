package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"podquest/pkg/config"
	"podquest/pkg/model"
)

var csvHeader = []string{"pod_id", "pod_name", "guest_count", "start_time", "end_time", "email"}

// csvLedgerStore keeps the ledger in a single column file, rewritten in
// full on every append. The rewrite goes through a temp file and a rename
// so a failed write never truncates the existing ledger.
type csvLedgerStore struct {
	cfg  *config.Config
	path string
}

func NewCSVLedgerStore(cfg *config.Config) LedgerStore {
	return &csvLedgerStore{
		cfg:  cfg,
		path: cfg.LedgerFile,
	}
}

func (s *csvLedgerStore) Load(ctx context.Context) ([]model.Reservation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run: the ledger file appears with the first booking.
			return []model.Reservation{}, nil
		}
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}

	if len(records) == 0 {
		return []model.Reservation{}, nil
	}

	reservations := make([]model.Reservation, 0, len(records)-1)
	for i, rec := range records[1:] {
		reservation, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+2, err)
		}
		reservations = append(reservations, *reservation)
	}

	s.cfg.Log.Info("Ledger loaded", "path", s.path, "reservations", len(reservations))
	return reservations, nil
}

func (s *csvLedgerStore) Append(ctx context.Context, reservation *model.Reservation) error {
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}
	existing = append(existing, *reservation)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create ledger temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(csvHeader)
	for i := range existing {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(encodeRow(&existing[i]))
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger file: %w", writeErr)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}

	return nil
}

func encodeRow(r *model.Reservation) []string {
	return []string{
		strconv.Itoa(r.PodID),
		r.PodName,
		strconv.Itoa(r.GuestCount),
		r.StartTime.Format(TimeLayout),
		r.EndTime.Format(TimeLayout),
		r.Email,
	}
}

func decodeRow(rec []string) (*model.Reservation, error) {
	if len(rec) != len(csvHeader) {
		return nil, fmt.Errorf("has %d columns, want %d", len(rec), len(csvHeader))
	}

	podID, err := strconv.Atoi(rec[0])
	if err != nil {
		return nil, fmt.Errorf("non-numeric pod_id %q", rec[0])
	}
	guestCount, err := strconv.Atoi(rec[2])
	if err != nil {
		return nil, fmt.Errorf("non-numeric guest_count %q", rec[2])
	}
	startTime, err := time.ParseInLocation(TimeLayout, rec[3], time.Local)
	if err != nil {
		return nil, fmt.Errorf("unparseable start_time %q", rec[3])
	}
	endTime, err := time.ParseInLocation(TimeLayout, rec[4], time.Local)
	if err != nil {
		return nil, fmt.Errorf("unparseable end_time %q", rec[4])
	}

	return &model.Reservation{
		PodID:      podID,
		PodName:    rec[1],
		GuestCount: guestCount,
		StartTime:  startTime,
		EndTime:    endTime,
		Email:      rec[5],
	}, nil
}
